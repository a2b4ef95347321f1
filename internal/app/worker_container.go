package app

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"fleetops/internal/repository"
)

// MustBuildWorkerContainer builds the DI container for the intake worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns a new dig container for the worker
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerIntake(container); err != nil {
		return nil, fmt.Errorf("intake: %w", err)
	}
	return container, nil
}

func registerIntake(container *dig.Container) error {
	return provideAll(container,
		repository.NewOrderRepo,
		repository.NewVehicleRepo,
		newIntakeProcessor,
		makeIntakeKafka,
		newIntakeConsumer,
	)
}
