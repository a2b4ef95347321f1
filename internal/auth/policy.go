package auth

import "fleetops/internal/domain"

// Action enumerates the operations the authorization policy decides on.
type Action int

// List of policed actions
const (
	ActionUserRead Action = iota
	ActionUserRoleChange
	ActionUserDelete
	ActionVehicleRead
	ActionVehicleCreate
	ActionVehicleStatusChange
	ActionVehicleDriverChange
	ActionVehicleDelete
	ActionOrderRead
	ActionOrderCreate
	ActionOrderStatusChange
	ActionOrderDelete
)

// CanPerform decides whether an actor with the given role may perform the
// action. It is a pure function: any authenticated user may read; every
// mutation here requires the admin role. Password change and self delete are
// possession-proof checks handled by the user service, not role checks, so
// they do not appear in the action set.
func CanPerform(role domain.Role, action Action) bool {
	switch action {
	case ActionUserRead, ActionVehicleRead, ActionOrderRead:
		return role.Valid()
	default:
		return role == domain.RoleAdmin
	}
}
