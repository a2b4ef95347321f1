package handlers

import "fleetops/internal/domain"

func userToResponse(u domain.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(humanTime),
	}
}

func usersToResponse(list []domain.User) []userDTO {
	out := make([]userDTO, 0, len(list))
	for _, u := range list {
		out = append(out, userToResponse(u))
	}
	return out
}

func vehicleToResponse(v domain.Vehicle) vehicleDTO {
	return vehicleDTO{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		Type:         v.Type,
		CapacityKg:   v.CapacityKg,
		Status:       v.Status,
		DriverID:     v.DriverID,
		CreatedAt:    v.CreatedAt.Format(humanTime),
		UpdatedAt:    v.UpdatedAt.Format(humanTime),
	}
}

func vehiclesToResponse(list []domain.Vehicle) []vehicleDTO {
	out := make([]vehicleDTO, 0, len(list))
	for _, v := range list {
		out = append(out, vehicleToResponse(v))
	}
	return out
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:                  o.ID,
		Destination:         o.Destination,
		Size:                o.Size,
		Priority:            o.Priority,
		DeliveryWindowStart: o.DeliveryWindowStart.Format(humanTime),
		DeliveryWindowEnd:   o.DeliveryWindowEnd.Format(humanTime),
		Status:              o.Status,
		VehicleID:           o.VehicleID,
		CreatedAt:           o.CreatedAt.Format(humanTime),
		UpdatedAt:           o.UpdatedAt.Format(humanTime),
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}
