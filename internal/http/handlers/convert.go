package handlers

import (
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
	"service-dispatch/internal/service/orders"
)

func coordsToResponse(c domain.Optional[domain.Coordinates]) *coordsDTO {
	v, ok := c.Get()
	if !ok {
		return nil
	}
	return &coordsDTO{Lat: v.Lat, Lng: v.Lng}
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:               o.ID,
		CustomerID:       o.CustomerID,
		PickupAddress:    o.PickupAddress,
		PickupCoords:     coordsToResponse(o.PickupCoords),
		DeliveryAddress:  o.DeliveryAddress,
		DeliveryCoords:   coordsToResponse(o.DeliveryCoords),
		PickupStart:      o.Window.Start,
		PickupEnd:        o.Window.End,
		WeightKg:         o.WeightKg,
		VolumeM3:         o.VolumeM3,
		TransportType:    o.TransportType,
		Zone:             o.Zone,
		Amount:           o.Amount,
		Currency:         o.Currency,
		Instructions:     o.Instructions,
		Status:           string(o.Status),
		DriverID:         o.DriverID.Ptr(),
		DriverAssignedAt: o.DriverAssignedAt.Ptr(),
		DeliveredBy:      o.DeliveredBy.Ptr(),
		SourceOrderID:    o.SourceOrderID.Ptr(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func detailToResponse(d orders.OrderDetail) orderDetailResponse {
	log := make([]activityDTO, 0, len(d.ActivityLog))
	for _, e := range d.ActivityLog {
		log = append(log, activityDTO{
			ID:        e.ID,
			Type:      string(e.Type),
			DriverID:  e.DriverID.Ptr(),
			Actor:     e.Actor,
			Status:    string(e.Status),
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	steps := make([]timelineStepDTO, 0, len(d.Timeline))
	for _, s := range d.Timeline {
		steps = append(steps, timelineStepDTO{Status: string(s.Status), State: string(s.State), At: s.At.Ptr()})
	}
	return orderDetailResponse{Order: orderToResponse(d.Order), ActivityLog: log, Timeline: steps, RouteKm: d.RouteKm.Ptr()}
}

func notificationsToResponse(list []domain.NotificationEntry) []notificationDTO {
	out := make([]notificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, notificationDTO{
			ID:         n.ID,
			Channel:    string(n.Channel),
			OrderID:    n.OrderID,
			CustomerID: n.CustomerID,
			DriverID:   n.DriverID.Ptr(),
			Message:    n.Message,
			CreatedAt:  n.CreatedAt,
			Read:       n.Read,
		})
	}
	return out
}

func assignResultToResponse(res domain.AssignResult) assignResponse {
	return assignResponse{
		OrderID:          res.OrderID,
		DriverID:         res.DriverID,
		AssignmentID:     res.AssignmentID,
		PickupStart:      res.Window.Start,
		PickupEnd:        res.Window.End,
		AssignedAt:       res.AssignedAt,
		PreviousDriverID: res.PreviousDriverID.Ptr(),
	}
}

func unassignResultToResponse(res domain.UnassignResult) unassignResponse {
	return unassignResponse{OrderID: res.OrderID, DriverID: res.DriverID, EndedAt: res.EndedAt}
}

func reorderResultToResponse(res orders.ReorderResult) reorderResponse {
	return reorderResponse{
		Order:    orderToResponse(res.Order),
		Assigned: res.Assigned,
		DriverID: res.DriverID,
		Reason:   res.Reason,
	}
}

func nearestToResponse(d domain.Driver, pickup domain.Coordinates) nearestDriverResponse {
	loc := d.LastLocation.OrElse(domain.Coordinates{})
	return nearestDriverResponse{
		ID:           d.ID,
		Name:         d.Name,
		Zone:         d.Zone,
		Status:       string(d.Status),
		LastLocation: coordsDTO{Lat: loc.Lat, Lng: loc.Lng},
		DistanceKm:   geo.DistanceKm(pickup, loc),
	}
}
