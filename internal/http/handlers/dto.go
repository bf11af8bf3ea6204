package handlers

import (
	"time"

	"github.com/shopspring/decimal"
)

type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type orderDTO struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	PickupAddress    string          `json:"pickup_address"`
	PickupCoords     *coordsDTO      `json:"pickup_coords,omitempty"`
	DeliveryAddress  string          `json:"delivery_address"`
	DeliveryCoords   *coordsDTO      `json:"delivery_coords,omitempty"`
	PickupStart      time.Time       `json:"pickup_start"`
	PickupEnd        time.Time       `json:"pickup_end"`
	WeightKg         float64         `json:"weight_kg"`
	VolumeM3         float64         `json:"volume_m3"`
	TransportType    string          `json:"transport_type,omitempty"`
	Zone             string          `json:"zone"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency,omitempty"`
	Instructions     string          `json:"instructions,omitempty"`
	Status           string          `json:"status"`
	DriverID         *string         `json:"driver_id"`
	DriverAssignedAt *time.Time      `json:"driver_assigned_at,omitempty"`
	DeliveredBy      *string         `json:"delivered_by,omitempty"`
	SourceOrderID    *string         `json:"source_order_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type activityDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	DriverID  *string   `json:"driver_id,omitempty"`
	Actor     string    `json:"actor"`
	Status    string    `json:"status,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type timelineStepDTO struct {
	Status string     `json:"status"`
	State  string     `json:"state"`
	At     *time.Time `json:"at,omitempty"`
}

type orderDetailResponse struct {
	Order       orderDTO          `json:"order"`
	ActivityLog []activityDTO     `json:"activity_log"`
	Timeline    []timelineStepDTO `json:"timeline"`
	RouteKm     *float64          `json:"route_km,omitempty"`
}

type notificationDTO struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	DriverID   *string   `json:"driver_id,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
}

type assignRequest struct {
	DriverID string `json:"driver_id"`
	Actor    string `json:"actor,omitempty"`
}

type actorRequest struct {
	Actor string `json:"actor,omitempty"`
	Note  string `json:"note,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor,omitempty"`
	Note   string `json:"note,omitempty"`
}

type reorderRequest struct {
	PickupStart time.Time `json:"pickup_start"`
	PickupEnd   time.Time `json:"pickup_end"`
	Actor       string    `json:"actor,omitempty"`
}

type assignResponse struct {
	OrderID          string    `json:"order_id"`
	DriverID         string    `json:"driver_id"`
	AssignmentID     string    `json:"assignment_id"`
	PickupStart      time.Time `json:"pickup_start"`
	PickupEnd        time.Time `json:"pickup_end"`
	AssignedAt       time.Time `json:"assigned_at"`
	PreviousDriverID *string   `json:"previous_driver_id,omitempty"`
}

type unassignResponse struct {
	OrderID  string    `json:"order_id"`
	DriverID string    `json:"driver_id"`
	EndedAt  time.Time `json:"ended_at"`
}

type reorderResponse struct {
	Order    orderDTO `json:"order"`
	Assigned bool     `json:"assigned"`
	DriverID string   `json:"driver_id,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

type nearestDriverResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Zone         string    `json:"zone"`
	Status       string    `json:"status"`
	LastLocation coordsDTO `json:"last_location"`
	DistanceKm   float64   `json:"distance_km"`
}
