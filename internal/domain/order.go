package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a client's delivery request.
type Order struct {
	ID               string
	CustomerID       string
	PickupAddress    string
	PickupCoords     Optional[Coordinates]
	DeliveryAddress  string
	DeliveryCoords   Optional[Coordinates]
	Window           Window
	WeightKg         float64
	VolumeM3         float64
	TransportType    string
	Zone             string
	Amount           decimal.Decimal
	Currency         string
	Instructions     string
	Status           OrderStatus
	DriverID         Optional[string]
	DriverAssignedAt Optional[time.Time]
	// DeliveredBy is the driver that completed a delivered order.
	DeliveredBy   Optional[string]
	SourceOrderID Optional[string]
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasDriver reports whether a driver currently holds the order.
func (o Order) HasDriver() bool { return o.DriverID.IsSome() }

// AssignResult describes a successful assignment.
type AssignResult struct {
	OrderID          string
	DriverID         string
	AssignmentID     string
	Window           Window
	AssignedAt       time.Time
	PreviousDriverID Optional[string]
}

// UnassignResult describes a released assignment.
type UnassignResult struct {
	OrderID  string
	DriverID string
	EndedAt  time.Time
}
