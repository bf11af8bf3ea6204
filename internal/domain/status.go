package domain

type (
	// OrderStatus is a lifecycle state of an order.
	OrderStatus string
	// DriverStatus is the operational status of a driver.
	DriverStatus string
)

// Order lifecycle states.
const (
	StatusPendingAssignment OrderStatus = "pending_assignment"
	StatusPendingPickup     OrderStatus = "pending_pickup"
	StatusPickedUp          OrderStatus = "picked_up"
	StatusInTransit         OrderStatus = "in_transit"
	StatusDelivered         OrderStatus = "delivered"
	StatusCancelled         OrderStatus = "cancelled"
	StatusIncident          OrderStatus = "incident"
)

// Driver statuses.
const (
	DriverAvailable DriverStatus = "available"
	DriverOnTrip    DriverStatus = "on_trip"
	DriverPaused    DriverStatus = "paused"
)

// Milestones are the canonical happy-path steps shown on an order timeline.
var Milestones = [...]OrderStatus{
	StatusPendingAssignment,
	StatusPendingPickup,
	StatusPickedUp,
	StatusInTransit,
	StatusDelivered,
}

var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingAssignment: {StatusPendingPickup, StatusCancelled, StatusIncident},
	StatusPendingPickup:     {StatusPickedUp, StatusCancelled, StatusIncident},
	StatusPickedUp:          {StatusInTransit, StatusIncident},
	StatusInTransit:         {StatusDelivered, StatusIncident},
	StatusIncident:          {StatusPendingAssignment, StatusInTransit, StatusDelivered},
}

var allowedDriverStatuses = [...]DriverStatus{DriverAvailable, DriverOnTrip, DriverPaused}

// Valid checks if the OrderStatus is a known state.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingAssignment, StatusPendingPickup, StatusPickedUp,
		StatusInTransit, StatusDelivered, StatusCancelled, StatusIncident:
		return true
	}
	return false
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func IsTerminal(s OrderStatus) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsAssignable reports whether a driver may be assigned to an order in status s.
func IsAssignable(s OrderStatus) bool {
	return s == StatusPendingAssignment
}

// IsReleasable reports whether the driver of an order in status s may be unassigned.
// Once the goods are picked up the driver is bound to the order until an incident is raised.
func IsReleasable(s OrderStatus) bool {
	return s == StatusPendingAssignment || s == StatusPendingPickup || s == StatusIncident
}

// ReleasedStatus returns the status an order in s holds once its driver is unassigned.
func ReleasedStatus(s OrderStatus) OrderStatus {
	if RequiresDriver(s) {
		return StatusPendingAssignment
	}
	return s
}

// IsCancellable reports whether an order in status s may be cancelled.
func IsCancellable(s OrderStatus) bool {
	return s == StatusPendingAssignment || s == StatusPendingPickup
}

// RequiresDriver reports whether entering s needs an assigned driver.
func RequiresDriver(s OrderStatus) bool {
	switch s {
	case StatusPendingPickup, StatusPickedUp, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

// MilestoneIndex returns the position of s in Milestones, or -1.
func MilestoneIndex(s OrderStatus) int {
	for i, m := range Milestones {
		if m == s {
			return i
		}
	}
	return -1
}
