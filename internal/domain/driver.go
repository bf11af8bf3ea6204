package domain

// Capacity is a load ceiling or requirement.
type Capacity struct {
	WeightKg float64
	VolumeM3 float64
}

// Fits reports whether c can carry the load need.
func (c Capacity) Fits(need Capacity) bool {
	return c.WeightKg >= need.WeightKg && c.VolumeM3 >= need.VolumeM3
}

// UnavailabilityWindow is an explicit period during which a driver cannot work.
type UnavailabilityWindow struct {
	Window Window
	Reason string
}

// Driver is a delivery agent. The dispatch engine never mutates drivers.
type Driver struct {
	ID             string
	Name           string
	Phone          string
	Zone           string
	Vehicle        string
	Capacity       Capacity
	Status         DriverStatus
	Active         bool
	LastLocation   Optional[Coordinates]
	Unavailability []UnavailabilityWindow
}

// Workable reports whether the driver is active and not paused.
func (d Driver) Workable() bool {
	return d.Active && d.Status != DriverPaused
}
