package domain

import "time"

// Assignment binds one driver to one order for a concrete window.
type Assignment struct {
	ID        string
	OrderID   string
	DriverID  string
	Window    Window
	EndedAt   Optional[time.Time]
	CreatedAt time.Time
}

// Active reports whether the assignment still occupies the driver.
func (a Assignment) Active() bool { return a.EndedAt.IsNone() }
