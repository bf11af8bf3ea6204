package orders

import (
	"service-dispatch/internal/domain"
)

// Command types accepted from the commands topic.
const (
	CommandReorder  = "reorder"
	CommandCancel   = "cancel"
	CommandUnassign = "unassign"
	CommandAssign   = "assign"
)

// Command is a single dispatch command produced by another system.
type Command struct {
	Type     string
	OrderID  string
	DriverID string
	Window   domain.Window
	Actor    string
	Note     string
}
