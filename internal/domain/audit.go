package domain

import "time"

type (
	// ActivityType classifies an activity log entry.
	ActivityType string
	// Channel is a notification audience.
	Channel string
)

// Activity types.
const (
	ActivityAssign       ActivityType = "assign"
	ActivityUnassign     ActivityType = "unassign"
	ActivityReassign     ActivityType = "reassign"
	ActivityIncident     ActivityType = "incident"
	ActivityStatusChange ActivityType = "status_change"
)

// Notification channels.
const (
	ChannelClient Channel = "client"
	ChannelAdmin  Channel = "admin"
	ChannelDriver Channel = "driver"
)

// Valid checks if the Channel is known.
func (c Channel) Valid() bool {
	return c == ChannelClient || c == ChannelAdmin || c == ChannelDriver
}

// ActivityLogEntry is an immutable audit record.
type ActivityLogEntry struct {
	ID        string
	Type      ActivityType
	OrderID   string
	DriverID  Optional[string]
	Actor     string
	Status    OrderStatus
	Message   string
	CreatedAt time.Time
}

// NotificationEntry is a message for one audience. Only Read ever changes.
type NotificationEntry struct {
	ID         string
	Channel    Channel
	OrderID    string
	CustomerID string
	DriverID   Optional[string]
	Message    string
	CreatedAt  time.Time
	Read       bool
}
