package audit

import (
	"fmt"
	"strings"
	"time"

	"service-dispatch/internal/domain"
)

// Event describes one committed order mutation.
type Event struct {
	Kind  domain.ActivityType
	Order domain.Order
	// DriverID is the driver the event concerns: the assigned, released or new driver.
	DriverID         domain.Optional[string]
	PreviousDriverID domain.Optional[string]
	Actor            string
	Message          string
	// ActivityRecorded is set when the mutating transaction already wrote the activity entry.
	ActivityRecorded bool
}

// OrderEvent is the message published for every emitted Event.
type OrderEvent struct {
	EventID          string    `json:"event_id"`
	Kind             string    `json:"kind"`
	OrderID          string    `json:"order_id"`
	CustomerID       string    `json:"customer_id"`
	Status           string    `json:"status"`
	DriverID         *string   `json:"driver_id,omitempty"`
	PreviousDriverID *string   `json:"previous_driver_id,omitempty"`
	Actor            string    `json:"actor"`
	Message          string    `json:"message"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// audiences returns the notification channels for the event.
func (e Event) audiences() []domain.Channel {
	switch e.Kind {
	case domain.ActivityAssign, domain.ActivityReassign, domain.ActivityIncident:
		return []domain.Channel{domain.ChannelClient, domain.ChannelAdmin, domain.ChannelDriver}
	case domain.ActivityUnassign:
		return []domain.Channel{domain.ChannelClient, domain.ChannelAdmin}
	case domain.ActivityStatusChange:
		if e.DriverID.IsSome() {
			return []domain.Channel{domain.ChannelClient, domain.ChannelAdmin, domain.ChannelDriver}
		}
		return []domain.Channel{domain.ChannelClient, domain.ChannelAdmin}
	}
	return nil
}

// message returns the explicit message or a default one for the kind.
func (e Event) message() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	driver := e.DriverID.OrElse("")
	switch e.Kind {
	case domain.ActivityAssign:
		return fmt.Sprintf("Driver %s assigned to order %s", driver, e.Order.ID)
	case domain.ActivityUnassign:
		return fmt.Sprintf("Driver %s unassigned from order %s", driver, e.Order.ID)
	case domain.ActivityReassign:
		if prev, ok := e.PreviousDriverID.Get(); ok {
			return fmt.Sprintf("Order %s reassigned from driver %s to driver %s", e.Order.ID, prev, driver)
		}
		return fmt.Sprintf("Order %s reassigned to driver %s", e.Order.ID, driver)
	case domain.ActivityIncident:
		return fmt.Sprintf("Incident reported on order %s", e.Order.ID)
	case domain.ActivityStatusChange:
		return fmt.Sprintf("Order %s is now %s", e.Order.ID, e.Order.Status)
	}
	return fmt.Sprintf("Order %s updated", e.Order.ID)
}
