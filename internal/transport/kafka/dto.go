package kafka

import (
	"strings"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/service/orders"
)

// CommandDTO is the wire form of orders.Command
type CommandDTO struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	DriverID    string    `json:"driver_id,omitempty"`
	PickupStart time.Time `json:"pickup_start,omitempty"`
	PickupEnd   time.Time `json:"pickup_end,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	Note        string    `json:"note,omitempty"`
}

// ToDomain converts CommandDTO to orders.Command
func ToDomain(dto CommandDTO) orders.Command {
	return orders.Command{
		Type:     strings.TrimSpace(dto.Type),
		OrderID:  strings.TrimSpace(dto.OrderID),
		DriverID: strings.TrimSpace(dto.DriverID),
		Window:   domain.Window{Start: dto.PickupStart.UTC(), End: dto.PickupEnd.UTC()},
		Actor:    strings.TrimSpace(dto.Actor),
		Note:     strings.TrimSpace(dto.Note),
	}
}
