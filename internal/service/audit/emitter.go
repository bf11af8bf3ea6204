// Package audit turns committed order mutations into activity entries,
// per-audience notifications and broker events.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

// Emitter is the single funnel for order audit side effects. Failures are logged
// and counted; they never undo the mutation that produced the event.
type Emitter struct {
	sink      auditSink
	publisher eventPublisher
	failures  counter
	logger    logx.Logger
	now       func() time.Time
	newID     func() string
}

// NewEmitter creates an Emitter. publisher and failures may be nil.
func NewEmitter(sink auditSink, publisher eventPublisher, failures counter, logger logx.Logger) *Emitter {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Emitter{
		sink:      sink,
		publisher: publisher,
		failures:  failures,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// EmitOrderEvent records the event. It runs detached from ctx cancellation so that a
// caller deadline cannot drop the audit trail of a committed mutation.
func (e *Emitter) EmitOrderEvent(ctx context.Context, ev Event) {
	ctx = context.WithoutCancel(ctx)
	at := e.now()
	msg := ev.message()
	log := e.logger.With(
		logx.String("order_id", ev.Order.ID),
		logx.String("kind", string(ev.Kind)),
	)

	if !ev.ActivityRecorded {
		entry := domain.ActivityLogEntry{
			ID:        e.newID(),
			Type:      ev.Kind,
			OrderID:   ev.Order.ID,
			DriverID:  ev.DriverID,
			Actor:     ev.Actor,
			Status:    ev.Order.Status,
			Message:   msg,
			CreatedAt: at,
		}
		if err := e.sink.AppendActivity(ctx, entry); err != nil {
			e.fail(log, "append activity failed", err)
		}
	}

	for _, ch := range ev.audiences() {
		n := domain.NotificationEntry{
			ID:         e.newID(),
			Channel:    ch,
			OrderID:    ev.Order.ID,
			CustomerID: ev.Order.CustomerID,
			Message:    msg,
			CreatedAt:  at,
		}
		if ch == domain.ChannelDriver {
			n.DriverID = ev.DriverID
		}
		if err := e.sink.AppendNotification(ctx, n); err != nil {
			e.fail(log, "append notification failed", err, logx.String("channel", string(ch)))
		}
	}

	if e.publisher != nil {
		e.publish(ctx, log, ev, msg, at)
	}
}

func (e *Emitter) publish(ctx context.Context, log logx.Logger, ev Event, msg string, at time.Time) {
	payload, err := json.Marshal(OrderEvent{
		EventID:          e.newID(),
		Kind:             string(ev.Kind),
		OrderID:          ev.Order.ID,
		CustomerID:       ev.Order.CustomerID,
		Status:           string(ev.Order.Status),
		DriverID:         ev.DriverID.Ptr(),
		PreviousDriverID: ev.PreviousDriverID.Ptr(),
		Actor:            ev.Actor,
		Message:          msg,
		OccurredAt:       at,
	})
	if err != nil {
		e.fail(log, "encode order event failed", err)
		return
	}
	if err := e.publisher.Publish(ctx, ev.Order.ID, payload); err != nil {
		e.fail(log, "publish order event failed", err)
	}
}

func (e *Emitter) fail(log logx.Logger, msg string, err error, fields ...logx.Field) {
	if e.failures != nil {
		e.failures.Inc()
	}
	log.Error(msg, append(fields, logx.Err(err))...)
}
