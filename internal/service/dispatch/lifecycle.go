package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/audit"
)

// Transition moves the order to status to. Entering incident or cancelled goes through
// ReportIncident and Cancel.
func (s *Service) Transition(ctx context.Context, orderID string, to domain.OrderStatus, actor, note string) (domain.Order, error) {
	if !to.Valid() {
		return domain.Order{}, fmt.Errorf("unknown status %q: %w", to, apperr.ErrInvalid)
	}
	switch to {
	case domain.StatusIncident:
		return s.ReportIncident(ctx, orderID, actor, note)
	case domain.StatusCancelled:
		return s.Cancel(ctx, orderID, actor, note)
	}

	started := time.Now()
	var driverID domain.Optional[string]
	order, err := s.mutateStatus(ctx, orderID, actor, func(tx dispatchtx.Repository, o *domain.Order, now time.Time) error {
		if !domain.CanTransition(o.Status, to) {
			return apperr.InvalidTransition(string(o.Status), string(to))
		}
		if domain.RequiresDriver(to) && !o.HasDriver() {
			return fmt.Errorf("%w: order %s needs a driver to become %s", apperr.ErrNoActiveAssignment, o.ID, to)
		}
		driverID = o.DriverID
		if to == domain.StatusDelivered {
			if err := endActive(ctx, tx, o.ID, now); err != nil {
				return err
			}
			by, _ := o.DriverID.Get()
			if err := tx.SetOrderDelivered(ctx, o.ID, by, now); err != nil {
				return err
			}
			o.DeliveredBy = o.DriverID
			o.DriverID = domain.None[string]()
			o.DriverAssignedAt = domain.None[time.Time]()
			o.UpdatedAt = now
		}
		return s.setStatusTx(ctx, tx, o, to, actor, noteOr(note, o.ID, to), now)
	})
	s.observe(opTransition, started, err)
	if err != nil {
		s.logFailure(opTransition, orderID, err, logx.String("to", string(to)))
		return domain.Order{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:             domain.ActivityStatusChange,
		Order:            order,
		DriverID:         driverID,
		Actor:            actor,
		Message:          noteOr(note, order.ID, to),
		ActivityRecorded: true,
	})
	s.logger.Info("order status changed",
		logx.String("event", "order_status_changed"),
		logx.String("order_id", order.ID),
		logx.String("status", string(to)),
		logx.String("actor", actor),
	)
	return order, nil
}

// Cancel cancels an order that has not been picked up and releases its driver.
func (s *Service) Cancel(ctx context.Context, orderID, actor, note string) (domain.Order, error) {
	started := time.Now()
	var released domain.Optional[string]
	order, err := s.mutateStatus(ctx, orderID, actor, func(tx dispatchtx.Repository, o *domain.Order, now time.Time) error {
		if !domain.IsCancellable(o.Status) {
			return apperr.InvalidTransition(string(o.Status), string(domain.StatusCancelled))
		}
		released = o.DriverID
		if err := clearDriverTx(ctx, tx, o, now); err != nil {
			return err
		}
		return s.setStatusTx(ctx, tx, o, domain.StatusCancelled, actor, noteOr(note, o.ID, domain.StatusCancelled), now)
	})
	s.observe(opCancel, started, err)
	if err != nil {
		s.logFailure(opCancel, orderID, err)
		return domain.Order{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:             domain.ActivityStatusChange,
		Order:            order,
		DriverID:         released,
		Actor:            actor,
		Message:          noteOr(note, order.ID, domain.StatusCancelled),
		ActivityRecorded: true,
	})
	s.logger.Info("order cancelled",
		logx.String("event", "order_cancelled"),
		logx.String("order_id", order.ID),
		logx.String("actor", actor),
	)
	return order, nil
}

// ReportIncident moves an active order into incident. The driver, if any, keeps the order.
func (s *Service) ReportIncident(ctx context.Context, orderID, actor, note string) (domain.Order, error) {
	started := time.Now()
	order, err := s.mutateStatus(ctx, orderID, actor, func(tx dispatchtx.Repository, o *domain.Order, now time.Time) error {
		if !domain.CanTransition(o.Status, domain.StatusIncident) {
			return apperr.InvalidTransition(string(o.Status), string(domain.StatusIncident))
		}
		return s.setStatusTx(ctx, tx, o, domain.StatusIncident, actor, noteOr(note, o.ID, domain.StatusIncident), now)
	})
	s.observe(opIncident, started, err)
	if err != nil {
		s.logFailure(opIncident, orderID, err)
		return domain.Order{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:     domain.ActivityIncident,
		Order:    order,
		DriverID: order.DriverID,
		Actor:    actor,
		Message:  strings.TrimSpace(note),
	})
	s.logger.Warn("incident reported",
		logx.String("event", "order_incident"),
		logx.String("order_id", order.ID),
		logx.String("driver_id", order.DriverID.OrElse("")),
		logx.String("actor", actor),
	)
	return order, nil
}

type statusMutation func(tx dispatchtx.Repository, o *domain.Order, now time.Time) error

// mutateStatus runs fn under the order and driver locks inside one transaction
// and returns the resulting order.
func (s *Service) mutateStatus(ctx context.Context, orderID, actor string, fn statusMutation) (domain.Order, error) {
	ids, err := validateIDs(orderID, actor)
	if err != nil {
		return domain.Order{}, err
	}
	orderID = ids[0]

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	unlock, err := s.lock(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	defer unlock()

	var order domain.Order
	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := fn(tx, o, s.now()); err != nil {
			return err
		}
		order = *o
		return nil
	})
	return order, err
}

// setStatusTx writes the new status and its status_change entry in the same transaction.
func (s *Service) setStatusTx(ctx context.Context, tx dispatchtx.Repository, o *domain.Order, to domain.OrderStatus, actor, msg string, now time.Time) error {
	if err := tx.SetOrderStatus(ctx, o.ID, to, now); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now
	return tx.AppendActivity(ctx, domain.ActivityLogEntry{
		ID:        s.newID(),
		Type:      domain.ActivityStatusChange,
		OrderID:   o.ID,
		DriverID:  o.DriverID,
		Actor:     actor,
		Status:    to,
		Message:   msg,
		CreatedAt: now,
	})
}

func noteOr(note, orderID string, to domain.OrderStatus) string {
	if n := strings.TrimSpace(note); n != "" {
		return n
	}
	return fmt.Sprintf("Order %s is now %s", orderID, to)
}
