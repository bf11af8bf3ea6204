package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/service/audit"
)

// Operation names used for metrics and logs.
const (
	opAssign     = "assign"
	opUnassign   = "unassign"
	opReassign   = "reassign"
	opTransition = "transition"
	opCancel     = "cancel"
	opIncident   = "incident"
)

// Service mutates order/driver assignments and order status.
// Every operation is serialized per order and per involved driver.
type Service struct {
	store            dispatchtx.Runner
	evaluator        *Evaluator
	emitter          orderEmitter
	metrics          recorder
	orderLocks       *keyedLocker
	driverLocks      *keyedLocker
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewService creates a dispatch Service. m may be nil.
func NewService(store dispatchtx.Runner, emitter orderEmitter, m recorder, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if m == nil {
		m = nopRecorder{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		store:            store,
		evaluator:        NewEvaluator(m),
		emitter:          emitter,
		metrics:          m,
		orderLocks:       newKeyedLocker(),
		driverLocks:      newKeyedLocker(),
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign binds driverID to the order, replacing any current driver. Status is unchanged.
func (s *Service) Assign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, error) {
	started := time.Now()
	res, order, err := s.assign(ctx, orderID, driverID, actor)
	s.observe(opAssign, started, err)
	if err != nil {
		s.logFailure(opAssign, orderID, err, logx.String("driver_id", driverID))
		return domain.AssignResult{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:             domain.ActivityAssign,
		Order:            order,
		DriverID:         domain.Some(res.DriverID),
		PreviousDriverID: res.PreviousDriverID,
		Actor:            actor,
	})
	s.logger.Info("driver assigned",
		logx.String("event", "driver_assigned"),
		logx.String("order_id", res.OrderID),
		logx.String("driver_id", res.DriverID),
		logx.String("actor", actor),
	)
	return res, nil
}

func (s *Service) assign(ctx context.Context, orderID, driverID, actor string) (domain.AssignResult, domain.Order, error) {
	ids, err := validateIDs(orderID, driverID, actor)
	if err != nil {
		return domain.AssignResult{}, domain.Order{}, err
	}
	orderID, driverID = ids[0], ids[1]

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	unlock, err := s.lock(ctx, orderID, driverID)
	if err != nil {
		return domain.AssignResult{}, domain.Order{}, err
	}
	defer unlock()

	var (
		res   domain.AssignResult
		order domain.Order
	)
	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !domain.IsAssignable(o.Status) {
			return apperr.InvalidTransition(string(o.Status), "assigned")
		}
		d, err := loadDriver(ctx, tx, driverID)
		if err != nil {
			return err
		}
		res, err = s.assignTx(ctx, tx, o, *d, s.now())
		order = *o
		return err
	})
	return res, order, err
}

// assignTx evaluates d for o and, when eligible, replaces the order's active assignment.
// o is updated in place.
func (s *Service) assignTx(ctx context.Context, tx dispatchtx.Repository, o *domain.Order, d domain.Driver, now time.Time) (domain.AssignResult, error) {
	v, err := s.evaluator.Evaluate(ctx, tx, d, *o)
	if err != nil {
		return domain.AssignResult{}, err
	}
	if !v.Assignable {
		return domain.AssignResult{}, v.Err()
	}

	prev := o.DriverID
	if err := endActive(ctx, tx, o.ID, now); err != nil {
		return domain.AssignResult{}, err
	}
	a := &domain.Assignment{
		ID:        s.newID(),
		OrderID:   o.ID,
		DriverID:  d.ID,
		Window:    o.Window,
		CreatedAt: now,
	}
	if err := tx.InsertAssignment(ctx, a); err != nil {
		return domain.AssignResult{}, err
	}
	if err := tx.SetOrderDriver(ctx, o.ID, domain.Some(d.ID), domain.Some(now), now); err != nil {
		return domain.AssignResult{}, err
	}
	o.DriverID = domain.Some(d.ID)
	o.DriverAssignedAt = domain.Some(now)
	o.UpdatedAt = now

	return domain.AssignResult{
		OrderID:          o.ID,
		DriverID:         d.ID,
		AssignmentID:     a.ID,
		Window:           a.Window,
		AssignedAt:       now,
		PreviousDriverID: prev,
	}, nil
}

// Unassign releases the order's driver. An order waiting for pickup returns to pending_assignment.
func (s *Service) Unassign(ctx context.Context, orderID, actor string) (domain.UnassignResult, error) {
	started := time.Now()
	res, order, err := s.unassign(ctx, orderID, actor)
	s.observe(opUnassign, started, err)
	if err != nil {
		s.logFailure(opUnassign, orderID, err)
		return domain.UnassignResult{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:     domain.ActivityUnassign,
		Order:    order,
		DriverID: domain.Some(res.DriverID),
		Actor:    actor,
	})
	s.logger.Info("driver unassigned",
		logx.String("event", "driver_unassigned"),
		logx.String("order_id", res.OrderID),
		logx.String("driver_id", res.DriverID),
		logx.String("actor", actor),
	)
	return res, nil
}

func (s *Service) unassign(ctx context.Context, orderID, actor string) (domain.UnassignResult, domain.Order, error) {
	ids, err := validateIDs(orderID, actor)
	if err != nil {
		return domain.UnassignResult{}, domain.Order{}, err
	}
	orderID = ids[0]

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	unlock, err := s.lock(ctx, orderID)
	if err != nil {
		return domain.UnassignResult{}, domain.Order{}, err
	}
	defer unlock()

	var (
		res   domain.UnassignResult
		order domain.Order
	)
	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !domain.IsReleasable(o.Status) {
			return apperr.InvalidTransition(string(o.Status), "unassigned")
		}
		driverID, ok := o.DriverID.Get()
		if !ok {
			return apperr.ErrNoActiveAssignment
		}
		now := s.now()
		if err := clearDriverTx(ctx, tx, o, now); err != nil {
			return err
		}
		if err := s.revertIfDriverless(ctx, tx, o, actor, "driver release", now); err != nil {
			return err
		}
		res = domain.UnassignResult{OrderID: o.ID, DriverID: driverID, EndedAt: now}
		order = *o
		return nil
	})
	return res, order, err
}

// clearDriverTx ends the active assignment and clears the driver fields.
func clearDriverTx(ctx context.Context, tx dispatchtx.Repository, o *domain.Order, now time.Time) error {
	if err := endActive(ctx, tx, o.ID, now); err != nil {
		return err
	}
	if err := tx.SetOrderDriver(ctx, o.ID, domain.None[string](), domain.None[time.Time](), now); err != nil {
		return err
	}
	o.DriverID = domain.None[string]()
	o.DriverAssignedAt = domain.None[time.Time]()
	o.UpdatedAt = now
	return nil
}

// revertIfDriverless moves an order that cannot stay in its status without a driver
// back to pending_assignment.
func (s *Service) revertIfDriverless(ctx context.Context, tx dispatchtx.Repository, o *domain.Order, actor, reason string, now time.Time) error {
	if !domain.RequiresDriver(o.Status) {
		return nil
	}
	msg := fmt.Sprintf("Order %s returned to %s after %s", o.ID, domain.StatusPendingAssignment, reason)
	return s.setStatusTx(ctx, tx, o, domain.StatusPendingAssignment, actor, msg, now)
}

// Reassign releases the current driver and assigns newDriverID. When the new driver is not
// eligible the order keeps no driver at all and the eligibility error is returned.
func (s *Service) Reassign(ctx context.Context, orderID, newDriverID, actor string) (domain.AssignResult, error) {
	started := time.Now()
	res, order, released, err := s.reassign(ctx, orderID, newDriverID, actor)
	s.observe(opReassign, started, err)

	if err != nil {
		s.logFailure(opReassign, orderID, err, logx.String("driver_id", newDriverID))
		if prev, ok := released.Get(); ok {
			s.emitter.EmitOrderEvent(ctx, audit.Event{
				Kind:     domain.ActivityUnassign,
				Order:    order,
				DriverID: domain.Some(prev),
				Actor:    actor,
			})
		}
		return domain.AssignResult{}, err
	}

	s.emitter.EmitOrderEvent(ctx, audit.Event{
		Kind:             domain.ActivityReassign,
		Order:            order,
		DriverID:         domain.Some(res.DriverID),
		PreviousDriverID: res.PreviousDriverID,
		Actor:            actor,
	})
	s.logger.Info("driver reassigned",
		logx.String("event", "driver_reassigned"),
		logx.String("order_id", res.OrderID),
		logx.String("driver_id", res.DriverID),
		logx.String("previous_driver_id", res.PreviousDriverID.OrElse("")),
		logx.String("actor", actor),
	)
	return res, nil
}

// reassign returns the released driver when the release was committed, even if the
// assignment that followed it failed.
func (s *Service) reassign(ctx context.Context, orderID, newDriverID, actor string) (domain.AssignResult, domain.Order, domain.Optional[string], error) {
	none := domain.None[string]()
	ids, err := validateIDs(orderID, newDriverID, actor)
	if err != nil {
		return domain.AssignResult{}, domain.Order{}, none, err
	}
	orderID, newDriverID = ids[0], ids[1]

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	unlock, err := s.lock(ctx, orderID, newDriverID)
	if err != nil {
		return domain.AssignResult{}, domain.Order{}, none, err
	}
	defer unlock()

	var (
		res       domain.AssignResult
		order     domain.Order
		released  = none
		assignErr error
	)
	err = s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := loadOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !domain.IsReleasable(o.Status) || !domain.IsAssignable(domain.ReleasedStatus(o.Status)) {
			return apperr.InvalidTransition(string(o.Status), "reassigned")
		}
		prev, ok := o.DriverID.Get()
		if !ok {
			return apperr.ErrNoActiveAssignment
		}
		d, err := loadDriver(ctx, tx, newDriverID)
		if err != nil {
			return err
		}

		now := s.now()
		// the release commits even when the assignment below is rejected
		if err := clearDriverTx(ctx, tx, o, now); err != nil {
			return err
		}
		if err := s.revertIfDriverless(ctx, tx, o, actor, "driver release", now); err != nil {
			return err
		}
		res, err = s.assignTx(ctx, tx, o, *d, now)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotAssignable) {
				return err
			}
			assignErr = err
		}
		res.PreviousDriverID = domain.Some(prev)
		released = domain.Some(prev)
		order = *o
		return nil
	})
	if err != nil {
		return domain.AssignResult{}, domain.Order{}, none, err
	}
	if assignErr != nil {
		return domain.AssignResult{}, order, released, assignErr
	}
	return res, order, released, nil
}

// lock takes the order lock, then the locks of the order's current driver and extra drivers.
func (s *Service) lock(ctx context.Context, orderID string, driverIDs ...string) (func(), error) {
	unlockOrder := s.orderLocks.Lock(orderID)

	var current string
	err := s.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil || o == nil {
			return err
		}
		current = o.DriverID.OrElse("")
		return nil
	})
	if err != nil {
		unlockOrder()
		return nil, err
	}

	unlockDrivers := s.driverLocks.LockAll(append(driverIDs, current)...)
	return func() {
		unlockDrivers()
		unlockOrder()
	}, nil
}

func (s *Service) observe(op string, started time.Time, err error) {
	s.metrics.ObserveOperation(op, outcome(err), time.Since(started))
}

func (s *Service) logFailure(op, orderID string, err error, fields ...logx.Field) {
	fields = append(fields, logx.String("operation", op), logx.String("order_id", orderID), logx.Err(err))
	switch outcome(err) {
	case "error":
		s.logger.Error("dispatch operation failed", fields...)
	default:
		s.logger.Info("dispatch operation rejected", fields...)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrNotAssignable):
		return "rejected"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, apperr.ErrNoActiveAssignment):
		return "invalid_state"
	case errors.Is(err, apperr.ErrInvalid):
		return "invalid"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func loadOrder(ctx context.Context, tx dispatchtx.Repository, id string) (*domain.Order, error) {
	o, err := tx.GetOrderForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrOrderNotFound, id)
	}
	return o, nil
}

func loadDriver(ctx context.Context, tx dispatchtx.Repository, id string) (*domain.Driver, error) {
	d, err := tx.GetDriverForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrDriverNotFound, id)
	}
	return d, nil
}

func endActive(ctx context.Context, tx dispatchtx.Repository, orderID string, now time.Time) error {
	a, err := tx.ActiveAssignmentByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	return tx.EndAssignment(ctx, a.ID, now)
}

func validateIDs(ids ...string) ([]string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("empty identifier: %w", apperr.ErrInvalid)
		}
		out[i] = id
	}
	return out, nil
}
