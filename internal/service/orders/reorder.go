package orders

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
	"service-dispatch/internal/service/dispatch"
)

// AutoDispatchActor is the actor recorded for assignments made by the reorder flow.
const AutoDispatchActor = "system:auto-dispatch"

// orderRefAttempts bounds how many order references are drawn when one is already taken.
const orderRefAttempts = 4

// Reasons reported when a reorder ends without a driver.
const (
	ReasonNoPickupLocation = "pickup location unknown"
	ReasonNoCandidate      = "no eligible driver"
	ReasonSelectionFailed  = "driver selection failed"
)

// ReorderRequest asks for a copy of SourceOrderID scheduled in Window.
type ReorderRequest struct {
	SourceOrderID string
	Window        domain.Window
	Actor         string
}

// ReorderResult is the created order and the outcome of automatic dispatch.
type ReorderResult struct {
	Order    domain.Order
	Assigned bool
	DriverID string
	Reason   string
}

// Reorderer duplicates orders and dispatches them to the nearest eligible driver.
type Reorderer struct {
	store            dispatchtx.Runner
	resolver         coordResolver
	selector         driverSelector
	dispatch         DispatchPort
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewReorderer creates a Reorderer.
func NewReorderer(store dispatchtx.Runner, resolver coordResolver, selector driverSelector, dispatchSvc DispatchPort, timeout time.Duration, logger logx.Logger) *Reorderer {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Reorderer{
		store:            store,
		resolver:         resolver,
		selector:         selector,
		dispatch:         dispatchSvc,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

// Reorder creates the copy, then tries to assign it. A failed automatic assignment is
// reported in the result, not as an error.
func (r *Reorderer) Reorder(ctx context.Context, req ReorderRequest) (ReorderResult, error) {
	src, err := r.validate(ctx, req)
	if err != nil {
		return ReorderResult{}, err
	}

	now := r.now()
	o := domain.Order{
		ID:              r.newOrderRef(),
		CustomerID:      src.CustomerID,
		PickupAddress:   src.PickupAddress,
		PickupCoords:    r.coords(ctx, src.PickupAddress, src.PickupCoords),
		DeliveryAddress: src.DeliveryAddress,
		DeliveryCoords:  r.coords(ctx, src.DeliveryAddress, src.DeliveryCoords),
		Window:          req.Window,
		WeightKg:        src.WeightKg,
		VolumeM3:        src.VolumeM3,
		TransportType:   src.TransportType,
		Zone:            src.Zone,
		Amount:          src.Amount,
		Currency:        src.Currency,
		Instructions:    src.Instructions,
		Status:          domain.StatusPendingAssignment,
		SourceOrderID:   domain.Some(src.ID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for attempt := 1; ; attempt++ {
		err := r.insert(ctx, &o, req.Actor)
		if err == nil {
			break
		}
		if !errors.Is(err, apperr.ErrConflict) || attempt == orderRefAttempts {
			return ReorderResult{}, err
		}
		r.logger.Warn("order reference taken, drawing another",
			logx.String("order_id", o.ID),
			logx.Int("attempt", attempt),
		)
		o.ID = r.newOrderRef()
	}
	r.logger.Info("order reordered",
		logx.String("event", "order_reordered"),
		logx.String("order_id", o.ID),
		logx.String("source_order_id", src.ID),
		logx.String("actor", req.Actor),
	)

	res := ReorderResult{Order: o}
	pickup, ok := o.PickupCoords.Get()
	if !ok {
		res.Reason = ReasonNoPickupLocation
		return res, nil
	}

	d, err := r.selector.SelectNearest(ctx, dispatch.Criteria{
		Pickup:      pickup,
		Window:      o.Window,
		MinCapacity: domain.Capacity{WeightKg: o.WeightKg, VolumeM3: o.VolumeM3},
		Zone:        o.Zone,
		OrderID:     o.ID,
	})
	if err != nil {
		r.logger.Error("nearest driver selection failed", logx.String("order_id", o.ID), logx.Err(err))
		res.Reason = ReasonSelectionFailed
		return res, nil
	}
	if d == nil {
		res.Reason = ReasonNoCandidate
		return res, nil
	}

	ar, err := r.dispatch.Assign(ctx, o.ID, d.ID, AutoDispatchActor)
	if err != nil {
		// another caller may have taken the driver between selection and assignment
		var na *apperr.NotAssignableError
		if errors.As(err, &na) {
			res.Reason = na.Reason
		} else {
			r.logger.Error("automatic assignment failed", logx.String("order_id", o.ID), logx.Err(err))
			res.Reason = err.Error()
		}
		return res, nil
	}

	res.Assigned = true
	res.DriverID = ar.DriverID
	res.Order.DriverID = domain.Some(ar.DriverID)
	res.Order.DriverAssignedAt = domain.Some(ar.AssignedAt)
	return res, nil
}

func (r *Reorderer) validate(ctx context.Context, req ReorderRequest) (domain.Order, error) {
	id := strings.TrimSpace(req.SourceOrderID)
	if id == "" || strings.TrimSpace(req.Actor) == "" {
		return domain.Order{}, fmt.Errorf("source order and actor are required: %w", apperr.ErrInvalid)
	}
	if !req.Window.Valid() {
		return domain.Order{}, fmt.Errorf("pickup window must end after it starts: %w", apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, r.operationTimeout)
	defer cancel()
	var src domain.Order
	err := r.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		o, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: %s", apperr.ErrOrderNotFound, id)
		}
		src = *o
		return nil
	})
	return src, err
}

// coords resolves address through the geocode cache and falls back to the known point.
func (r *Reorderer) coords(ctx context.Context, address string, known domain.Optional[domain.Coordinates]) domain.Optional[domain.Coordinates] {
	if r.resolver != nil {
		if c, ok := r.resolver.Resolve(ctx, address); ok {
			return domain.Some(c)
		}
	}
	return known
}

func (r *Reorderer) insert(ctx context.Context, o *domain.Order, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, r.operationTimeout)
	defer cancel()
	return r.store.WithTx(ctx, func(tx dispatchtx.Repository) error {
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		return tx.AppendActivity(ctx, domain.ActivityLogEntry{
			ID:        r.newID(),
			Type:      domain.ActivityStatusChange,
			OrderID:   o.ID,
			Actor:     actor,
			Status:    o.Status,
			Message:   fmt.Sprintf("Order %s created from order %s", o.ID, o.SourceOrderID.OrElse("")),
			CreatedAt: o.CreatedAt,
		})
	})
}

func (r *Reorderer) newOrderRef() string {
	raw := strings.ReplaceAll(r.newID(), "-", "")
	if len(raw) > 8 {
		raw = raw[:8]
	}
	return "ORD-" + strings.ToUpper(raw)
}
