package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/geo"
)

// StepState is the display state of one timeline milestone.
type StepState string

// Timeline step states.
const (
	StepDone      StepState = "done"
	StepCurrent   StepState = "current"
	StepPending   StepState = "pending"
	StepCancelled StepState = "cancelled"
)

// TimelineStep is one canonical milestone of an order.
type TimelineStep struct {
	Status domain.OrderStatus
	State  StepState
	At     domain.Optional[time.Time]
}

// OrderDetail is an order with its audit trail and milestone timeline.
type OrderDetail struct {
	Order       domain.Order
	ActivityLog []domain.ActivityLogEntry
	Timeline    []TimelineStep
	// RouteKm is the pickup to delivery distance when both ends are known.
	RouteKm domain.Optional[float64]
}

// QueryService serves the read side of the dispatch store.
type QueryService struct {
	store            readStore
	route            routeEstimator
	operationTimeout time.Duration
}

// NewQueryService creates a QueryService. route may be nil; orders without stored
// coordinates then carry no route estimate.
func NewQueryService(store readStore, route routeEstimator, timeout time.Duration) *QueryService {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &QueryService{store: store, route: route, operationTimeout: timeout}
}

func (s *QueryService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// ListOrders returns orders matching f, oldest first.
func (s *QueryService) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", f.Status, apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListOrders(ctx, f)
}

// GetOrderDetail returns the order, its activity log and its timeline.
func (s *QueryService) GetOrderDetail(ctx context.Context, id string) (OrderDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return OrderDetail{}, fmt.Errorf("empty order id: %w", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	if o == nil {
		return OrderDetail{}, fmt.Errorf("%w: %s", apperr.ErrOrderNotFound, id)
	}
	log, err := s.store.ListActivity(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{
		Order:       *o,
		ActivityLog: log,
		Timeline:    BuildTimeline(*o, log),
		RouteKm:     s.routeKm(ctx, *o),
	}, nil
}

// routeKm prefers the stored coordinates and falls back to geocoding the addresses.
func (s *QueryService) routeKm(ctx context.Context, o domain.Order) domain.Optional[float64] {
	from, okFrom := o.PickupCoords.Get()
	to, okTo := o.DeliveryCoords.Get()
	if okFrom && okTo {
		return domain.Some(geo.DistanceKm(from, to))
	}
	if s.route == nil || strings.TrimSpace(o.PickupAddress) == "" || strings.TrimSpace(o.DeliveryAddress) == "" {
		return domain.None[float64]()
	}
	km, ok := s.route.DistanceKm(ctx, o.PickupAddress, o.DeliveryAddress)
	if !ok {
		return domain.None[float64]()
	}
	return domain.Some(km)
}

// BuildTimeline derives the milestone steps of o from its activity log.
func BuildTimeline(o domain.Order, log []domain.ActivityLogEntry) []TimelineStep {
	reached := make(map[domain.OrderStatus]time.Time, len(domain.Milestones))
	reached[domain.StatusPendingAssignment] = o.CreatedAt

	// the latest milestone in the log wins, so a release back to pending_assignment moves it back
	current := 0
	for _, e := range log {
		if e.Type != domain.ActivityStatusChange {
			continue
		}
		if i := domain.MilestoneIndex(e.Status); i >= 0 {
			current = i
			reached[e.Status] = e.CreatedAt
		}
	}
	if i := domain.MilestoneIndex(o.Status); i >= 0 {
		current = i
	}

	steps := make([]TimelineStep, len(domain.Milestones))
	for i, m := range domain.Milestones {
		step := TimelineStep{Status: m, State: StepPending}
		switch {
		case i < current:
			step.State = StepDone
		case i == current && m == domain.StatusDelivered:
			step.State = StepDone
		case i == current:
			step.State = StepCurrent
		case o.Status == domain.StatusCancelled:
			step.State = StepCancelled
		}
		if at, ok := reached[m]; ok && i <= current {
			step.At = domain.Some(at)
		}
		steps[i] = step
	}
	return steps
}

// ListNotifications returns notifications matching f in emission order.
func (s *QueryService) ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error) {
	if f.Channel != "" && !f.Channel.Valid() {
		return nil, fmt.Errorf("unknown channel %q: %w", f.Channel, apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.store.ListNotifications(ctx, f)
}

// MarkNotificationRead flags one notification as read.
func (s *QueryService) MarkNotificationRead(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("empty notification id: %w", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.store.MarkNotificationRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
