package orders

import (
	"context"
	"errors"
	"strings"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/logx"
)

// DefaultCommandActor is recorded for commands that carry no actor.
const DefaultCommandActor = "system:kafka"

// Processor executes dispatch commands
type Processor struct {
	dispatch DispatchPort
	reorder  ReorderPort
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new orders.Processor
func NewProcessor(dispatchSvc DispatchPort, reorderer ReorderPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		dispatch: dispatchSvc,
		reorder:  reorderer,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onReorder, p.onCancel, p.onUnassign, p.onAssign)
	return p
}

// Handle processes a single Command. Rejections by the dispatch rules are logged and
// swallowed; only infrastructure failures are returned.
func (p *Processor) Handle(ctx context.Context, c Command) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(c.Type)
	if !ok {
		p.logger.Debug("command ignored", logx.String("type", c.Type), logx.String("order_id", c.OrderID))
		return nil
	}
	if strings.TrimSpace(c.Actor) == "" {
		c.Actor = DefaultCommandActor
	}

	err := fn(ctx, c)
	if err == nil || !isRejection(err) {
		return err
	}
	p.logger.Info("command rejected",
		logx.String("type", c.Type),
		logx.String("order_id", c.OrderID),
		logx.Err(err),
	)
	return nil
}

func (p *Processor) onReorder(ctx context.Context, c Command) error {
	res, err := p.reorder.Reorder(ctx, ReorderRequest{SourceOrderID: c.OrderID, Window: c.Window, Actor: c.Actor})
	if err != nil {
		return err
	}
	if !res.Assigned {
		p.logger.Info("reorder left unassigned",
			logx.String("order_id", res.Order.ID),
			logx.String("source_order_id", c.OrderID),
			logx.String("reason", res.Reason),
		)
	}
	return nil
}

func (p *Processor) onCancel(ctx context.Context, c Command) error {
	_, err := p.dispatch.Cancel(ctx, c.OrderID, c.Actor, c.Note)
	return err
}

func (p *Processor) onUnassign(ctx context.Context, c Command) error {
	_, err := p.dispatch.Unassign(ctx, c.OrderID, c.Actor)
	return err
}

func (p *Processor) onAssign(ctx context.Context, c Command) error {
	_, err := p.dispatch.Assign(ctx, c.OrderID, c.DriverID, c.Actor)
	return err
}

func isRejection(err error) bool {
	return errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrNotAssignable) ||
		errors.Is(err, apperr.ErrInvalidTransition) ||
		errors.Is(err, apperr.ErrNoActiveAssignment) ||
		errors.Is(err, apperr.ErrInvalid)
}
