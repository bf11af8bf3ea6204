package orders

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Command) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onReorder, onCancel, onUnassign, onAssign actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			CommandReorder:  onReorder,
			"duplicate":     onReorder,
			CommandCancel:   onCancel,
			"canceled":      onCancel,
			CommandUnassign: onUnassign,
			CommandAssign:   onAssign,
		},
	}
}

func (f *actionFactory) get(kind string) (actionFunc, bool) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	fn, ok := f.byType[kind]
	return fn, ok
}
