//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch

package dispatch

import (
	"context"
	"time"

	"service-dispatch/internal/service/audit"
)

// orderEmitter receives every committed order mutation.
type orderEmitter interface {
	EmitOrderEvent(ctx context.Context, e audit.Event)
}

// recorder collects operation outcomes and eligibility rejections.
type recorder interface {
	ObserveOperation(operation, outcome string, took time.Duration)
	IncRejection(code string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
func (nopRecorder) IncRejection(string)                            {}
