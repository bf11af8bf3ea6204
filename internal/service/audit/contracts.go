//go:generate mockgen -source=contracts.go -destination=audit_mocks_test.go -package=audit

package audit

import (
	"context"

	"service-dispatch/internal/domain"
)

// auditSink persists activity and notification entries.
type auditSink interface {
	AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error
	AppendNotification(ctx context.Context, n domain.NotificationEntry) error
}

// eventPublisher ships serialized order events to a broker.
type eventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type counter interface {
	Inc()
}
