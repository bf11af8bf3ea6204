package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/repository/memory"
)

func TestEvaluator_Precedence(t *testing.T) {
	t.Parallel()

	store := memory.New()
	store.PutAssignment(domain.Assignment{ID: "a1", OrderID: "O9", DriverID: "D1", Window: window(10, 30, 11, 30)})

	paused := driver("D1", "B")
	paused.Status = domain.DriverPaused
	inactive := driver("D1", "A")
	inactive.Active = false
	wrongZoneBusy := driver("D1", "B")
	busy := driver("D1", "A")
	offDuty := driver("D2", "A")
	offDuty.Unavailability = []domain.UnavailabilityWindow{{Window: window(10, 45, 12, 0), Reason: "vehicle service"}}

	o := order("O1", "A", window(10, 0, 11, 0))

	tests := []struct {
		name     string
		driver   domain.Driver
		order    domain.Order
		wantCode apperr.RejectCode
		reason   string
		conflict string
	}{
		{name: "paused beats zone and time", driver: paused, order: o, wantCode: apperr.RejectUnavailable, reason: "driver unavailable/paused"},
		{name: "inactive", driver: inactive, order: o, wantCode: apperr.RejectUnavailable, reason: "driver unavailable/paused"},
		{name: "zone beats time", driver: wrongZoneBusy, order: o, wantCode: apperr.RejectZoneMismatch, reason: "zone mismatch"},
		{name: "time conflict cites order", driver: busy, order: o, wantCode: apperr.RejectTimeConflict, reason: "time conflict with order O9", conflict: "O9"},
		{name: "unavailability window", driver: offDuty, order: o, wantCode: apperr.RejectTimeConflict, reason: "driver unavailable during window: vehicle service"},
		{name: "eligible", driver: driver("D3", "A"), order: o},
		{name: "empty order zone matches any", driver: driver("D3", "Z"), order: order("O2", "", window(10, 0, 11, 0))},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := newCtrl(t)
			rec := NewMockrecorder(ctrl)
			if tt.wantCode != "" {
				rec.EXPECT().IncRejection(string(tt.wantCode))
			}
			e := NewEvaluator(rec)

			require.NoError(t, store.WithTx(context.Background(), func(tx dispatchtx.Repository) error {
				v, err := e.Evaluate(context.Background(), tx, tt.driver, tt.order)
				require.NoError(t, err)
				if tt.wantCode == "" {
					assert.True(t, v.Assignable)
					assert.NoError(t, v.Err())
					return nil
				}
				assert.False(t, v.Assignable)
				assert.Equal(t, tt.wantCode, v.Code)
				assert.Equal(t, tt.reason, v.Reason)
				assert.Equal(t, tt.conflict, v.ConflictOrderID)

				var na *apperr.NotAssignableError
				require.True(t, errors.As(v.Err(), &na))
				assert.ErrorIs(t, v.Err(), apperr.ErrNotAssignable)
				return nil
			}))
		})
	}
}
