package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/ports/dispatchtx"
)

// DispatchRepo is the Postgres-backed dispatch store.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsOverlap(err) || IsDuplicate(err) {
			return fmt.Errorf("commit tx: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo runs dispatch queries inside one transaction.
type TxRepo struct {
	tx pgx.Tx
}

// GetOrderForUpdate locks and returns the order row.
func (r *TxRepo) GetOrderForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q for update: %w", id, err)
	}
	return o, nil
}

// GetDriverForUpdate locks the driver row so concurrent assignments to it serialize.
func (r *TxRepo) GetDriverForUpdate(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(r.tx.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %q for update: %w", id, err)
	}
	windows, err := loadUnavailability(ctx, r.tx, []string{id})
	if err != nil {
		return nil, err
	}
	d.Unavailability = windows[id]
	return d, nil
}

// ListDrivers returns every driver ordered by id.
func (r *TxRepo) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.tx.Query(ctx, `SELECT `+driverColumns+` FROM drivers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Driver, 0)
	ids := make([]string, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, *d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	windows, err := loadUnavailability(ctx, r.tx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Unavailability = windows[out[i].ID]
	}
	return out, nil
}

// ActiveAssignmentsByDriver lists open assignments of a driver.
func (r *TxRepo) ActiveAssignmentsByDriver(ctx context.Context, driverID string) ([]domain.Assignment, error) {
	rows, err := r.tx.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE driver_id = $1 AND ended_at IS NULL
		ORDER BY window_start, id
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("active assignments of %q: %w", driverID, err)
	}
	defer rows.Close()

	out := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// ActiveAssignmentByOrder returns the order's open assignment or nil.
func (r *TxRepo) ActiveAssignmentByOrder(ctx context.Context, orderID string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE order_id = $1 AND ended_at IS NULL
		FOR UPDATE
	`, orderID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("active assignment of order %q: %w", orderID, err)
	}
	return a, nil
}

// InsertAssignment inserts a new assignment. Overlaps rejected by the exclusion constraint map to ErrConflict.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO assignments (id, order_id, driver_id, window_start, window_end, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.OrderID, a.DriverID, a.Window.Start, a.Window.End, a.EndedAt.Ptr(), a.CreatedAt)
	if err != nil {
		if IsOverlap(err) || IsDuplicate(err) {
			return fmt.Errorf("insert assignment %s: %w", a.ID, apperr.ErrConflict)
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// EndAssignment stamps ended_at on an open assignment.
func (r *TxRepo) EndAssignment(ctx context.Context, id string, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE assignments SET ended_at = $2 WHERE id = $1 AND ended_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("end assignment %q: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("assignment %q not found", id)
	}
	return nil
}

// SetOrderDriver updates the order's driver fields.
func (r *TxRepo) SetOrderDriver(ctx context.Context, orderID string, driverID domain.Optional[string], assignedAt domain.Optional[time.Time], now time.Time) error {
	ct, err := r.tx.Exec(ctx, `
		UPDATE orders
		SET driver_id = $2, driver_assigned_at = $3, updated_at = $4
		WHERE id = $1
	`, orderID, driverID.Ptr(), assignedAt.Ptr(), now)
	if err != nil {
		return fmt.Errorf("set driver of order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not found", orderID)
	}
	return nil
}

// SetOrderDelivered moves the driver into delivered_by and clears the driver fields.
func (r *TxRepo) SetOrderDelivered(ctx context.Context, orderID, driverID string, now time.Time) error {
	ct, err := r.tx.Exec(ctx, `
		UPDATE orders
		SET delivered_by = $2, driver_id = NULL, driver_assigned_at = NULL, updated_at = $3
		WHERE id = $1
	`, orderID, driverID, now)
	if err != nil {
		return fmt.Errorf("set deliverer of order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not found", orderID)
	}
	return nil
}

// SetOrderStatus updates the order status.
func (r *TxRepo) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, now time.Time) error {
	ct, err := r.tx.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, orderID, string(status), now)
	if err != nil {
		return fmt.Errorf("set status of order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not found", orderID)
	}
	return nil
}

// InsertOrder inserts a new order.
func (r *TxRepo) InsertOrder(ctx context.Context, o *domain.Order) error {
	return insertOrder(ctx, r.tx, o)
}

// AppendActivity appends an activity log entry.
func (r *TxRepo) AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error {
	return appendActivity(ctx, r.tx, e)
}

var _ dispatchtx.Runner = (*DispatchRepo)(nil)
var _ dispatchtx.Repository = (*TxRepo)(nil)
