package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"service-dispatch/internal/apperr"
	"service-dispatch/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func loadUnavailability(ctx context.Context, q querier, driverIDs []string) (map[string][]domain.UnavailabilityWindow, error) {
	out := make(map[string][]domain.UnavailabilityWindow, len(driverIDs))
	if len(driverIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT driver_id, starts_at, ends_at, reason
		FROM driver_unavailability
		WHERE driver_id = ANY($1)
		ORDER BY driver_id, starts_at, id
	`, driverIDs)
	if err != nil {
		return nil, fmt.Errorf("load unavailability: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			driverID string
			w        domain.UnavailabilityWindow
		)
		if err := rows.Scan(&driverID, &w.Window.Start, &w.Window.End, &w.Reason); err != nil {
			return nil, fmt.Errorf("scan unavailability: %w", err)
		}
		out[driverID] = append(out[driverID], w)
	}
	return out, rows.Err()
}

func insertOrder(ctx context.Context, q querier, o *domain.Order) error {
	pLat, pLng := latLng(o.PickupCoords)
	dLat, dLng := latLng(o.DeliveryCoords)
	_, err := q.Exec(ctx, `
		INSERT INTO orders (`+orderColumnsInsert+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::numeric, $16, $17,
			$18, $19, $20, $21, $22, $23, $24)
	`, o.ID, o.CustomerID, o.PickupAddress, pLat, pLng,
		o.DeliveryAddress, dLat, dLng, o.Window.Start, o.Window.End,
		o.WeightKg, o.VolumeM3, o.TransportType, o.Zone, o.Amount.String(), o.Currency, o.Instructions,
		string(o.Status), o.DriverID.Ptr(), o.DriverAssignedAt.Ptr(), o.DeliveredBy.Ptr(), o.SourceOrderID.Ptr(), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("insert order %s: %w", o.ID, apperr.ErrConflict)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func appendActivity(ctx context.Context, q querier, e domain.ActivityLogEntry) error {
	_, err := q.Exec(ctx, `
		INSERT INTO activity_log (id, type, order_id, driver_id, actor, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, string(e.Type), e.OrderID, e.DriverID.Ptr(), e.Actor, string(e.Status), e.Message, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

// GetOrder returns an order without locking it, or nil.
func (r *DispatchRepo) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

// GetDriver returns a driver with its unavailability windows, or nil.
func (r *DispatchRepo) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %q: %w", id, err)
	}
	windows, err := loadUnavailability(ctx, r.db, []string{id})
	if err != nil {
		return nil, err
	}
	d.Unavailability = windows[id]
	return d, nil
}

// ListOrders returns matching orders ordered by creation time, then id.
func (r *DispatchRepo) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE TRUE`
	args := make([]any, 0, 3)
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		q += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.DriverID != "" {
		args = append(args, f.DriverID)
		q += fmt.Sprintf(" AND (driver_id = $%d OR delivered_by = $%d)", len(args), len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += ` ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// ListActivity returns an order's activity log in append order.
func (r *DispatchRepo) ListActivity(ctx context.Context, orderID string) ([]domain.ActivityLogEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, order_id, driver_id, actor, status, message, created_at
		FROM activity_log
		WHERE order_id = $1
		ORDER BY seq
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list activity of %q: %w", orderID, err)
	}
	defer rows.Close()

	out := make([]domain.ActivityLogEntry, 0)
	for rows.Next() {
		var (
			e           domain.ActivityLogEntry
			typ, status string
			driverID    *string
		)
		if err := rows.Scan(&e.ID, &typ, &e.OrderID, &driverID, &e.Actor, &status, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Type = domain.ActivityType(typ)
		e.Status = domain.OrderStatus(status)
		e.DriverID = domain.FromPtr(driverID)
		out = append(out, e)
	}
	return out, rows.Err()
}

// AppendActivity appends an entry outside any transaction.
func (r *DispatchRepo) AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error {
	return appendActivity(ctx, r.db, e)
}

// AppendNotification stores a notification.
func (r *DispatchRepo) AppendNotification(ctx context.Context, n domain.NotificationEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, channel, order_id, customer_id, driver_id, message, created_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, string(n.Channel), n.OrderID, n.CustomerID, n.DriverID.Ptr(), n.Message, n.CreatedAt, n.Read)
	if err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// ListNotifications returns matching notifications in append order.
func (r *DispatchRepo) ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error) {
	q := `SELECT id, channel, order_id, customer_id, driver_id, message, created_at, read FROM notifications WHERE TRUE`
	args := make([]any, 0, 4)
	if f.Channel != "" {
		args = append(args, string(f.Channel))
		q += fmt.Sprintf(" AND channel = $%d", len(args))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		q += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.DriverID != "" {
		args = append(args, f.DriverID)
		q += fmt.Sprintf(" AND driver_id = $%d", len(args))
	}
	if f.OrderID != "" {
		args = append(args, f.OrderID)
		q += fmt.Sprintf(" AND order_id = $%d", len(args))
	}
	if f.UnreadOnly {
		q += ` AND NOT read`
	}
	q += ` ORDER BY seq`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.NotificationEntry, 0)
	for rows.Next() {
		var (
			n        domain.NotificationEntry
			channel  string
			driverID *string
		)
		if err := rows.Scan(&n.ID, &channel, &n.OrderID, &n.CustomerID, &driverID, &n.Message, &n.CreatedAt, &n.Read); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Channel = domain.Channel(channel)
		n.DriverID = domain.FromPtr(driverID)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationRead flips the read flag. It reports false when the id is unknown.
func (r *DispatchRepo) MarkNotificationRead(ctx context.Context, id string) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("mark notification %q read: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// PutDriver upserts a driver and replaces its unavailability windows.
func (r *DispatchRepo) PutDriver(ctx context.Context, d domain.Driver) error {
	return r.WithTxRaw(ctx, func(tx pgx.Tx) error {
		lat, lng := latLng(d.LastLocation)
		_, err := tx.Exec(ctx, `
			INSERT INTO drivers (`+driverColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, phone = EXCLUDED.phone, zone = EXCLUDED.zone,
				vehicle = EXCLUDED.vehicle, max_weight_kg = EXCLUDED.max_weight_kg,
				max_volume_m3 = EXCLUDED.max_volume_m3, status = EXCLUDED.status,
				active = EXCLUDED.active, last_lat = EXCLUDED.last_lat, last_lng = EXCLUDED.last_lng
		`, d.ID, d.Name, d.Phone, d.Zone, d.Vehicle, d.Capacity.WeightKg, d.Capacity.VolumeM3,
			string(d.Status), d.Active, lat, lng)
		if err != nil {
			return fmt.Errorf("upsert driver %q: %w", d.ID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM driver_unavailability WHERE driver_id = $1`, d.ID); err != nil {
			return fmt.Errorf("clear unavailability of %q: %w", d.ID, err)
		}
		for _, w := range d.Unavailability {
			_, err := tx.Exec(ctx, `
				INSERT INTO driver_unavailability (driver_id, starts_at, ends_at, reason)
				VALUES ($1, $2, $3, $4)
			`, d.ID, w.Window.Start, w.Window.End, w.Reason)
			if err != nil {
				return fmt.Errorf("insert unavailability of %q: %w", d.ID, err)
			}
		}
		return nil
	})
}

// PutOrder inserts an order outside the dispatch flow.
func (r *DispatchRepo) PutOrder(ctx context.Context, o domain.Order) error {
	return insertOrder(ctx, r.db, &o)
}

// WithTxRaw runs fn in a plain pgx transaction.
func (r *DispatchRepo) WithTxRaw(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, r.db, fn)
}
