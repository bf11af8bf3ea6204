package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; Migrate can run on every start.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		zone          TEXT NOT NULL,
		vehicle       TEXT NOT NULL DEFAULT '',
		max_weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_volume_m3 DOUBLE PRECISION NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		last_lat      DOUBLE PRECISION,
		last_lng      DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS driver_unavailability (
		id        BIGSERIAL PRIMARY KEY,
		driver_id TEXT NOT NULL REFERENCES drivers(id) ON DELETE CASCADE,
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at   TIMESTAMPTZ NOT NULL,
		reason    TEXT NOT NULL DEFAULT '',
		CHECK (ends_at > starts_at)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                 TEXT PRIMARY KEY,
		customer_id        TEXT NOT NULL,
		pickup_address     TEXT NOT NULL,
		pickup_lat         DOUBLE PRECISION,
		pickup_lng         DOUBLE PRECISION,
		delivery_address   TEXT NOT NULL,
		delivery_lat       DOUBLE PRECISION,
		delivery_lng       DOUBLE PRECISION,
		window_start       TIMESTAMPTZ NOT NULL,
		window_end         TIMESTAMPTZ NOT NULL,
		weight_kg          DOUBLE PRECISION NOT NULL DEFAULT 0,
		volume_m3          DOUBLE PRECISION NOT NULL DEFAULT 0,
		transport_type     TEXT NOT NULL DEFAULT '',
		zone               TEXT NOT NULL,
		amount             NUMERIC(12, 2) NOT NULL DEFAULT 0,
		currency           TEXT NOT NULL DEFAULT '',
		instructions       TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL,
		driver_id          TEXT REFERENCES drivers(id),
		driver_assigned_at TIMESTAMPTZ,
		delivered_by       TEXT REFERENCES drivers(id),
		source_order_id    TEXT REFERENCES orders(id),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (window_end > window_start)
	)`,
	`ALTER TABLE orders ADD COLUMN IF NOT EXISTS delivered_by TEXT REFERENCES drivers(id)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id           TEXT PRIMARY KEY,
		order_id     TEXT NOT NULL REFERENCES orders(id),
		driver_id    TEXT NOT NULL REFERENCES drivers(id),
		window_start TIMESTAMPTZ NOT NULL,
		window_end   TIMESTAMPTZ NOT NULL,
		ended_at     TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS assignments_active_order_uidx
		ON assignments (order_id) WHERE ended_at IS NULL`,
	`DO $$ BEGIN
		ALTER TABLE assignments ADD CONSTRAINT assignments_driver_no_overlap
			EXCLUDE USING gist (driver_id WITH =, tstzrange(window_start, window_end, '[)') WITH &&)
			WHERE (ended_at IS NULL);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		seq        BIGSERIAL PRIMARY KEY,
		id         TEXT NOT NULL UNIQUE,
		type       TEXT NOT NULL,
		order_id   TEXT NOT NULL,
		driver_id  TEXT,
		actor      TEXT NOT NULL,
		status     TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS activity_log_order_idx ON activity_log (order_id, seq)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		seq         BIGSERIAL PRIMARY KEY,
		id          TEXT NOT NULL UNIQUE,
		channel     TEXT NOT NULL,
		order_id    TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		driver_id   TEXT,
		message     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		read        BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

// Migrate creates the dispatch tables when they are missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
