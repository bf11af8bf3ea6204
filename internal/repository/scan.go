package repository

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"service-dispatch/internal/domain"
)

const orderColumns = `id, customer_id, pickup_address, pickup_lat, pickup_lng,
	delivery_address, delivery_lat, delivery_lng, window_start, window_end,
	weight_kg, volume_m3, transport_type, zone, amount::text, currency, instructions,
	status, driver_id, driver_assigned_at, delivered_by, source_order_id, created_at, updated_at`

const orderColumnsInsert = `id, customer_id, pickup_address, pickup_lat, pickup_lng,
	delivery_address, delivery_lat, delivery_lng, window_start, window_end,
	weight_kg, volume_m3, transport_type, zone, amount, currency, instructions,
	status, driver_id, driver_assigned_at, delivered_by, source_order_id, created_at, updated_at`

const driverColumns = `id, name, phone, zone, vehicle, max_weight_kg, max_volume_m3,
	status, active, last_lat, last_lng`

const assignmentColumns = `id, order_id, driver_id, window_start, window_end, ended_at, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                      domain.Order
		pLat, pLng, dLat, dLng *float64
		amount, status         string
		driverID, sourceID     *string
		deliveredBy            *string
		assignedAt             *time.Time
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.PickupAddress, &pLat, &pLng,
		&o.DeliveryAddress, &dLat, &dLng, &o.Window.Start, &o.Window.End,
		&o.WeightKg, &o.VolumeM3, &o.TransportType, &o.Zone, &amount, &o.Currency, &o.Instructions,
		&status, &driverID, &assignedAt, &deliveredBy, &sourceID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("order %s amount %q: %w", o.ID, amount, err)
	}
	o.Status = domain.OrderStatus(status)
	o.PickupCoords = coords(pLat, pLng)
	o.DeliveryCoords = coords(dLat, dLng)
	o.DriverID = domain.FromPtr(driverID)
	o.DriverAssignedAt = domain.FromPtr(assignedAt)
	o.DeliveredBy = domain.FromPtr(deliveredBy)
	o.SourceOrderID = domain.FromPtr(sourceID)
	return &o, nil
}

func scanDriver(row pgx.Row) (*domain.Driver, error) {
	var (
		d        domain.Driver
		status   string
		lat, lng *float64
	)
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Zone, &d.Vehicle,
		&d.Capacity.WeightKg, &d.Capacity.VolumeM3, &status, &d.Active, &lat, &lng)
	if err != nil {
		return nil, err
	}
	d.Status = domain.DriverStatus(status)
	d.LastLocation = coords(lat, lng)
	return &d, nil
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		a       domain.Assignment
		endedAt *time.Time
	)
	if err := row.Scan(&a.ID, &a.OrderID, &a.DriverID, &a.Window.Start, &a.Window.End, &endedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.EndedAt = domain.FromPtr(endedAt)
	return &a, nil
}

func coords(lat, lng *float64) domain.Optional[domain.Coordinates] {
	if lat == nil || lng == nil {
		return domain.None[domain.Coordinates]()
	}
	return domain.Some(domain.Coordinates{Lat: *lat, Lng: *lng})
}

func latLng(c domain.Optional[domain.Coordinates]) (lat, lng *float64) {
	v, ok := c.Get()
	if !ok {
		return nil, nil
	}
	return &v.Lat, &v.Lng
}
