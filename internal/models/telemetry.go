package models

import "time"

// RawTelemetry is an opaque device payload as received from a tracker.
// Immutable once stored; decoding never mutates it.
type RawTelemetry struct {
	ID         int64     `db:"id" json:"id"`
	IMEI       string    `db:"imei" json:"imei"`
	Data       string    `db:"data" json:"data"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
}

// VehicleFix is one decoded GPS record. Created once per successful decode,
// never mutated, append-only.
type VehicleFix struct {
	ID        int64     `db:"id" json:"id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	RawID     int64     `db:"raw_id" json:"raw_id"`
	FixedAt   time.Time `db:"fixed_at" json:"fixed_at"`
	Lat       float64   `db:"lat" json:"lat"`
	LatZone   string    `db:"lat_zone" json:"lat_zone"`
	Lon       float64   `db:"lon" json:"lon"`
	LonZone   string    `db:"lon_zone" json:"lon_zone"`
	Speed     float64   `db:"speed" json:"speed"`
	Course    float64   `db:"course" json:"course"`
	Height    float64   `db:"height" json:"height"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
