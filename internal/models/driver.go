package models

import (
	"database/sql"
	"time"
)

// Canonical driver statuses written by the reconciliation cycle.
const (
	DriverStatusOffline    = "offline"
	DriverStatusActive     = "active"
	DriverStatusWithClient = "with_client"
)

// Driver is a fleet driver. First/second name form the cross-platform
// identity key; there is no shared surrogate id between platforms.
type Driver struct {
	ID         int64        `db:"id" json:"id"`
	FirstName  string       `db:"first_name" json:"first_name"`
	SecondName string       `db:"second_name" json:"second_name"`
	Status     string       `db:"status" json:"status"`
	DeletedAt  sql.NullTime `db:"deleted_at" json:"-"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// DriverStatusRecord is the latest status reported for a driver by the
// fleet-management subsystem, used as the reconciliation fallback when no
// live platform signal exists.
type DriverStatusRecord struct {
	ID         int64     `db:"id" json:"id"`
	DriverID   int64     `db:"driver_id" json:"driver_id"`
	Status     string    `db:"status" json:"status"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// JobApplication is a driver candidate submitted to a platform on demand.
type JobApplication struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	SecondName  string    `db:"second_name" json:"second_name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
