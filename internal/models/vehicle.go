package models

import "time"

// Vehicle is a fleet vehicle carrying a GPS tracker. GPSIMEI is the unique
// device identifier used to resolve incoming telemetry.
type Vehicle struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	LicencePlate string    `db:"licence_plate" json:"licence_plate"`
	GPSIMEI      string    `db:"gps_imei" json:"gps_imei"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
