package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DecodeError reports a malformed field in a raw tracker record. Messages
// failing with it are presumed permanently malformed and must be dropped,
// not retried.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("telemetry: decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fix is a decoded GPS record, not yet bound to a vehicle.
type Fix struct {
	FixedAt time.Time
	Lat     float64
	LatZone string
	Lon     float64
	LonZone string
	Speed   float64
	Course  float64
	Height  float64
}

// Wire format of one tracker record: ASCII, semicolon-delimited.
//
//	[0]=DDMMYY [1]=HHMMSS [2]=lat [3]=lat hemisphere [4]=lon
//	[5]=lon hemisphere [6]=speed [7]=course [8]=altitude ...
//
// Coordinates are fixed-point: after stripping any decimal point the last
// six digits are the sub-degree fraction.
const (
	minFields       = 9
	timestampLayout = "020106150405"
	fractionDigits  = 6
)

// Decode parses one raw record. The timestamp is device-local and tagged
// with loc, the deployment time zone.
func Decode(data string, loc *time.Location) (Fix, error) {
	fields := strings.Split(data, ";")
	if len(fields) < minFields {
		return Fix{}, &DecodeError{Field: "record", Err: fmt.Errorf("expected at least %d fields, got %d", minFields, len(fields))}
	}

	fixedAt, err := time.ParseInLocation(timestampLayout, fields[0]+fields[1], loc)
	if err != nil {
		return Fix{}, &DecodeError{Field: "timestamp", Err: err}
	}

	lat, err := decodeCoordinate(fields[2])
	if err != nil {
		return Fix{}, &DecodeError{Field: "lat", Err: err}
	}
	lon, err := decodeCoordinate(fields[4])
	if err != nil {
		return Fix{}, &DecodeError{Field: "lon", Err: err}
	}

	speed, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return Fix{}, &DecodeError{Field: "speed", Err: err}
	}
	course, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return Fix{}, &DecodeError{Field: "course", Err: err}
	}
	height, err := strconv.ParseFloat(fields[8], 64)
	if err != nil {
		return Fix{}, &DecodeError{Field: "height", Err: err}
	}

	return Fix{
		FixedAt: fixedAt,
		Lat:     lat,
		LatZone: fields[3],
		Lon:     lon,
		LonZone: fields[5],
		Speed:   speed,
		Course:  course,
		Height:  height,
	}, nil
}

// decodeCoordinate strips the decimal point from the field and reinserts it
// six digits from the end.
func decodeCoordinate(field string) (float64, error) {
	digits := strings.ReplaceAll(field, ".", "")
	if digits == "" {
		return 0, errors.New("empty coordinate")
	}
	return strconv.ParseFloat(insertDecimal(digits), 64)
}

func insertDecimal(digits string) string {
	if len(digits) <= fractionDigits {
		return "." + digits
	}
	split := len(digits) - fractionDigits
	return digits[:split] + "." + digits[split:]
}
