package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidRecord(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Kiev")
	require.NoError(t, err)

	fix, err := Decode("100423;154510;50.277500;N;30.313400;E;42.5;180.0;135.2", loc)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Date(2023, time.April, 10, 15, 45, 10, 0, loc), fix.FixedAt, 0)
	assert.Equal(t, loc, fix.FixedAt.Location())
	assert.InDelta(t, 50.2775, fix.Lat, 1e-9)
	assert.InDelta(t, 30.3134, fix.Lon, 1e-9)
	assert.Equal(t, "N", fix.LatZone)
	assert.Equal(t, "E", fix.LonZone)
	assert.InDelta(t, 42.5, fix.Speed, 1e-9)
	assert.InDelta(t, 180.0, fix.Course, 1e-9)
	assert.InDelta(t, 135.2, fix.Height, 1e-9)
}

func TestDecodeIgnoresTrailingFields(t *testing.T) {
	fix, err := Decode("010124;000000;50.277500;N;30.313400;E;0;0;0;extra;fields", time.UTC)
	require.NoError(t, err)
	assert.InDelta(t, 50.2775, fix.Lat, 1e-9)
}

func TestInsertDecimal(t *testing.T) {
	cases := []struct {
		digits string
		want   string
	}{
		{"50277500", "50.277500"},
		{"30313400", "30.313400"},
		{"502345", ".502345"},
		{"1234", ".1234"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, insertDecimal(tc.digits), "digits %q", tc.digits)
	}
}

func TestDecodeCoordinateReconstruction(t *testing.T) {
	// The decimal point sits six digits from the end regardless of where the
	// device put it.
	lat, err := decodeCoordinate("5027.7500")
	require.NoError(t, err)
	assert.InDelta(t, 50.2775, lat, 1e-9)
}

func TestDecodeMalformedTimestamp(t *testing.T) {
	_, err := Decode("99x423;154510;50.277500;N;30.313400;E;0;0;0", time.UTC)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "timestamp", decodeErr.Field)
}

func TestDecodeNonNumericSpeed(t *testing.T) {
	_, err := Decode("100423;154510;50.277500;N;30.313400;E;fast;180.0;135.2", time.UTC)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "speed", decodeErr.Field)
}

func TestDecodeNonNumericCoordinate(t *testing.T) {
	_, err := Decode("100423;154510;not-a-lat;N;30.313400;E;0;0;0", time.UTC)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "lat", decodeErr.Field)
}

func TestDecodeTooFewFields(t *testing.T) {
	_, err := Decode("100423;154510;50.277500", time.UTC)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "record", decodeErr.Field)
}
