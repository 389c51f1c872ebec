package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "northpole/pkg/domain-errors"
)

func TestParseBehavior(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Behavior
		wantErr bool
	}{
		{name: "upper nice", in: "NICE", want: BehaviorNice},
		{name: "lower nice", in: "nice", want: BehaviorNice},
		{name: "mixed naughty", in: "NaUgHtY", want: BehaviorNaughty},
		{name: "padded", in: "  nice ", want: BehaviorNice},
		{name: "unknown", in: "neutral", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBehavior(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBehaviorColumn(t *testing.T) {
	assert.Equal(t, "nice", BehaviorNice.Column())
	assert.Equal(t, "naughty", BehaviorNaughty.Column())
}

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{name: "london", lat: 51.507351, lon: -0.127758},
		{name: "north pole", lat: 90, lon: 0},
		{name: "boundary west", lat: 0, lon: -180},
		{name: "boundary east", lat: 0, lon: 180},
		{name: "latitude too high", lat: 90.0001, lon: 0, wantErr: true},
		{name: "latitude too low", lat: -90.0001, lon: 0, wantErr: true},
		{name: "longitude too high", lat: 0, lon: 180.5, wantErr: true},
		{name: "longitude too low", lat: 0, lon: -181, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := NewLocation(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, loc.Latitude)
			assert.Equal(t, tt.lon, loc.Longitude)
		})
	}
}

func TestLocalDateTimeLayoutDropsTrailingZeros(t *testing.T) {
	ts := time.Date(2025, 9, 23, 16, 4, 51, 686506301, time.Local)
	assert.Equal(t, "2025-09-23T16:04:51.686506301", ts.Format(LocalDateTimeLayout))

	whole := time.Date(2025, 9, 23, 16, 4, 51, 0, time.Local)
	assert.Equal(t, "2025-09-23T16:04:51", whole.Format(LocalDateTimeLayout))
}
