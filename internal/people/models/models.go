package models

import (
	"fmt"
	"strings"
	"time"

	dErrors "northpole/pkg/domain-errors"
)

// LocalDateTimeLayout is the zone-less local date-time form used for
// registration timestamps and proof-of-work block headers. Trailing zeros in
// the fractional seconds are dropped, matching the wire format of the API.
const LocalDateTimeLayout = "2006-01-02T15:04:05.999999999"

// DateLayout is the ISO-8601 calendar date form used for dates of birth.
const DateLayout = "2006-01-02"

// Behavior classifies a person for gift eligibility purposes.
type Behavior string

const (
	BehaviorNice    Behavior = "NICE"
	BehaviorNaughty Behavior = "NAUGHTY"
)

// ParseBehavior parses a behavior value case-insensitively.
func ParseBehavior(s string) (Behavior, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(BehaviorNice):
		return BehaviorNice, nil
	case string(BehaviorNaughty):
		return BehaviorNaughty, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("behavior must be NICE or NAUGHTY, got %q", s))
	}
}

// Column returns the lowercase form stored in the database.
func (b Behavior) Column() string {
	return strings.ToLower(string(b))
}

// Location is a validated geographic point in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// NewLocation validates coordinate ranges at construction.
func NewLocation(latitude, longitude float64) (Location, error) {
	if latitude < -90 || latitude > 90 {
		return Location{}, dErrors.New(dErrors.CodeInvalidInput,
			"latitude must be between -90 and 90 degrees")
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, dErrors.New(dErrors.CodeInvalidInput,
			"longitude must be between -180 and 180 degrees")
	}
	return Location{Latitude: latitude, Longitude: longitude}, nil
}

// Person is a beneficiary who may register wishes and receive fulfillment.
// ID and TimeOfRegistration are assigned by the store at first insert and are
// immutable afterwards. Version is the optimistic lock token; it increases by
// one per successful update.
type Person struct {
	ID                 int
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	TimeOfRegistration time.Time
	AddressLocation    *Location
	Behavior           Behavior
	Version            int
}
