package chart

import (
	"fmt"
	"time"

	"astrochart/internal/errors"
	"astrochart/internal/models"
)

// SubjectInput is the chart request for one subject, as handed over by
// the service layer after deserialization. Date and Time are wall-clock
// strings already shifted to UTC by the caller.
type SubjectInput struct {
	Name      string   `json:"name"`
	Date      string   `json:"date"`           // YYYY-MM-DD
	Time      string   `json:"time,omitempty"` // HH:MM:SS or HH:MM
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	timeLayoutShort = "15:04"
)

// transitReference pins date-only transit charts: noon UTC at (0°,0°).
// Two transit requests for the same date are therefore identical no
// matter what extra fields the caller supplies.
var transitReference = models.GeoPosition{Latitude: 0, Longitude: 0}

// Normalize resolves mode-specific input rules into a canonical UTC
// instant and location. It is a pure function of its inputs.
//
// Natal and synastry subjects need date, time and coordinates; a
// missing time defaults to noon only when allowDefaultTime is set.
// Transit needs only a date; time and coordinates are pinned to the
// fixed transit reference and houses are never computed.
func Normalize(mode models.ChartMode, in SubjectInput, allowDefaultTime bool) (time.Time, *models.GeoPosition, error) {
	if in.Date == "" {
		return time.Time{}, nil, errors.NewIncompleteInputError(string(mode), "date")
	}

	date, err := time.ParseInLocation(dateLayout, in.Date, time.UTC)
	if err != nil {
		return time.Time{}, nil, errors.NewIncompleteInputError(string(mode), fmt.Sprintf("valid date (%v)", err))
	}

	if mode == models.ModeTransit {
		instant := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
		geo := transitReference
		return instant, &geo, nil
	}

	var missing []string

	clock := in.Time
	if clock == "" {
		if !allowDefaultTime {
			missing = append(missing, "time")
		} else {
			clock = "12:00:00"
		}
	}

	if in.Latitude == nil || in.Longitude == nil {
		missing = append(missing, "coordinates")
	}

	if len(missing) > 0 {
		return time.Time{}, nil, errors.NewIncompleteInputError(string(mode), missing...)
	}

	t, err := parseClock(clock)
	if err != nil {
		return time.Time{}, nil, errors.NewIncompleteInputError(string(mode), fmt.Sprintf("valid time (%v)", err))
	}

	instant := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	geo := &models.GeoPosition{Latitude: *in.Latitude, Longitude: *in.Longitude}

	return instant, geo, nil
}

func parseClock(clock string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, clock); err == nil {
		return t, nil
	}
	return time.Parse(timeLayoutShort, clock)
}

// DisplayName returns the subject name, defaulting like the chart
// request contract does.
func (in SubjectInput) DisplayName() string {
	if in.Name == "" {
		return "Chart"
	}
	return in.Name
}
