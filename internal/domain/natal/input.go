package natal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone applies when a birth input leaves the timezone empty.
const DefaultTimezone = "IST"

const maxOffsetHours = 14

var namedOffsets = map[string]float64{
	"IST":  5.5,
	"UTC":  0,
	"GMT":  0,
	"EST":  -5,
	"CST":  -6,
	"PST":  -8,
	"CET":  1,
	"JST":  9,
	"AEST": 10,
}

var timeLayouts = []string{"15:04:05", "15:04"}

// Validate checks the birth input without resolving it.
func (in BirthInput) Validate() error {
	_, err := in.UTC()
	return err
}

// UTC resolves the local birth date and time into a UTC instant.
func (in BirthInput) UTC() (time.Time, error) {
	if math.IsNaN(in.Latitude) || in.Latitude < -90 || in.Latitude > 90 {
		return time.Time{}, fmt.Errorf("latitude %v out of range [-90, 90]", in.Latitude)
	}
	if math.IsNaN(in.Longitude) || in.Longitude < -180 || in.Longitude > 180 {
		return time.Time{}, fmt.Errorf("longitude %v out of range [-180, 180]", in.Longitude)
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: expected YYYY-MM-DD", in.Date)
	}
	clock, err := parseClock(in.Time)
	if err != nil {
		return time.Time{}, err
	}
	name, offset, err := ParseTimezone(in.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	zone := time.FixedZone(name, int(math.Round(offset*3600)))
	local := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, zone)
	return local.UTC(), nil
}

func parseClock(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time %q: expected HH:MM or HH:MM:SS", value)
}

// ParseTimezone resolves a zone name or numeric offset into a display name and
// an offset in hours. Accepted forms: a named zone (IST, UTC, EST, ...), a
// decimal offset (+5.5, -4), a clock offset (+05:30, -0400), optionally
// prefixed with UTC or GMT.
func ParseTimezone(value string) (string, float64, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		value = DefaultTimezone
	}
	if offset, ok := namedOffsets[value]; ok {
		return value, offset, nil
	}
	raw := value
	for _, prefix := range []string{"UTC", "GMT"} {
		raw = strings.TrimPrefix(raw, prefix)
	}
	offset, err := parseOffset(raw)
	if err != nil {
		return "", 0, fmt.Errorf("timezone %q: %w", value, err)
	}
	if math.Abs(offset) > maxOffsetHours {
		return "", 0, fmt.Errorf("timezone %q: offset beyond ±%d hours", value, maxOffsetHours)
	}
	return value, offset, nil
}

func parseOffset(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("unknown zone")
	}
	sign := 1.0
	switch raw[0] {
	case '+':
		raw = raw[1:]
	case '-':
		sign = -1
		raw = raw[1:]
	}
	// Only a single leading sign is allowed.
	if raw == "" || strings.ContainsAny(raw, "+-") {
		return 0, fmt.Errorf("unknown zone")
	}
	if hh, mm, ok := strings.Cut(raw, ":"); ok {
		return clockOffset(sign, hh, mm)
	}
	if len(raw) == 4 && !strings.Contains(raw, ".") {
		return clockOffset(sign, raw[:2], raw[2:])
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("unknown zone")
	}
	return sign * hours, nil
}

func clockOffset(sign float64, hh, mm string) (float64, error) {
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hours %q", hh)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("invalid minutes %q", mm)
	}
	return sign * (float64(hours) + float64(minutes)/60), nil
}
