package checklist

import (
	"fmt"
	"strconv"
	"strings"
)

// Band is a parsed age band key such as "3-4".
type Band struct {
	ID  string
	Min int
	Max int
}

// ParseBand parses a "<min>-<max>" band key.
func ParseBand(id string) (Band, error) {
	lo, hi, ok := strings.Cut(id, "-")
	if !ok {
		return Band{}, fmt.Errorf("invalid age band %q (expected min-max)", id)
	}
	minAge, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Band{}, fmt.Errorf("invalid age band %q: %w", id, err)
	}
	maxAge, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Band{}, fmt.Errorf("invalid age band %q: %w", id, err)
	}
	if minAge < 0 || maxAge < minAge {
		return Band{}, fmt.Errorf("invalid age band %q: min must be between 0 and max", id)
	}
	return Band{ID: id, Min: minAge, Max: maxAge}, nil
}

// ChildAge is the representative age of the band: its midpoint.
func (b Band) ChildAge() float64 {
	return float64(b.Min+b.Max) / 2
}

// Label renders the band for people, with Czech plural agreement on the
// upper bound.
func (b Band) Label() string {
	unit := "let"
	if b.Max >= 2 && b.Max <= 4 {
		unit = "roky"
	} else if b.Max == 1 {
		unit = "rok"
	}
	return fmt.Sprintf("%d–%d %s", b.Min, b.Max, unit)
}

// BandLabel labels a band key, falling back to the key itself.
func BandLabel(id string) string {
	b, err := ParseBand(id)
	if err != nil {
		return id
	}
	return b.Label()
}

// ChildAge returns the representative age for a band key. ok is false when
// the key does not parse.
func ChildAge(id string) (age float64, ok bool) {
	b, err := ParseBand(id)
	if err != nil {
		return 0, false
	}
	return b.ChildAge(), true
}
