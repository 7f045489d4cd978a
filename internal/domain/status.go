package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned when a status string does not name a known status.
var ErrInvalidStatus = errors.New("invalid status")

// StatusKey is the caregiver's answer for one checklist item.
type StatusKey string

const (
	StatusCanDo         StatusKey = "CAN_DO"
	StatusWithHelp      StatusKey = "WITH_HELP"
	StatusCannot        StatusKey = "CANNOT"
	StatusNotTested     StatusKey = "NOT_TESTED"
	StatusNotInterested StatusKey = "NOT_INTERESTED"
)

// Statuses lists the canonical statuses in the order they are offered to the user.
var Statuses = []StatusKey{
	StatusCanDo,
	StatusWithHelp,
	StatusCannot,
	StatusNotTested,
	StatusNotInterested,
}

// legacyStatuses maps keys written by the older three-valued checklist onto
// the canonical set.
var legacyStatuses = map[string]StatusKey{
	"ZVLADA":       StatusCanDo,
	"MASTERED":     StatusCanDo,
	"DOPOMOC":      StatusWithHelp,
	"NEZVLADA":     StatusCannot,
	"NOT_MASTERED": StatusCannot,
}

// Valid reports whether s is one of the canonical statuses.
func (s StatusKey) Valid() bool {
	switch s {
	case StatusCanDo, StatusWithHelp, StatusCannot, StatusNotTested, StatusNotInterested:
		return true
	}
	return false
}

// Label returns the Czech label shown on the status chip.
func (s StatusKey) Label() string {
	switch s {
	case StatusCanDo:
		return "Zvládne"
	case StatusWithHelp:
		return "S pomocí"
	case StatusCannot:
		return "Zatím ne"
	case StatusNotTested:
		return "Nezkoušeno"
	case StatusNotInterested:
		return "Nezájem"
	default:
		return string(s)
	}
}

// Icon returns the single-glyph marker for the status.
func (s StatusKey) Icon() string {
	switch s {
	case StatusCanDo:
		return "✓"
	case StatusWithHelp:
		return "↗"
	case StatusCannot:
		return "○"
	case StatusNotTested:
		return "?"
	case StatusNotInterested:
		return "–"
	default:
		return " "
	}
}

// ParseStatus accepts a canonical key (case-insensitive, '-' or '_'), a
// legacy three-valued key, or the 1-based position in Statuses.
func ParseStatus(raw string) (StatusKey, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	if s := StatusKey(norm); s.Valid() {
		return s, nil
	}
	if s, ok := legacyStatuses[norm]; ok {
		return s, nil
	}
	if len(norm) == 1 && norm[0] >= '1' && int(norm[0]-'0') <= len(Statuses) {
		return Statuses[norm[0]-'1'], nil
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrInvalidStatus, raw, statusList())
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
