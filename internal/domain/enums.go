package domain

import "fmt"

// ContextID names where the encounter with the child took place.
type ContextID string

const (
	ContextNone  ContextID = ""
	ContextHome  ContextID = "doma"
	ContextOut   ContextID = "venku"
	ContextClub  ContextID = "klub"
	ContextOther ContextID = "jiné"
)

// Contexts lists the selectable encounter contexts.
var Contexts = []ContextID{ContextHome, ContextOut, ContextClub, ContextOther}

// Label returns the display label of the context.
func (c ContextID) Label() string {
	switch c {
	case ContextHome:
		return "Doma"
	case ContextOut:
		return "Venku"
	case ContextClub:
		return "Klub"
	case ContextOther:
		return "Jiné"
	default:
		return ""
	}
}

// ParseContext accepts an empty string (no context) or one of Contexts.
func ParseContext(raw string) (ContextID, error) {
	if raw == "" {
		return ContextNone, nil
	}
	for _, c := range Contexts {
		if string(c) == raw {
			return c, nil
		}
	}
	if raw == "jine" {
		return ContextOther, nil
	}
	return "", fmt.Errorf("invalid context %q (expected doma, venku, klub or jiné)", raw)
}

// Audience selects which activity list an action targets.
type Audience string

const (
	AudienceWorker Audience = "worker"
	AudienceParent Audience = "parent"
)

// ParseAudience validates an audience string.
func ParseAudience(raw string) (Audience, error) {
	switch Audience(raw) {
	case AudienceWorker, AudienceParent:
		return Audience(raw), nil
	}
	return "", fmt.Errorf("invalid audience %q (expected worker or parent)", raw)
}

// Label returns the Czech heading used for the audience's activity list.
func (a Audience) Label() string {
	if a == AudienceParent {
		return "Aktivity pro rodiče"
	}
	return "Aktivity pro pracovníka"
}
