package scoring

// Mastery is the coloring band of a section's mastered percentage.
type Mastery string

const (
	MasteryStrong       Mastery = "strong"
	MasteryDeveloping   Mastery = "developing"
	MasteryNeedsSupport Mastery = "needs_support"
	MasteryUnscored     Mastery = "unscored"
)

// MasteryFor classifies a section. Sections with no answers are unscored
// rather than 0 %.
func MasteryFor(answered int, masteredPct float64) Mastery {
	switch {
	case answered == 0:
		return MasteryUnscored
	case masteredPct >= 80:
		return MasteryStrong
	case masteredPct >= 40:
		return MasteryDeveloping
	default:
		return MasteryNeedsSupport
	}
}

// Label returns the Czech caption of the band.
func (m Mastery) Label() string {
	switch m {
	case MasteryStrong:
		return "Daří se"
	case MasteryDeveloping:
		return "Rozvíjí se"
	case MasteryNeedsSupport:
		return "Potřebuje podporu"
	default:
		return "Nehodnoceno"
	}
}
