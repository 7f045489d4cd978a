package scoring

import (
	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// SectionScore aggregates the answers of one section.
type SectionScore struct {
	Section       checklist.Section
	Answered      int
	Total         int
	MasteredCount int
	MasteredPct   float64
	Score         float64
}

// Mastery returns the section's coloring band.
func (s SectionScore) Mastery() Mastery {
	return MasteryFor(s.Answered, s.MasteredPct)
}

// Strength is an item the child manages.
type Strength struct {
	ItemID       string
	Text         string
	SectionID    string
	SectionTitle string
	// Bonus marks mastery ahead of the item's expected age.
	Bonus bool
}

// Reserve is an item the child does not manage yet at an age where it is
// expected.
type Reserve struct {
	ItemID       string
	Text         string
	SectionID    string
	SectionTitle string
	Status       domain.StatusKey
}

// Priority is a section recommended as a focus area.
type Priority struct {
	Section          checklist.Section
	Score            float64
	WorkerActivities []string
	ParentActivities []string
}

// Result is the engine's output. It is a fresh value on every call and is
// never modified afterwards.
type Result struct {
	BandID           string
	ChildAge         float64
	SectionScores    []SectionScore
	Strengths        []Strength
	Reserves         []Reserve
	PrioritySections []Priority
	Summary          string
	TotalAnswered    int
	TotalItems       int
}

// HasPriorities reports whether any section needs attention.
func (r *Result) HasPriorities() bool {
	return len(r.PrioritySections) > 0
}

// SuggestedWorkerActivities returns the priorities' worker activities in
// ranked order without duplicates.
func (r *Result) SuggestedWorkerActivities() []string {
	return r.suggested(func(p Priority) []string { return p.WorkerActivities })
}

// SuggestedParentActivities returns the priorities' parent activities in
// ranked order without duplicates.
func (r *Result) SuggestedParentActivities() []string {
	return r.suggested(func(p Priority) []string { return p.ParentActivities })
}

// Suggested dispatches on audience.
func (r *Result) Suggested(aud domain.Audience) []string {
	if aud == domain.AudienceParent {
		return r.SuggestedParentActivities()
	}
	return r.SuggestedWorkerActivities()
}

func (r *Result) suggested(pick func(Priority) []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range r.PrioritySections {
		for _, a := range pick(p) {
			if seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// ProgressPct is the share of answered items, 0 when the band has none.
func (r *Result) ProgressPct() float64 {
	if r.TotalItems == 0 {
		return 0
	}
	return float64(r.TotalAnswered) / float64(r.TotalItems) * 100
}
