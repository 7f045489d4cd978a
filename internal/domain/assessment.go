package domain

import (
	"slices"
	"time"
)

// DateLayout is the layout of Assessment.Date.
const DateLayout = "2006-01-02"

// AnswerMap maps checklist item IDs to the caregiver's answer. Clearing an
// answer deletes the key; an entry never holds an empty status.
type AnswerMap map[string]StatusKey

// Clone returns an independent copy of the map.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Setup holds the fields collected before mapping starts.
type Setup struct {
	ChildNickname string
	AgeBandID     string
	Context       ContextID
	GeneralNote   string
}

// Assessment is the caller-held state of one screening. It is only changed
// through Reduce, which returns a new value.
type Assessment struct {
	ID            string
	ChildNickname string
	AgeBandID     string
	Context       ContextID
	GeneralNote   string
	Date          string

	Statuses     AnswerMap
	SectionNotes map[string]string

	SelectedWorkerActivities []string
	SelectedParentActivities []string
	CustomWorkerActivities   []string
	CustomParentActivities   []string

	FinalNote string
	Confirmed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAssessment returns an empty assessment dated now.
func NewAssessment(id string, now time.Time) *Assessment {
	return &Assessment{
		ID:           id,
		Date:         now.Format(DateLayout),
		Statuses:     AnswerMap{},
		SectionNotes: map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone returns a deep copy so that reducers never share maps or slices with
// their input.
func (a *Assessment) Clone() *Assessment {
	out := *a
	out.Statuses = a.Statuses.Clone()
	out.SectionNotes = make(map[string]string, len(a.SectionNotes))
	for k, v := range a.SectionNotes {
		out.SectionNotes[k] = v
	}
	out.SelectedWorkerActivities = slices.Clone(a.SelectedWorkerActivities)
	out.SelectedParentActivities = slices.Clone(a.SelectedParentActivities)
	out.CustomWorkerActivities = slices.Clone(a.CustomWorkerActivities)
	out.CustomParentActivities = slices.Clone(a.CustomParentActivities)
	return &out
}

// HasSetup reports whether an age band was chosen. Without it there is no
// checklist to map.
func (a *Assessment) HasSetup() bool {
	return a.AgeBandID != ""
}

// Selected returns the selected activities for an audience.
func (a *Assessment) Selected(aud Audience) []string {
	if aud == AudienceParent {
		return a.SelectedParentActivities
	}
	return a.SelectedWorkerActivities
}

// Custom returns the user-written activities for an audience.
func (a *Assessment) Custom(aud Audience) []string {
	if aud == AudienceParent {
		return a.CustomParentActivities
	}
	return a.CustomWorkerActivities
}

// IsSelected reports whether activity is in the audience's selection.
func (a *Assessment) IsSelected(aud Audience, activity string) bool {
	return slices.Contains(a.Selected(aud), activity)
}

// DisplayName returns the nickname or a neutral placeholder.
func (a *Assessment) DisplayName() string {
	if a.ChildNickname != "" {
		return a.ChildNickname
	}
	return "(bez přezdívky)"
}

// ShortID returns the first 8 characters of the ID for display.
func (a *Assessment) ShortID() string {
	if len(a.ID) >= 8 {
		return a.ID[:8]
	}
	return a.ID
}

// AssessmentSummary is the list view of a stored assessment.
type AssessmentSummary struct {
	ID            string
	ChildNickname string
	AgeBandID     string
	Date          string
	Confirmed     bool
	Answered      int
	UpdatedAt     time.Time
}

// ReportExport records a report written to disk.
type ReportExport struct {
	ID           string
	AssessmentID string
	Path         string
	Confirmed    bool
	CreatedAt    time.Time
}
