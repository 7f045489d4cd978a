package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyActivity = errors.New("activity text is empty")
	ErrActivityIndex = errors.New("activity index out of range")
)

// Action is a single user change to an assessment.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	apply(a *Assessment) error
}

// Reduce applies action to a copy of state and returns the copy. The input
// is never modified, also when an error is returned.
func Reduce(state *Assessment, action Action) (*Assessment, error) {
	next := state.Clone()
	if err := action.apply(next); err != nil {
		return nil, fmt.Errorf("%s: %w", action.Name(), err)
	}
	return next, nil
}

// ApplySetup replaces the setup fields and re-dates the assessment.
type ApplySetup struct {
	Setup Setup
	Date  string
}

func (ApplySetup) Name() string { return "apply_setup" }
func (act ApplySetup) apply(a *Assessment) error {
	a.ChildNickname = strings.TrimSpace(act.Setup.ChildNickname)
	a.AgeBandID = act.Setup.AgeBandID
	a.Context = act.Setup.Context
	a.GeneralNote = act.Setup.GeneralNote
	if act.Date != "" {
		a.Date = act.Date
	}
	return nil
}

// SetStatus records one item's answer.
type SetStatus struct {
	ItemID string
	Status StatusKey
}

func (SetStatus) Name() string { return "set_status" }
func (act SetStatus) apply(a *Assessment) error {
	if !act.Status.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidStatus, act.Status)
	}
	a.Statuses[act.ItemID] = act.Status
	return nil
}

// ClearStatus removes one item's answer.
type ClearStatus struct {
	ItemID string
}

func (ClearStatus) Name() string { return "clear_status" }
func (act ClearStatus) apply(a *Assessment) error {
	delete(a.Statuses, act.ItemID)
	return nil
}

// SetSectionNote stores a free-text note for a section. An empty note
// removes it.
type SetSectionNote struct {
	SectionID string
	Note      string
}

func (SetSectionNote) Name() string { return "set_section_note" }
func (act SetSectionNote) apply(a *Assessment) error {
	if act.Note == "" {
		delete(a.SectionNotes, act.SectionID)
		return nil
	}
	a.SectionNotes[act.SectionID] = act.Note
	return nil
}

// ResetSection clears the answers of the given items and the section note.
type ResetSection struct {
	SectionID string
	ItemIDs   []string
}

func (ResetSection) Name() string { return "reset_section" }
func (act ResetSection) apply(a *Assessment) error {
	for _, id := range act.ItemIDs {
		delete(a.Statuses, id)
	}
	delete(a.SectionNotes, act.SectionID)
	return nil
}

// ToggleActivity adds a suggested activity to the selection, or removes it
// when already selected.
type ToggleActivity struct {
	Audience Audience
	Activity string
}

func (ToggleActivity) Name() string { return "toggle_activity" }
func (act ToggleActivity) apply(a *Assessment) error {
	list := a.selectedRef(act.Audience)
	if i := slices.Index(*list, act.Activity); i >= 0 {
		*list = slices.Delete(*list, i, i+1)
		return nil
	}
	*list = append(*list, act.Activity)
	return nil
}

// AddCustomActivity appends a user-written activity.
type AddCustomActivity struct {
	Audience Audience
	Text     string
}

func (AddCustomActivity) Name() string { return "add_custom_activity" }
func (act AddCustomActivity) apply(a *Assessment) error {
	text := strings.TrimSpace(act.Text)
	if text == "" {
		return ErrEmptyActivity
	}
	list := a.customRef(act.Audience)
	*list = append(*list, text)
	return nil
}

// RemoveCustomActivity drops a user-written activity by its zero-based index.
type RemoveCustomActivity struct {
	Audience Audience
	Index    int
}

func (RemoveCustomActivity) Name() string { return "remove_custom_activity" }
func (act RemoveCustomActivity) apply(a *Assessment) error {
	list := a.customRef(act.Audience)
	if act.Index < 0 || act.Index >= len(*list) {
		return fmt.Errorf("%w: %d (have %d)", ErrActivityIndex, act.Index, len(*list))
	}
	*list = slices.Delete(*list, act.Index, act.Index+1)
	return nil
}

// SetFinalNote stores the closing note of the plan.
type SetFinalNote struct {
	Note string
}

func (SetFinalNote) Name() string { return "set_final_note" }
func (act SetFinalNote) apply(a *Assessment) error {
	a.FinalNote = act.Note
	return nil
}

// SetGeneralNote stores the note captured during setup.
type SetGeneralNote struct {
	Note string
}

func (SetGeneralNote) Name() string { return "set_general_note" }
func (act SetGeneralNote) apply(a *Assessment) error {
	a.GeneralNote = act.Note
	return nil
}

// SetConfirmed confirms the plan or reopens it for editing.
type SetConfirmed struct {
	Value bool
}

func (SetConfirmed) Name() string { return "set_confirmed" }
func (act SetConfirmed) apply(a *Assessment) error {
	a.Confirmed = act.Value
	return nil
}

func (a *Assessment) selectedRef(aud Audience) *[]string {
	if aud == AudienceParent {
		return &a.SelectedParentActivities
	}
	return &a.SelectedWorkerActivities
}

func (a *Assessment) customRef(aud Audience) *[]string {
	if aud == AudienceParent {
		return &a.CustomParentActivities
	}
	return &a.CustomWorkerActivities
}
