package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// Assessment options
type AssessmentOption func(*domain.Assessment)

func WithBand(band string) AssessmentOption {
	return func(a *domain.Assessment) {
		a.AgeBandID = band
	}
}

func WithNickname(name string) AssessmentOption {
	return func(a *domain.Assessment) {
		a.ChildNickname = name
	}
}

func WithContext(c domain.ContextID) AssessmentOption {
	return func(a *domain.Assessment) {
		a.Context = c
	}
}

func WithStatus(itemID string, s domain.StatusKey) AssessmentOption {
	return func(a *domain.Assessment) {
		a.Statuses[itemID] = s
	}
}

func WithSectionNote(sectionID, note string) AssessmentOption {
	return func(a *domain.Assessment) {
		a.SectionNotes[sectionID] = note
	}
}

func WithConfirmed() AssessmentOption {
	return func(a *domain.Assessment) {
		a.Confirmed = true
	}
}

// NewTestAssessment returns an assessment for band 3-4 with a fresh ID.
func NewTestAssessment(opts ...AssessmentOption) *domain.Assessment {
	now := time.Now().UTC().Truncate(time.Second)
	a := domain.NewAssessment(uuid.New().String(), now)
	a.AgeBandID = "3-4"
	a.ChildNickname = "Test"
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func age(f float64) *float64 { return &f }

// NewTestDataset returns a small valid dataset with one band "3-4" and
// sections A (weight 1), B (weight 2) and C (weight 1, no activities
// besides its category placeholder).
func NewTestDataset() *checklist.Dataset {
	return &checklist.Dataset{
		Checklist: checklist.Checklist{
			Version: "test",
			AgeBands: map[string][]checklist.Section{
				"3-4": {
					{ID: "A", Title: "Alfa", CategoryWeight: 1, Items: []checklist.Item{
						{ID: "a1", Text: "Alfa jedna", ExpectedAge: age(3)},
						{ID: "a2", Text: "Alfa dva", ExpectedAge: age(5)},
					}},
					{ID: "B", Title: "Beta", CategoryWeight: 2, Items: []checklist.Item{
						{ID: "b1", Text: "Beta jedna"},
						{ID: "b2", Text: "Beta dva", ExpectedAge: age(3.5)},
					}},
					{ID: "C", Title: "Gama", CategoryWeight: 1, Items: []checklist.Item{
						{ID: "c1", Text: "Gama jedna"},
					}},
				},
			},
		},
		Activities: checklist.Activities{
			Version: "test",
			Categories: []checklist.ActivityCategory{
				{ID: "A", Worker: []string{"Alfa práce 1", "Alfa práce 2", "Alfa práce 3"}, Parent: []string{"Alfa doma 1", "Alfa doma 2"}},
				{ID: "B", Worker: []string{"Beta práce 1"}, Parent: []string{"Beta doma 1", "Beta doma 2", "Beta doma 3"}},
				{ID: "C"},
			},
		},
	}
}

// LoadEmbedded loads the built-in dataset or fails the test.
func LoadEmbedded(t *testing.T) *checklist.Dataset {
	t.Helper()
	ds, err := checklist.LoadEmbedded()
	if err != nil {
		t.Fatalf("loading embedded dataset: %v", err)
	}
	return ds
}
