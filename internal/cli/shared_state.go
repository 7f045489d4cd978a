package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Assessment and Result are replaced together whenever an
	// assessmentMsg arrives; views only read them.
	Assessment *domain.Assessment
	Result     *scoring.Result

	// Terminal dimensions
	Width  int
	Height int
}

// assessmentMsg carries the saved assessment and its recomputed result
// after a load or a dispatched change.
type assessmentMsg struct {
	assessment *domain.Assessment
	result     *scoring.Result
	flash      string
	err        error
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator), the flash line
// and status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// viewHeight is ContentHeight, or 0 before the first WindowSizeMsg.
func (s *SharedState) viewHeight() int {
	if s.Height == 0 {
		return 0
	}
	return s.ContentHeight()
}

func (s *SharedState) apply(msg assessmentMsg) {
	if msg.err != nil {
		return
	}
	s.Assessment = msg.assessment
	s.Result = msg.result
}

// load reads the current assessment.
func (s *SharedState) load() tea.Cmd {
	app := s.App
	return func() tea.Msg {
		ctx := context.Background()
		a, err := app.Assessments.Current(ctx)
		if err != nil {
			return assessmentMsg{err: err}
		}
		return assessmentMsg{assessment: a, result: app.Results.Compute(ctx, a)}
	}
}

// dispatch saves one action and reports the new state with flashText.
func (s *SharedState) dispatch(action domain.Action, flashText string) tea.Cmd {
	app := s.App
	return func() tea.Msg {
		ctx := context.Background()
		a, err := app.Assessments.Dispatch(ctx, action)
		if err != nil {
			return assessmentMsg{err: err}
		}
		return assessmentMsg{assessment: a, result: app.Results.Compute(ctx, a), flash: flashText}
	}
}

func (s *SharedState) resetSection(sectionID, flashText string) tea.Cmd {
	app := s.App
	return func() tea.Msg {
		ctx := context.Background()
		a, err := app.Assessments.ResetSection(ctx, sectionID)
		if err != nil {
			return assessmentMsg{err: err}
		}
		return assessmentMsg{assessment: a, result: app.Results.Compute(ctx, a), flash: flashText}
	}
}
