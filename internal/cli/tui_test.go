package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/domain"
)

func TestTUI_ChecklistLoadsOnStartup(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewChecklist, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
	require.NotNil(t, d.State().Assessment)

	view := stripANSI(d.View())
	assert.Contains(t, view, "Checklist")
	assert.Contains(t, view, "Ema")
	assert.Contains(t, view, "Alfa jedna")
	assert.NotContains(t, view, "Načítám")
}

func TestTUI_StatusKeysRecordAndAdvance(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('1')
	d.PressKey('3')

	a := current(t, app)
	assert.Equal(t, domain.StatusCanDo, a.Statuses["a1"])
	assert.Equal(t, domain.StatusCannot, a.Statuses["a2"])
	assert.Equal(t, 2, d.State().Result.TotalAnswered)
}

func TestTUI_BackspaceClearsStatus(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('2')
	d.PressUp()
	d.PressBackspace()

	assert.NotContains(t, current(t, app).Statuses, "a1")
}

func TestTUI_NavigateDown(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressDown()
	d.PressDown()
	d.PressKey('3')

	a := current(t, app)
	assert.Equal(t, domain.StatusCannot, a.Statuses["b1"])
	assert.Len(t, a.Statuses, 1)
}

func TestTUI_DraftToggleAndConfirm(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('3')
	d.PressKey('d')
	require.Equal(t, ViewDraft, d.ActiveViewID())
	assert.Contains(t, stripANSI(d.View()), "Alfa práce 1")

	d.PressKey(' ')
	assert.True(t, current(t, app).IsSelected(domain.AudienceWorker, "Alfa práce 1"))

	d.PressKey('c')
	assert.True(t, current(t, app).Confirmed)
	assert.Equal(t, "Plán potvrzen", d.Flash())

	d.PressKey('c')
	assert.False(t, current(t, app).Confirmed)

	d.PressEsc()
	assert.Equal(t, ViewChecklist, d.ActiveViewID())
}

func TestTUI_DraftSelectsParentActivity(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('3')
	d.PressKey('d')
	// Two worker rows precede the parent rows.
	d.PressDown()
	d.PressDown()
	d.PressKey(' ')

	assert.True(t, current(t, app).IsSelected(domain.AudienceParent, "Alfa doma 1"))
}

func TestTUI_ResetFormCancel(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('3')
	d.PressUp()
	d.PressKey('R')
	require.Equal(t, ViewForm, d.ActiveViewID())

	// q goes to the form, not the app.
	d.PressKey('q')
	assert.False(t, d.IsQuitting())

	d.PressEsc()
	assert.Equal(t, ViewChecklist, d.ActiveViewID())
	assert.Equal(t, "Zrušeno.", d.Flash())
	assert.Equal(t, domain.StatusCannot, current(t, app).Statuses["a1"])
}

func TestTUI_NoteFormOpens(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('n')
	require.Equal(t, ViewForm, d.ActiveViewID())
	assert.Contains(t, stripANSI(d.View()), "Poznámka")

	d.PressEsc()
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_QuitWithQ(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_WindowResizePropagation(t *testing.T) {
	app := testApp(t)
	seedAssessment(t, app)
	d := NewTestDriver(t, app)

	d.PressKey('d')
	d.Send(tea.WindowSizeMsg{Width: 60, Height: 12})

	assert.Equal(t, 60, d.State().Width)
	assert.Equal(t, 7, d.State().ContentHeight())
	assert.NotEmpty(t, d.View())
}

func TestTUI_LoadErrorShown(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app)

	assert.Nil(t, d.State().Assessment)
	assert.Contains(t, stripANSI(d.View()), "✖")
}

func TestWindowLines(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	assert.Equal(t, lines, windowLines(lines, 0, 0))
	assert.Equal(t, lines[:4], windowLines(lines, 0, 4))

	got := windowLines(lines, 9, 4)
	assert.Len(t, got, 4)
	assert.Contains(t, got, "9")
}
