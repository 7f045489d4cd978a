package formatter

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
	"github.com/alexanderramin/firstmap/internal/testutil"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func fixture(opts ...testutil.AssessmentOption) (*domain.Assessment, *scoring.Result) {
	a := testutil.NewTestAssessment(opts...)
	return a, scoring.Compute(testutil.NewTestDataset(), a.AgeBandID, a.Statuses)
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"empty", 0, "[░░░░]   0%"},
		{"half", 0.5, "[██░░]  50%"},
		{"full", 1, "[████] 100%"},
		{"clamps high", 1.7, "[████] 100%"},
		{"clamps low", -1, "[░░░░]   0%"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripANSI(RenderProgress(tc.pct, 4)))
		})
	}
}

func TestRenderMasteryBar(t *testing.T) {
	assert.Equal(t, "██░░", stripANSI(RenderMasteryBar(0.5, 4, 2)))
	assert.Equal(t, "░░", stripANSI(RenderMasteryBar(0, 1, 0)), "width clamps to 2")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "Název"},
		[][]string{{StyleGreen.Render("a"), "x"}, {"bbb", "y"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "ID   Název", lines[0])
	assert.Equal(t, "a    x", lines[2])
	assert.Equal(t, "bbb  y", lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "krátké", Truncate("krátké", 10))
	assert.Equal(t, "dlouh…", Truncate("dlouhý text", 6))
}

func TestStatusChip(t *testing.T) {
	assert.Equal(t, "✓", stripANSI(StatusChip(domain.StatusCanDo, true)))
	assert.Equal(t, "·", stripANSI(StatusChip("", false)))
	assert.Equal(t, "·", stripANSI(StatusChip("MAYBE", true)))
	assert.Contains(t, stripANSI(StatusLegend()), "1 ✓ Zvládne")
}

func TestMasteryBadge(t *testing.T) {
	assert.Equal(t, "○ Nehodnoceno", stripANSI(MasteryBadge(scoring.SectionScore{})))
	assert.Equal(t, "● Daří se 100 %", stripANSI(MasteryBadge(scoring.SectionScore{Answered: 2, MasteredCount: 2, MasteredPct: 100})))
}

func TestFormatChecklist(t *testing.T) {
	a, res := fixture(
		testutil.WithStatus("a1", domain.StatusCanDo),
		testutil.WithStatus("b1", domain.StatusCannot),
		testutil.WithSectionNote("B", "jen venku"),
	)
	out := stripANSI(FormatChecklist(a, res))

	assert.Contains(t, out, "CHECKLIST · 3–4 ROKY")
	assert.Contains(t, out, "(2/5)")
	assert.Contains(t, out, "Alfa (A)")
	assert.Contains(t, out, "✓ a1  Alfa jedna")
	assert.Contains(t, out, "○ b1  Beta jedna")
	assert.Contains(t, out, "· a2  Alfa dva")
	assert.Contains(t, out, "✎ jen venku")
}

func TestFormatDraft(t *testing.T) {
	a, res := fixture(
		testutil.WithStatus("a1", domain.StatusCannot),
		testutil.WithStatus("b2", domain.StatusCannot),
		testutil.WithStatus("c1", domain.StatusCanDo),
	)
	a.SelectedWorkerActivities = []string{"Beta práce 1"}
	a.CustomParentActivities = []string{"Vlastní hra"}

	out := stripANSI(FormatDraft(a, res))
	assert.Contains(t, out, res.Summary)
	assert.Contains(t, out, "○ Návrh")
	assert.Contains(t, out, "✓ Gama jedna")
	assert.Contains(t, out, "→ Alfa jedna (Zatím ne)")
	assert.Contains(t, out, "→ Beta dva (Zatím ne)")
	assert.Contains(t, out, "1. Beta")
	assert.Contains(t, out, "2. Alfa")
	assert.Contains(t, out, "AKTIVITY PRO PRACOVNÍKA")
	assert.Contains(t, out, "[x] Beta práce 1")
	assert.Contains(t, out, "c1 [+] Vlastní hra")
}

func TestFormatActivities_Empty(t *testing.T) {
	a, res := fixture()
	assert.Contains(t, stripANSI(FormatActivities(a, res, domain.AudienceParent)), "Žádné návrhy.")
}

func TestFormatAssessmentList(t *testing.T) {
	assert.Contains(t, stripANSI(FormatAssessmentList(nil, "")), "firstmap setup")

	list := []domain.AssessmentSummary{
		{ID: "11111111-aaaa", ChildNickname: "Ema", AgeBandID: "3-4", Date: "2025-03-01", Answered: 4, UpdatedAt: time.Now()},
		{ID: "22222222-bbbb", AgeBandID: "5-6", Date: "2025-03-02", Confirmed: true, UpdatedAt: time.Now()},
	}
	out := stripANSI(FormatAssessmentList(list, "22222222-bbbb"))
	assert.Contains(t, out, "11111111")
	assert.Contains(t, out, "(bez přezdívky)")
	assert.Regexp(t, `▸\s+22222222`, out)
	assert.Contains(t, out, "✔ Potvrzeno")
	assert.NotContains(t, out, "aaaa")
}

func TestFormatDataset(t *testing.T) {
	ds := testutil.NewTestDataset()
	ok := stripANSI(FormatDatasetOK("embedded", ds))
	assert.Contains(t, ok, "Dataset je platný")
	assert.Contains(t, ok, "3-4")
	assert.Contains(t, ok, "5 položek")
	assert.NotContains(t, ok, "nepoužité")

	ds.Activities.Categories = append(ds.Activities.Categories, checklist.ActivityCategory{ID: "Z"})
	assert.Contains(t, stripANSI(FormatDatasetOK("embedded", ds)), "nepoužité kategorie aktivit: Z")

	verr := &checklist.ValidationError{Source: "dir", Problems: []error{errors.New("one"), errors.New("two")}}
	bad := stripANSI(FormatDatasetError(verr))
	assert.Contains(t, bad, "má 2 problém(ů)")
	assert.Contains(t, bad, "• two")

	assert.Contains(t, stripANSI(FormatDatasetError(errors.New("boom"))), "✖ boom")
}
