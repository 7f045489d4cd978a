package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

// FormatChecklist renders every section of the assessment's band with
// per-item status chips, section mastery and notes.
func FormatChecklist(a *domain.Assessment, res *scoring.Result) string {
	var b strings.Builder

	b.WriteString(Header("Checklist · " + checklist.BandLabel(a.AgeBandID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		Dim("Vyplněno"),
		RenderProgress(res.ProgressPct()/100, 20),
		Dim(fmt.Sprintf("(%d/%d)", res.TotalAnswered, res.TotalItems)),
	))
	b.WriteString(StatusLegend() + "\n")

	for _, ss := range res.SectionScores {
		b.WriteString("\n")
		b.WriteString(FormatSectionHeading(ss))
		b.WriteString("\n")
		for _, item := range ss.Section.Items {
			status, ok := a.Statuses[item.ID]
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", StatusChip(status, ok), Dim(item.ID), item.Text))
		}
		if note := a.SectionNotes[ss.Section.ID]; note != "" {
			b.WriteString("  " + StyleBlue.Render("✎ "+note) + "\n")
		}
	}
	return b.String()
}

// FormatSectionHeading renders "Title (id)  bar  badge  n/m".
func FormatSectionHeading(ss scoring.SectionScore) string {
	return fmt.Sprintf("%s %s  %s  %s  %s",
		Bold(ss.Section.Title),
		Dim("("+ss.Section.ID+")"),
		RenderMasteryBar(ss.MasteredPct/100, 10, ss.Answered),
		MasteryBadge(ss),
		Dim(fmt.Sprintf("%d/%d", ss.Answered, ss.Total)),
	)
}

// FormatItemUpdate confirms a single answer change.
func FormatItemUpdate(item checklist.Item, status domain.StatusKey, ok bool) string {
	if !ok {
		return fmt.Sprintf("%s %s  %s\n", StatusChip("", false), Dim(item.ID), item.Text+Dim(" (vymazáno)"))
	}
	return fmt.Sprintf("%s %s  %s  %s\n", StatusChip(status, true), Dim(item.ID), item.Text, StatusColor(status).Render(status.Label()))
}

// FormatSetup summarizes the assessment header fields.
func FormatSetup(a *domain.Assessment) string {
	rows := [][]string{
		{"ID", TruncID(a.ID)},
		{"Přezdívka", a.DisplayName()},
		{"Věk", checklist.BandLabel(a.AgeBandID)},
		{"Prostředí", ContextLabel(a.Context)},
		{"Datum", a.Date},
		{"Stav", ConfirmedPill(a.Confirmed)},
	}
	if a.GeneralNote != "" {
		rows = append(rows, []string{"Poznámka", Truncate(a.GeneralNote, 60)})
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", r[0])), r[1]))
	}
	return RenderBox("FirstMap", strings.TrimRight(b.String(), "\n"))
}
