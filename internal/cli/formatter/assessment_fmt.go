package formatter

import (
	"fmt"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// FormatAssessmentList renders stored assessments, marking the current one.
func FormatAssessmentList(list []domain.AssessmentSummary, currentID string) string {
	if len(list) == 0 {
		return Dim("Zatím žádná hodnocení. Začněte příkazem `firstmap setup`.") + "\n"
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		marker := " "
		if s.ID == currentID {
			marker = StyleGreen.Render("▸")
		}
		name := s.ChildNickname
		if name == "" {
			name = Dim("(bez přezdívky)")
		}
		rows = append(rows, []string{
			marker,
			TruncID(s.ID),
			name,
			checklist.BandLabel(s.AgeBandID),
			s.Date,
			fmt.Sprintf("%d", s.Answered),
			ConfirmedPill(s.Confirmed),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return RenderTable([]string{"", "ID", "Přezdívka", "Věk", "Datum", "Odpovědi", "Stav", "Upraveno"}, rows)
}
