// Package report renders a confirmed or draft plan as a printable Markdown
// document.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

const (
	Title      = "FirstMap"
	Tagline    = "Pomáhá vidět, kam jít dál."
	DraftLabel = "Návrh (nepotvrzeno)"
)

// Build writes the report for an assessment and its computed result.
func Build(a *domain.Assessment, res *scoring.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "_%s_\n\n", Tagline)
	if !a.Confirmed {
		fmt.Fprintf(&b, "> **%s**\n\n", DraftLabel)
	}

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Datum | %s |\n", cell(a.Date))
	if a.Context != domain.ContextNone {
		fmt.Fprintf(&b, "| Prostředí | %s |\n", cell(a.Context.Label()))
	}
	if a.ChildNickname != "" {
		fmt.Fprintf(&b, "| Přezdívka | %s |\n", cell(a.ChildNickname))
	}
	fmt.Fprintf(&b, "| Věk | %s |\n\n", cell(checklist.BandLabel(a.AgeBandID)))

	fmt.Fprintf(&b, "**%s**\n\n", res.Summary)

	if len(res.Strengths) > 0 {
		b.WriteString("## Silné stránky\n\n")
		for _, s := range res.Strengths {
			if s.Bonus {
				fmt.Fprintf(&b, "- ✓ %s ⭐\n", s.Text)
			} else {
				fmt.Fprintf(&b, "- ✓ %s\n", s.Text)
			}
		}
		b.WriteString("\n")
	}

	if len(res.Reserves) > 0 {
		b.WriteString("## Oblast podpory\n\n")
		for _, r := range res.Reserves {
			fmt.Fprintf(&b, "- → %s\n", r.Text)
		}
		b.WriteString("\n")
	}

	if len(res.PrioritySections) > 0 {
		b.WriteString("## Priority\n\n")
		for i, p := range res.PrioritySections {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Section.Title)
		}
		b.WriteString("\n")
	}

	writeActivities(&b, domain.AudienceWorker, a)
	writeActivities(&b, domain.AudienceParent, a)

	if notes := sectionNotes(a, res); len(notes) > 0 {
		b.WriteString("## Poznámky k oblastem\n\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- **%s:** %s\n", n[0], n[1])
		}
		b.WriteString("\n")
	}

	if a.FinalNote != "" {
		fmt.Fprintf(&b, "## Závěrečná poznámka\n\n%s\n\n", a.FinalNote)
	}
	if a.GeneralNote != "" {
		fmt.Fprintf(&b, "### Kontextová poznámka\n\n%s\n\n", a.GeneralNote)
	}

	fmt.Fprintf(&b, "---\n\n_Vygenerováno pomocí %s · %s_\n", Title, a.Date)
	return b.String()
}

func writeActivities(b *strings.Builder, aud domain.Audience, a *domain.Assessment) {
	selected, custom := a.Selected(aud), a.Custom(aud)
	if len(selected)+len(custom) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", aud.Label())
	for _, s := range selected {
		fmt.Fprintf(b, "- %s\n", s)
	}
	for _, s := range custom {
		fmt.Fprintf(b, "- %s\n", s)
	}
	b.WriteString("\n")
}

// sectionNotes pairs section titles with notes, in checklist order.
func sectionNotes(a *domain.Assessment, res *scoring.Result) [][2]string {
	var out [][2]string
	for _, s := range res.SectionScores {
		if note := a.SectionNotes[s.Section.ID]; note != "" {
			out = append(out, [2]string{s.Section.Title, note})
		}
	}
	return out
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Render formats Markdown for the terminal, wrapped at width columns.
func Render(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}
