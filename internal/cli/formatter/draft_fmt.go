package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

// FormatDraft renders the plan draft: summary, strengths, support areas,
// priorities and the suggested activities with their selection marks.
func FormatDraft(a *domain.Assessment, res *scoring.Result) string {
	var b strings.Builder
	b.WriteString(FormatDraftOverview(a, res))
	for _, aud := range []domain.Audience{domain.AudienceWorker, domain.AudienceParent} {
		b.WriteString("\n")
		b.WriteString(FormatActivities(a, res, aud))
	}
	return b.String()
}

// FormatDraftOverview is FormatDraft without the activity lists.
func FormatDraftOverview(a *domain.Assessment, res *scoring.Result) string {
	var b strings.Builder

	b.WriteString(Header("Plán · " + a.DisplayName()))
	b.WriteString("\n")
	b.WriteString(ConfirmedPill(a.Confirmed) + "\n\n")
	b.WriteString(Bold(res.Summary) + "\n")

	if len(res.Strengths) > 0 {
		b.WriteString("\n" + Header("Silné stránky") + "\n")
		for _, s := range res.Strengths {
			line := StyleGreen.Render("✓") + " " + s.Text
			if s.Bonus {
				line += " ⭐"
			}
			b.WriteString(line + "\n")
		}
	}

	if len(res.Reserves) > 0 {
		b.WriteString("\n" + Header("Oblast podpory") + "\n")
		for _, r := range res.Reserves {
			b.WriteString(fmt.Sprintf("%s %s %s\n", StyleYellow.Render("→"), r.Text, Dim("("+r.Status.Label()+")")))
		}
	}

	if res.HasPriorities() {
		b.WriteString("\n" + Header("Priority") + "\n")
		for i, p := range res.PrioritySections {
			b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, Bold(p.Section.Title), Dim(fmt.Sprintf("skóre %.2f", p.Score))))
		}
	}

	return b.String()
}

// FormatActivities lists suggested activities for one audience, numbered for
// `activity toggle`, followed by custom ones numbered for `activity remove`.
func FormatActivities(a *domain.Assessment, res *scoring.Result, aud domain.Audience) string {
	var b strings.Builder
	b.WriteString(Header(aud.Label()) + "\n")

	suggested := res.Suggested(aud)
	custom := a.Custom(aud)
	if len(suggested) == 0 && len(custom) == 0 {
		b.WriteString(Dim("Žádné návrhy.") + "\n")
		return b.String()
	}

	for i, act := range suggested {
		mark := Dim("[ ]")
		if a.IsSelected(aud, act) {
			mark = StyleGreen.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%2d %s %s\n", i+1, mark, act))
	}
	for i, act := range custom {
		b.WriteString(fmt.Sprintf("%s %s %s\n", Dim(fmt.Sprintf("c%d", i+1)), StylePurple.Render("[+]"), act))
	}
	return b.String()
}
