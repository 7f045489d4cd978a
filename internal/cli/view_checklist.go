package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// checklistRow is one answerable item with its section.
type checklistRow struct {
	section checklist.Section
	item    checklist.Item
}

// checklistView lists every section of the band with a cursor over items.
type checklistView struct {
	state  *SharedState
	cursor int
}

func newChecklistView(state *SharedState) *checklistView {
	return &checklistView{state: state}
}

func (v *checklistView) ID() ViewID    { return ViewChecklist }
func (v *checklistView) Title() string { return "Checklist" }

func (v *checklistView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "stav")),
		key.NewBinding(key.WithKeys("0", "backspace"), key.WithHelp("0", "vymazat")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "poznámka")),
		key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset oblasti")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "plán")),
	}
}

func (v *checklistView) Init() tea.Cmd { return nil }

func (v *checklistView) rows() []checklistRow {
	res := v.state.Result
	if res == nil {
		return nil
	}
	var rows []checklistRow
	for _, ss := range res.SectionScores {
		for _, item := range ss.Section.Items {
			rows = append(rows, checklistRow{section: ss.Section, item: item})
		}
	}
	return rows
}

func (v *checklistView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assessmentMsg:
		if n := len(v.rows()); v.cursor >= n {
			v.cursor = max(n-1, 0)
		}
		return v, nil

	case tea.KeyMsg:
		rows := v.rows()
		if len(rows) == 0 {
			return v, nil
		}
		row := rows[v.cursor]

		switch k := msg.String(); k {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
		case "1", "2", "3", "4", "5":
			status := domain.Statuses[k[0]-'1']
			cmd := v.state.dispatch(domain.SetStatus{ItemID: row.item.ID, Status: status},
				fmt.Sprintf("%s → %s", row.item.ID, status.Label()))
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
			return v, cmd
		case "0", "backspace":
			return v, v.state.dispatch(domain.ClearStatus{ItemID: row.item.ID}, row.item.ID+" vymazáno")
		case "n":
			return v, v.editNote(row.section)
		case "R":
			return v, v.confirmReset(row.section)
		case "d":
			return v, pushView(newDraftView(v.state))
		}
	}
	return v, nil
}

func (v *checklistView) editNote(sec checklist.Section) tea.Cmd {
	note := ""
	if a := v.state.Assessment; a != nil {
		note = a.SectionNotes[sec.ID]
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Poznámka · " + sec.Title).
				CharLimit(500).
				Value(&note),
		),
	).WithTheme(firstmapHuhTheme()).WithShowHelp(false)

	return startWizardCmd(v.state, "Poznámka", form, func() tea.Cmd {
		return v.state.dispatch(domain.SetSectionNote{SectionID: sec.ID, Note: strings.TrimSpace(note)}, "Poznámka uložena")
	})
}

func (v *checklistView) confirmReset(sec checklist.Section) tea.Cmd {
	var ok bool
	form := confirmForm(fmt.Sprintf("Vymazat odpovědi v oblasti %s?", sec.Title), &ok)
	return startWizardCmd(v.state, "Reset oblasti", form, func() tea.Cmd {
		if !ok {
			return flash("Zrušeno.")
		}
		return v.state.resetSection(sec.ID, sec.Title+" vymazáno")
	})
}

func (v *checklistView) View() string {
	a, res := v.state.Assessment, v.state.Result
	if a == nil || res == nil {
		return "\n  " + formatter.Dim("Načítám…")
	}

	lines := []string{
		fmt.Sprintf("%s %s  %s", formatter.Dim("Vyplněno"),
			formatter.RenderProgress(res.ProgressPct()/100, 20),
			formatter.Dim(fmt.Sprintf("(%d/%d)", res.TotalAnswered, res.TotalItems))),
		formatter.StatusLegend(),
	}

	focus, idx := 0, 0
	for _, ss := range res.SectionScores {
		lines = append(lines, "", formatter.FormatSectionHeading(ss))
		for _, item := range ss.Section.Items {
			status, ok := a.Statuses[item.ID]
			prefix := "  "
			text := item.Text
			if idx == v.cursor {
				prefix = formatter.StyleHeader.Render("› ")
				text = formatter.Bold(text)
				focus = len(lines)
			}
			lines = append(lines, fmt.Sprintf("%s%s %s", prefix, formatter.StatusChip(status, ok), text))
			idx++
		}
		if note := a.SectionNotes[ss.Section.ID]; note != "" {
			lines = append(lines, "  "+formatter.StyleBlue.Render("✎ "+note))
		}
	}

	return strings.Join(windowLines(lines, focus, v.state.viewHeight()), "\n")
}
