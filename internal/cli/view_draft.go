package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// activityRow is one suggested activity the cursor can toggle.
type activityRow struct {
	audience domain.Audience
	text     string
}

// draftView shows the plan with a cursor over suggested activities.
type draftView struct {
	state  *SharedState
	cursor int
	vp     viewport.Model
}

func newDraftView(state *SharedState) *draftView {
	vp := viewport.New(state.Width, state.viewHeight())
	vp.KeyMap = draftViewportKeyMap()
	v := &draftView{state: state, vp: vp}
	v.sync()
	return v
}

func (v *draftView) ID() ViewID    { return ViewDraft }
func (v *draftView) Title() string { return "Plán" }

func (v *draftView) ShortHelp() []key.Binding {
	confirm := "potvrdit"
	if a := v.state.Assessment; a != nil && a.Confirmed {
		confirm = "znovu otevřít"
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "aktivita")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "vybrat")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", confirm)),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "posun")),
	}
}

func (v *draftView) Init() tea.Cmd { return nil }

func (v *draftView) rows() []activityRow {
	res := v.state.Result
	if res == nil {
		return nil
	}
	var rows []activityRow
	for _, aud := range []domain.Audience{domain.AudienceWorker, domain.AudienceParent} {
		for _, text := range res.Suggested(aud) {
			rows = append(rows, activityRow{audience: aud, text: text})
		}
	}
	return rows
}

func (v *draftView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.sync()
		return v, nil

	case assessmentMsg:
		if n := len(v.rows()); v.cursor >= n {
			v.cursor = max(n-1, 0)
		}
		v.sync()
		return v, nil

	case tea.KeyMsg:
		rows := v.rows()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
		case " ", "space":
			if v.cursor < len(rows) {
				row := rows[v.cursor]
				return v, v.state.dispatch(domain.ToggleActivity{Audience: row.audience, Activity: row.text}, "")
			}
		case "c":
			if a := v.state.Assessment; a != nil {
				text := "Plán potvrzen"
				if a.Confirmed {
					text = "Plán znovu otevřen"
				}
				return v, v.state.dispatch(domain.SetConfirmed{Value: !a.Confirmed}, text)
			}
		default:
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
		v.sync()
	}
	return v, nil
}

// sync re-renders the content into the viewport and keeps the cursor
// line in view.
func (v *draftView) sync() {
	v.vp.Width = v.state.Width
	v.vp.Height = v.state.viewHeight()
	content, focus := v.render()
	v.vp.SetContent(content)
	if v.vp.Height <= 0 {
		return
	}
	if focus < v.vp.YOffset || focus >= v.vp.YOffset+v.vp.Height {
		v.vp.SetYOffset(max(0, focus-v.vp.Height/3))
	}
}

// render returns the draft text and the line index of the cursor.
func (v *draftView) render() (string, int) {
	a, res := v.state.Assessment, v.state.Result
	if a == nil || res == nil {
		return formatter.Dim("Načítám…"), 0
	}

	var b strings.Builder
	b.WriteString(formatter.FormatDraftOverview(a, res))

	focus, idx := 0, 0
	for _, aud := range []domain.Audience{domain.AudienceWorker, domain.AudienceParent} {
		b.WriteString("\n" + formatter.Header(aud.Label()) + "\n")
		suggested := res.Suggested(aud)
		if len(suggested) == 0 && len(a.Custom(aud)) == 0 {
			b.WriteString(formatter.Dim("Žádné návrhy.") + "\n")
		}
		for _, text := range suggested {
			prefix := "  "
			if idx == v.cursor {
				prefix = formatter.StyleHeader.Render("› ")
				focus = strings.Count(b.String(), "\n")
			}
			mark := formatter.Dim("[ ]")
			if a.IsSelected(aud, text) {
				mark = formatter.StyleGreen.Render("[x]")
			}
			fmt.Fprintf(&b, "%s%s %s\n", prefix, mark, text)
			idx++
		}
		for _, text := range a.Custom(aud) {
			fmt.Fprintf(&b, "  %s %s\n", formatter.StylePurple.Render("[+]"), text)
		}
	}

	if a.FinalNote != "" {
		b.WriteString("\n" + formatter.Header("Závěrečná poznámka") + "\n" + a.FinalNote + "\n")
	}
	return b.String(), focus
}

func (v *draftView) View() string {
	if v.vp.Height <= 0 {
		content, _ := v.render()
		return content
	}
	return v.vp.View()
}

// draftViewportKeyMap leaves arrow keys to the activity cursor.
func draftViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}
