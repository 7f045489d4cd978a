package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/cli/formatter"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// firstmapHuhTheme returns a huh theme using the Gruvbox palette.
func firstmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// setupFormValues is the mutable target of the setup form.
type setupFormValues struct {
	Nickname string
	Band     string
	Context  string
	Note     string
}

func newSetupFormValues(s domain.Setup) *setupFormValues {
	return &setupFormValues{
		Nickname: s.ChildNickname,
		Band:     s.AgeBandID,
		Context:  string(s.Context),
		Note:     s.GeneralNote,
	}
}

func (v *setupFormValues) setup() domain.Setup {
	return domain.Setup{
		ChildNickname: strings.TrimSpace(v.Nickname),
		AgeBandID:     v.Band,
		Context:       domain.ContextID(v.Context),
		GeneralNote:   strings.TrimSpace(v.Note),
	}
}

// setupForm asks for the child's nickname, age band, context and a
// general note.
func setupForm(ds *checklist.Dataset, v *setupFormValues) *huh.Form {
	bands := make([]huh.Option[string], 0, len(ds.BandIDs()))
	for _, id := range ds.BandIDs() {
		bands = append(bands, huh.NewOption(checklist.BandLabel(id), id))
	}
	if v.Band == "" && len(bands) > 0 {
		v.Band = bands[0].Value
	}

	contexts := []huh.Option[string]{huh.NewOption("Neuvedeno", "")}
	for _, c := range domain.Contexts {
		contexts = append(contexts, huh.NewOption(c.Label(), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Přezdívka dítěte").
				Description("Nepoužívejte celé jméno.").
				Placeholder("např. Ema").
				Value(&v.Nickname),
			huh.NewSelect[string]().
				Title("Věková skupina").
				Options(bands...).
				Value(&v.Band).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("vyberte věkovou skupinu")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Prostředí").
				Options(contexts...).
				Value(&v.Context),
			huh.NewText().
				Title("Kontextová poznámka").
				CharLimit(500).
				Value(&v.Note),
		),
	).WithTheme(firstmapHuhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Ano").
				Negative("Ne").
				Value(result),
		),
	).WithTheme(firstmapHuhTheme()).WithShowHelp(false)
}
