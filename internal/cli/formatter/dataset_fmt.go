package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/firstmap/internal/checklist"
)

// FormatDatasetOK summarizes a valid dataset and warns about activity
// categories no section uses.
func FormatDatasetOK(source string, ds *checklist.Dataset) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Dataset je platný") + " " + Dim(source) + "\n")
	b.WriteString(fmt.Sprintf("%s checklist %s, aktivity %s\n",
		Dim("verze"), ds.Checklist.Version, ds.Activities.Version))
	for _, band := range ds.BandIDs() {
		b.WriteString(fmt.Sprintf("  %-8s %s, %d oblastí, %d položek\n",
			band, checklist.BandLabel(band), len(ds.SectionsForBand(band)), ds.TotalItems(band)))
	}
	if unused := checklist.UnusedCategories(ds); len(unused) > 0 {
		b.WriteString(StyleYellow.Render("! nepoužité kategorie aktivit: "+strings.Join(unused, ", ")) + "\n")
	}
	return b.String()
}

// FormatDatasetError lists every validation problem, or the plain error when
// loading failed before validation.
func FormatDatasetError(err error) string {
	var b strings.Builder
	var verr *checklist.ValidationError
	if !errors.As(err, &verr) {
		b.WriteString(StyleRed.Render("✖ "+err.Error()) + "\n")
		return b.String()
	}

	b.WriteString(StyleRed.Render(fmt.Sprintf("✖ Dataset %s má %d problém(ů)", verr.Source, len(verr.Problems))) + "\n")
	for _, p := range verr.Problems {
		b.WriteString("  " + StyleRed.Render("•") + " " + p.Error() + "\n")
	}
	return b.String()
}
