package scoring

import "strings"

const (
	summaryPrefix = "Doporučujeme zaměřit se na: "
	// AllClearSummary is shown when no section has a problem signal.
	AllClearSummary = "Dítě si vede dobře ve všech oblastech. Pokračujte v podpoře."
)

// Summarize renders the one-sentence recommendation for the priorities.
func Summarize(priorities []Priority) string {
	if len(priorities) == 0 {
		return AllClearSummary
	}
	titles := make([]string, len(priorities))
	for i, p := range priorities {
		titles[i] = p.Section.Title
	}
	return summaryPrefix + strings.Join(titles, ", ") + "."
}
