package scoring

import (
	"slices"
	"sort"

	"github.com/alexanderramin/firstmap/internal/checklist"
)

// rankPriorities picks the PriorityLimit highest-scoring sections with a
// positive score. Equal scores keep dataset order.
func rankPriorities(ds *checklist.Dataset, scores []SectionScore) []Priority {
	candidates := make([]SectionScore, 0, len(scores))
	for _, s := range scores {
		if s.Score > 0 {
			candidates = append(candidates, s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > PriorityLimit {
		candidates = candidates[:PriorityLimit]
	}

	out := make([]Priority, 0, len(candidates))
	for _, c := range candidates {
		p := Priority{Section: c.Section, Score: c.Score}
		if cat, ok := ds.Category(c.Section.ID); ok {
			p.WorkerActivities = firstN(cat.Worker, ActivityLimit)
			p.ParentActivities = firstN(cat.Parent, ActivityLimit)
		}
		out = append(out, p)
	}
	return out
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	return slices.Clone(list)
}
