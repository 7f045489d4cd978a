package scoring

import (
	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// Compute scores answers against the sections of bandID. It never fails:
// an unknown band yields an empty result with the all-clear summary,
// answers for items outside the band are ignored, and a non-canonical
// status counts as unanswered. Neither ds nor answers is modified.
func Compute(ds *checklist.Dataset, bandID string, answers domain.AnswerMap) *Result {
	sections := ds.SectionsForBand(bandID)
	childAge, ageKnown := checklist.ChildAge(bandID)

	res := &Result{
		BandID:        bandID,
		ChildAge:      childAge,
		SectionScores: make([]SectionScore, 0, len(sections)),
	}

	for _, sec := range sections {
		ss := SectionScore{Section: sec, Total: len(sec.Items)}

		for _, item := range sec.Items {
			status, ok := answers[item.ID]
			if !ok || !status.Valid() {
				continue
			}
			ss.Answered++

			// Without a parseable band every item counts as age-appropriate.
			reached, relevance := true, 1.0
			if ageKnown {
				reached = reachedAge(childAge, item.ExpectedAge)
				relevance = AgeRelevance(childAge, item.ExpectedAge)
			}
			ss.Score += StatusWeight(status) * relevance * sec.CategoryWeight

			switch status {
			case domain.StatusCanDo:
				ss.MasteredCount++
				res.Strengths = append(res.Strengths, Strength{
					ItemID:       item.ID,
					Text:         item.Text,
					SectionID:    sec.ID,
					SectionTitle: sec.Title,
					Bonus:        item.HasExpectedAge() && !reached,
				})
			case domain.StatusWithHelp, domain.StatusCannot:
				if reached {
					res.Reserves = append(res.Reserves, Reserve{
						ItemID:       item.ID,
						Text:         item.Text,
						SectionID:    sec.ID,
						SectionTitle: sec.Title,
						Status:       status,
					})
				}
			}
		}

		if ss.Answered > 0 {
			ss.MasteredPct = float64(ss.MasteredCount) / float64(ss.Answered) * 100
		}
		res.TotalAnswered += ss.Answered
		res.TotalItems += ss.Total
		res.SectionScores = append(res.SectionScores, ss)
	}

	res.PrioritySections = rankPriorities(ds, res.SectionScores)
	res.Summary = Summarize(res.PrioritySections)
	return res
}
