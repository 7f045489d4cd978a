package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

func age(f float64) *float64 { return &f }

func section(id string, weight float64, items ...checklist.Item) checklist.Section {
	return checklist.Section{ID: id, Title: "Section " + id, CategoryWeight: weight, Items: items}
}

func item(id string, expected *float64) checklist.Item {
	return checklist.Item{ID: id, Text: "item " + id, ExpectedAge: expected}
}

func dataset(band string, sections ...checklist.Section) *checklist.Dataset {
	return &checklist.Dataset{
		Checklist: checklist.Checklist{Version: "1", AgeBands: map[string][]checklist.Section{band: sections}},
	}
}

func TestCompute_RanksByScore(t *testing.T) {
	ds := dataset("3-4",
		section("A", 1, item("a1", nil)),
		section("B", 2, item("b1", nil)),
	)
	res := Compute(ds, "3-4", domain.AnswerMap{"a1": domain.StatusCannot, "b1": domain.StatusCannot})

	require.Len(t, res.SectionScores, 2)
	assert.Equal(t, 2.0, res.SectionScores[0].Score)
	assert.Equal(t, 4.0, res.SectionScores[1].Score)

	require.Len(t, res.PrioritySections, 2)
	assert.Equal(t, "B", res.PrioritySections[0].Section.ID)
	assert.Equal(t, "A", res.PrioritySections[1].Section.ID)
	assert.Equal(t, "Doporučujeme zaměřit se na: Section B, Section A.", res.Summary)
}

func TestCompute_AllMasteredIsAllClear(t *testing.T) {
	ds := dataset("3-4",
		section("A", 1, item("a1", nil), item("a2", nil)),
		section("B", 2, item("b1", nil)),
	)
	res := Compute(ds, "3-4", domain.AnswerMap{"a1": domain.StatusCanDo, "a2": domain.StatusCanDo, "b1": domain.StatusCanDo})

	assert.Empty(t, res.PrioritySections)
	assert.Equal(t, AllClearSummary, res.Summary)
	assert.Len(t, res.Strengths, 3)
	for _, s := range res.SectionScores {
		assert.Equal(t, 0.0, s.Score)
		assert.Equal(t, 100.0, s.MasteredPct)
		assert.Equal(t, MasteryStrong, s.Mastery())
	}
}

func TestCompute_EmptyAnswers(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("a1", nil), item("a2", nil)))
	res := Compute(ds, "3-4", nil)

	require.Len(t, res.SectionScores, 1)
	s := res.SectionScores[0]
	assert.Equal(t, 0, s.Answered)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 0.0, s.MasteredPct)
	assert.Equal(t, MasteryUnscored, s.Mastery())
	assert.Empty(t, res.PrioritySections)
	assert.Equal(t, AllClearSummary, res.Summary)
	assert.Equal(t, 2, res.TotalItems)
	assert.Equal(t, 0, res.TotalAnswered)
}

func TestCompute_UnknownBand(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("a1", nil)))
	res := Compute(ds, "7-8", domain.AnswerMap{"a1": domain.StatusCannot})

	assert.Empty(t, res.SectionScores)
	assert.Empty(t, res.PrioritySections)
	assert.Equal(t, AllClearSummary, res.Summary)

	res = Compute(nil, "3-4", nil)
	assert.Equal(t, AllClearSummary, res.Summary)
}

func TestCompute_BonusStrength(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("young", age(5)), item("due", age(3)), item("neutral", nil)))
	res := Compute(ds, "3-4", domain.AnswerMap{
		"young":   domain.StatusCanDo,
		"due":     domain.StatusCanDo,
		"neutral": domain.StatusCanDo,
	})

	require.Len(t, res.Strengths, 3)
	assert.True(t, res.Strengths[0].Bonus, "child 3.5 < expected 5")
	assert.False(t, res.Strengths[1].Bonus)
	assert.False(t, res.Strengths[2].Bonus, "no expected age, no bonus")
}

func TestCompute_ReserveOnlyAtExpectedAge(t *testing.T) {
	ds := dataset("3-4", section("A", 1,
		item("young", age(4)),
		item("due", age(3.5)),
		item("neutral", nil),
	))
	res := Compute(ds, "3-4", domain.AnswerMap{
		"young":   domain.StatusCannot,
		"due":     domain.StatusWithHelp,
		"neutral": domain.StatusCannot,
	})

	ids := make([]string, len(res.Reserves))
	for i, r := range res.Reserves {
		ids[i] = r.ItemID
	}
	assert.Equal(t, []string{"due", "neutral"}, ids)
	assert.Equal(t, domain.StatusWithHelp, res.Reserves[0].Status)

	// young: 2*0.3, due: 1*1, neutral: 2*1
	assert.InDelta(t, 3.6, res.SectionScores[0].Score, 1e-9)
}

func TestCompute_NotTestedAndNotInterested(t *testing.T) {
	ds := dataset("5-6", section("A", 2, item("a1", nil), item("a2", age(6))))
	res := Compute(ds, "5-6", domain.AnswerMap{
		"a1": domain.StatusNotTested,
		"a2": domain.StatusNotInterested,
	})

	s := res.SectionScores[0]
	assert.Equal(t, 2, s.Answered)
	assert.Equal(t, 0, s.MasteredCount)
	assert.InDelta(t, 0.5*2+0.5*0.3*2, s.Score, 1e-9)
	assert.Empty(t, res.Strengths)
	assert.Empty(t, res.Reserves)
	assert.Equal(t, MasteryNeedsSupport, s.Mastery())
}

func TestCompute_IgnoresInvalidAndForeignAnswers(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("a1", nil), item("a2", nil)))
	res := Compute(ds, "3-4", domain.AnswerMap{
		"a1":      "ZVLADA",
		"a2":      "",
		"unknown": domain.StatusCannot,
	})

	assert.Equal(t, 0, res.SectionScores[0].Answered)
	assert.Equal(t, 0.0, res.SectionScores[0].Score)
	assert.Equal(t, 0, res.TotalAnswered)
	assert.Empty(t, res.Reserves)
}

func TestCompute_MasteredPct(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("a1", nil), item("a2", nil), item("a3", nil), item("a4", nil)))
	res := Compute(ds, "3-4", domain.AnswerMap{
		"a1": domain.StatusCanDo,
		"a2": domain.StatusWithHelp,
		"a3": domain.StatusNotTested,
	})

	s := res.SectionScores[0]
	assert.Equal(t, 3, s.Answered)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.MasteredCount)
	assert.InDelta(t, 100.0/3, s.MasteredPct, 1e-9)
	assert.Equal(t, MasteryNeedsSupport, s.Mastery())
}

func TestCompute_TieKeepsDatasetOrderAndLimitsToThree(t *testing.T) {
	ds := dataset("3-4",
		section("A", 1, item("a1", nil)),
		section("B", 1, item("b1", nil)),
		section("C", 1, item("c1", nil)),
		section("D", 1, item("d1", nil)),
		section("E", 1, item("e1", nil)),
	)
	answers := domain.AnswerMap{
		"a1": domain.StatusWithHelp,
		"b1": domain.StatusCannot,
		"c1": domain.StatusWithHelp,
		"d1": domain.StatusWithHelp,
		"e1": domain.StatusCanDo,
	}
	res := Compute(ds, "3-4", answers)

	var ids []string
	for _, p := range res.PrioritySections {
		ids = append(ids, p.Section.ID)
	}
	assert.Equal(t, []string{"B", "A", "C"}, ids)
}

func TestCompute_ActivitiesFirstTwo(t *testing.T) {
	ds := dataset("3-4",
		section("A", 1, item("a1", nil)),
		section("B", 1, item("b1", nil)),
	)
	ds.Activities = checklist.Activities{Version: "1", Categories: []checklist.ActivityCategory{
		{ID: "A", Worker: []string{"w1", "w2", "w3"}, Parent: []string{"p1"}},
	}}
	res := Compute(ds, "3-4", domain.AnswerMap{"a1": domain.StatusCannot, "b1": domain.StatusWithHelp})

	require.Len(t, res.PrioritySections, 2)
	assert.Equal(t, []string{"w1", "w2"}, res.PrioritySections[0].WorkerActivities)
	assert.Equal(t, []string{"p1"}, res.PrioritySections[0].ParentActivities)
	assert.Empty(t, res.PrioritySections[1].WorkerActivities, "missing category yields no activities")
	assert.Empty(t, res.PrioritySections[1].ParentActivities)

	// Result slices are copies.
	res.PrioritySections[0].WorkerActivities[0] = "changed"
	assert.Equal(t, "w1", ds.Activities.Categories[0].Worker[0])
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	ds, err := checklist.LoadEmbedded()
	require.NoError(t, err)
	answers := domain.AnswerMap{"rc34_01": domain.StatusCannot, "hm34_01": domain.StatusCanDo, "junk": "??"}

	dsBefore := *ds
	answersBefore := answers.Clone()
	_ = Compute(ds, "3-4", answers)

	if diff := cmp.Diff(answersBefore, answers); diff != "" {
		t.Errorf("answers mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(dsBefore, *ds); diff != "" {
		t.Errorf("dataset mutated (-want +got):\n%s", diff)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	ds, err := checklist.LoadEmbedded()
	require.NoError(t, err)
	answers := domain.AnswerMap{
		"rc56_01": domain.StatusCannot,
		"so56_02": domain.StatusWithHelp,
		"my56_01": domain.StatusNotTested,
		"jm56_03": domain.StatusCanDo,
	}
	first := Compute(ds, "5-6", answers)
	for range 20 {
		if diff := cmp.Diff(first, Compute(ds, "5-6", answers.Clone())); diff != "" {
			t.Fatalf("non-deterministic result (-first +again):\n%s", diff)
		}
	}
}

func TestCompute_Monotonic(t *testing.T) {
	ds, err := checklist.LoadEmbedded()
	require.NoError(t, err)

	for _, band := range ds.BandIDs() {
		for _, sec := range ds.SectionsForBand(band) {
			for i, it := range sec.Items {
				answers := domain.AnswerMap{it.ID: domain.StatusCanDo}
				mastered := Compute(ds, band, answers)
				answers[it.ID] = domain.StatusCannot
				notMastered := Compute(ds, band, answers)

				idx := sectionIndex(t, mastered, sec.ID)
				assert.GreaterOrEqual(t, notMastered.SectionScores[idx].Score, mastered.SectionScores[idx].Score,
					"band=%s section=%s item=%d", band, sec.ID, i)
			}
		}
	}
}

func TestCompute_PriorityInvariants(t *testing.T) {
	ds, err := checklist.LoadEmbedded()
	require.NoError(t, err)

	statuses := append([]domain.StatusKey{""}, domain.Statuses...)
	for seed := range 50 {
		answers := domain.AnswerMap{}
		n := 0
		for _, sec := range ds.SectionsForBand("3-4") {
			for _, it := range sec.Items {
				s := statuses[(seed*7+n*3)%len(statuses)]
				n++
				if s != "" {
					answers[it.ID] = s
				}
			}
		}
		res := Compute(ds, "3-4", answers)

		assert.LessOrEqual(t, len(res.PrioritySections), PriorityLimit)
		for i, p := range res.PrioritySections {
			assert.Greater(t, p.Score, 0.0)
			assert.LessOrEqual(t, len(p.WorkerActivities), ActivityLimit)
			assert.LessOrEqual(t, len(p.ParentActivities), ActivityLimit)
			if i > 0 {
				assert.GreaterOrEqual(t, res.PrioritySections[i-1].Score, p.Score)
			}
		}
		if len(res.PrioritySections) == 0 {
			assert.Equal(t, AllClearSummary, res.Summary)
		}
		for _, s := range res.SectionScores {
			assert.LessOrEqual(t, s.Answered, s.Total)
			assert.GreaterOrEqual(t, s.MasteredPct, 0.0)
			assert.LessOrEqual(t, s.MasteredPct, 100.0)
		}
	}
}

func TestSuggestedActivities_Dedup(t *testing.T) {
	res := &Result{PrioritySections: []Priority{
		{WorkerActivities: []string{"w1", "w2"}, ParentActivities: []string{"p1"}},
		{WorkerActivities: []string{"w2", "w3"}, ParentActivities: []string{"p1", "p2"}},
	}}
	assert.Equal(t, []string{"w1", "w2", "w3"}, res.SuggestedWorkerActivities())
	assert.Equal(t, []string{"p1", "p2"}, res.Suggested(domain.AudienceParent))
}

func TestMasteryFor(t *testing.T) {
	cases := []struct {
		answered int
		pct      float64
		want     Mastery
	}{
		{0, 0, MasteryUnscored},
		{3, 100, MasteryStrong},
		{5, 80, MasteryStrong},
		{5, 79.9, MasteryDeveloping},
		{5, 40, MasteryDeveloping},
		{5, 39.9, MasteryNeedsSupport},
		{5, 0, MasteryNeedsSupport},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MasteryFor(tc.answered, tc.pct), "answered=%d pct=%v", tc.answered, tc.pct)
	}
}

func TestWeights(t *testing.T) {
	assert.Equal(t, 0.0, StatusWeight(domain.StatusCanDo))
	assert.Equal(t, 1.0, StatusWeight(domain.StatusWithHelp))
	assert.Equal(t, 2.0, StatusWeight(domain.StatusCannot))
	assert.Equal(t, 0.5, StatusWeight(domain.StatusNotTested))
	assert.Equal(t, 0.5, StatusWeight(domain.StatusNotInterested))
	assert.Equal(t, 0.0, StatusWeight("bogus"))

	assert.Equal(t, 1.0, AgeRelevance(3.5, nil))
	assert.Equal(t, 1.0, AgeRelevance(3.5, age(3.5)))
	assert.Equal(t, YoungAgeRelevance, AgeRelevance(3.5, age(4)))
}

func sectionIndex(t *testing.T, res *Result, id string) int {
	t.Helper()
	for i, s := range res.SectionScores {
		if s.Section.ID == id {
			return i
		}
	}
	t.Fatalf("section %s not in result", id)
	return -1
}
