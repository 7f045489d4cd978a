package scoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

func newTestMemo(t *testing.T, size int) *Memo {
	t.Helper()
	ds, err := checklist.LoadEmbedded()
	require.NoError(t, err)
	m, err := NewMemo(ds, size)
	require.NoError(t, err)
	return m
}

func TestMemo_HitOnEqualInput(t *testing.T) {
	m := newTestMemo(t, 8)

	a := domain.AnswerMap{"rc34_01": domain.StatusCannot, "hm34_01": domain.StatusWithHelp}
	b := domain.AnswerMap{"hm34_01": domain.StatusWithHelp, "rc34_01": domain.StatusCannot}

	first := m.Compute("3-4", a)
	second := m.Compute("3-4", b)
	assert.Same(t, first, second)

	hits, misses := m.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestMemo_DistinguishesBandsAndAnswers(t *testing.T) {
	m := newTestMemo(t, 8)
	answers := domain.AnswerMap{"rc34_01": domain.StatusCannot}

	r34 := m.Compute("3-4", answers)
	r56 := m.Compute("5-6", answers)
	assert.NotSame(t, r34, r56)
	assert.Equal(t, "3-4", r34.BandID)
	assert.Equal(t, "5-6", r56.BandID)

	changed := m.Compute("3-4", domain.AnswerMap{"rc34_01": domain.StatusWithHelp})
	assert.NotSame(t, r34, changed)
	assert.Equal(t, 3, m.Len())
}

func TestMemo_MatchesCompute(t *testing.T) {
	m := newTestMemo(t, 8)
	answers := domain.AnswerMap{"so56_01": domain.StatusCannot, "my56_02": domain.StatusCanDo}
	assert.Equal(t, Compute(m.Dataset(), "5-6", answers), m.Compute("5-6", answers))
}

func TestMemo_InvalidStatusesShareKey(t *testing.T) {
	assert.Equal(t,
		memoKey("3-4", domain.AnswerMap{"a": domain.StatusCanDo}),
		memoKey("3-4", domain.AnswerMap{"a": domain.StatusCanDo, "b": "ZVLADA"}),
	)
	assert.NotEqual(t, memoKey("3-4", nil), memoKey("5-6", nil))
}

func TestMemo_SeparatorsInItemIDs(t *testing.T) {
	ds := dataset("3-4", section("A", 1, item("x", nil), item("y;z", nil)))
	m, err := NewMemo(ds, 8)
	require.NoError(t, err)

	first := m.Compute("3-4", domain.AnswerMap{"x": domain.StatusCanDo, "y;z": domain.StatusCannot})
	assert.Equal(t, 2, first.TotalAnswered)

	crafted := domain.AnswerMap{"x=CAN_DO;y;z": domain.StatusCannot}
	second := m.Compute("3-4", crafted)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.TotalAnswered)
	assert.Equal(t, Compute(ds, "3-4", crafted), second)

	assert.NotEqual(t,
		memoKey("3-4", domain.AnswerMap{"x": domain.StatusCanDo, "y;z": domain.StatusCannot}),
		memoKey("3-4", crafted),
	)
}

func TestMemo_Evicts(t *testing.T) {
	m := newTestMemo(t, 2)
	m.Compute("3-4", nil)
	m.Compute("5-6", nil)
	m.Compute("3-4", domain.AnswerMap{"rc34_01": domain.StatusCannot})
	assert.Equal(t, 2, m.Len())
}

func TestMemo_Concurrent(t *testing.T) {
	m := newTestMemo(t, 16)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			band := "3-4"
			if i%2 == 1 {
				band = "5-6"
			}
			for range 50 {
				res := m.Compute(band, domain.AnswerMap{"rc34_01": domain.StatusCannot})
				assert.Equal(t, band, res.BandID)
			}
		}()
	}
	wg.Wait()
	hits, misses := m.Stats()
	assert.Equal(t, uint64(400), hits+misses)
}
