package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
)

// DefaultMemoSize bounds the memo when no size is configured.
const DefaultMemoSize = 256

// Memo caches Compute results for one dataset, keyed on the full input.
// Cached results are shared and must be treated as read-only.
type Memo struct {
	ds     *checklist.Dataset
	cache  *lru.Cache[string, *Result]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemo creates a memo over ds holding at most size results.
func NewMemo(ds *checklist.Dataset, size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	cache, err := lru.New[string, *Result](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &Memo{ds: ds, cache: cache}, nil
}

// Dataset returns the dataset the memo is bound to.
func (m *Memo) Dataset() *checklist.Dataset {
	return m.ds
}

// Compute returns the cached result for the input, computing it on a miss.
func (m *Memo) Compute(bandID string, answers domain.AnswerMap) *Result {
	key := memoKey(bandID, answers)
	if res, ok := m.cache.Get(key); ok {
		m.hits.Add(1)
		return res
	}
	m.misses.Add(1)
	res := Compute(m.ds, bandID, answers)
	m.cache.Add(key, res)
	return res
}

// Stats returns the hit and miss counters.
func (m *Memo) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// Len is the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}

// memoKey orders answers by item ID and length-prefixes each ID so that
// arbitrary ID bytes cannot alias another answer set. Non-canonical
// statuses are left out since the engine ignores them.
func memoKey(bandID string, answers domain.AnswerMap) string {
	ids := make([]string, 0, len(answers))
	for id, s := range answers {
		if !s.Valid() {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(strconv.Itoa(len(bandID)))
	b.WriteByte(':')
	b.WriteString(bandID)
	for _, id := range ids {
		b.WriteString(strconv.Itoa(len(id)))
		b.WriteByte(':')
		b.WriteString(id)
		b.WriteString(string(answers[id]))
		b.WriteByte(';')
	}
	return b.String()
}
