package service

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/scoring"
)

type resultService struct {
	memo   *scoring.Memo
	logger *slog.Logger
}

// NewResultService computes results through memo. logger may be nil.
func NewResultService(memo *scoring.Memo, logger *slog.Logger) ResultService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &resultService{memo: memo, logger: logger}
}

func (s *resultService) Compute(ctx context.Context, a *domain.Assessment) *scoring.Result {
	res := s.memo.Compute(a.AgeBandID, a.Statuses)
	hits, misses := s.memo.Stats()
	s.logger.DebugContext(ctx, "result computed",
		"assessment_id", a.ID,
		"band", a.AgeBandID,
		"answered", res.TotalAnswered,
		"memo_hits", hits,
		"memo_misses", misses,
	)
	return res
}

func (s *resultService) Dataset() *checklist.Dataset {
	return s.memo.Dataset()
}
