package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/firstmap/internal/repository"
	"github.com/alexanderramin/firstmap/internal/scoring"
	"github.com/alexanderramin/firstmap/internal/testutil"
)

type services struct {
	assessments AssessmentService
	results     ResultService
	reports     ReportService
	observer    *recordingObserver
}

func setupServices(t *testing.T) services {
	t.Helper()
	database := testutil.NewTestDB(t)
	ds := testutil.NewTestDataset()
	memo, err := scoring.NewMemo(ds, 16)
	require.NoError(t, err)

	obs := &recordingObserver{}
	results := NewResultService(memo, nil)
	return services{
		assessments: NewAssessmentService(
			repository.NewSQLiteAssessmentRepo(database),
			repository.NewSQLiteStateRepo(database),
			ds,
			testutil.NewTestUoW(t, database),
			obs,
		),
		results:  results,
		reports:  NewReportService(results, repository.NewSQLiteExportRepo(database), obs),
		observer: obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events, "no use case observed")
	return o.events[len(o.events)-1]
}
