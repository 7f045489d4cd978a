package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/firstmap/internal/checklist"
	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/repository"
)

// currentAssessmentKey is the app_state key holding the current assessment ID.
const currentAssessmentKey = "current_assessment"

type assessmentService struct {
	assessments repository.AssessmentRepo
	state       repository.StateRepo
	ds          *checklist.Dataset
	uow         db.UnitOfWork
	observer    UseCaseObserver
	now         func() time.Time
}

func NewAssessmentService(
	assessments repository.AssessmentRepo,
	state repository.StateRepo,
	ds *checklist.Dataset,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AssessmentService {
	return &assessmentService{
		assessments: assessments,
		state:       state,
		ds:          ds,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
		now:         time.Now,
	}
}

func (s *assessmentService) Current(ctx context.Context) (*domain.Assessment, error) {
	return loadCurrent(ctx, s.state, s.assessments)
}

func (s *assessmentService) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *assessmentService) List(ctx context.Context) ([]domain.AssessmentSummary, error) {
	return s.assessments.List(ctx)
}

func (s *assessmentService) Setup(ctx context.Context, setup domain.Setup) (a *domain.Assessment, err error) {
	fields := map[string]any{"band": setup.AgeBandID}
	done := track(ctx, s.observer, "setup", fields)
	defer func() { done(err) }()

	if setup, err = s.validateSetup(setup); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)
		txState := repository.NewSQLiteStateRepo(tx)

		cur, err := loadCurrent(ctx, txState, txAssessments)
		if errors.Is(err, ErrNoAssessment) {
			a, err = s.create(ctx, txAssessments, txState, setup)
			fields["created"] = true
			return err
		}
		if err != nil {
			return err
		}

		a, err = s.apply(cur, domain.ApplySetup{Setup: setup, Date: s.today()})
		if err != nil {
			return err
		}
		return txAssessments.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	fields["assessment_id"] = a.ID
	return a, nil
}

func (s *assessmentService) Start(ctx context.Context, setup domain.Setup) (a *domain.Assessment, err error) {
	fields := map[string]any{"band": setup.AgeBandID}
	done := track(ctx, s.observer, "start", fields)
	defer func() { done(err) }()

	if setup, err = s.validateSetup(setup); err != nil {
		return nil, err
	}
	a, err = s.startWith(ctx, setup)
	if err == nil {
		fields["assessment_id"] = a.ID
	}
	return a, err
}

func (s *assessmentService) Reset(ctx context.Context) (a *domain.Assessment, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "reset", fields)
	defer func() { done(err) }()

	a, err = s.startWith(ctx, domain.Setup{})
	if err == nil {
		fields["assessment_id"] = a.ID
	}
	return a, err
}

func (s *assessmentService) startWith(ctx context.Context, setup domain.Setup) (*domain.Assessment, error) {
	var a *domain.Assessment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		a, err = s.create(ctx, repository.NewSQLiteAssessmentRepo(tx), repository.NewSQLiteStateRepo(tx), setup)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// create stores a new assessment with setup applied and makes it current.
func (s *assessmentService) create(ctx context.Context, assessments repository.AssessmentRepo, state repository.StateRepo, setup domain.Setup) (*domain.Assessment, error) {
	now := s.now()
	a, err := domain.Reduce(domain.NewAssessment(uuid.New().String(), now.UTC()), domain.ApplySetup{Setup: setup, Date: now.Format(domain.DateLayout)})
	if err != nil {
		return nil, err
	}
	if err := assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := state.Set(ctx, currentAssessmentKey, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) Dispatch(ctx context.Context, action domain.Action) (a *domain.Assessment, err error) {
	fields := map[string]any{"action": action.Name()}
	done := track(ctx, s.observer, "dispatch", fields)
	defer func() { done(err) }()

	if set, ok := action.(domain.ApplySetup); ok {
		if set.Setup, err = s.validateSetup(set.Setup); err != nil {
			return nil, err
		}
		action = set
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)

		cur, err := loadCurrent(ctx, repository.NewSQLiteStateRepo(tx), txAssessments)
		if err != nil {
			return err
		}
		fields["assessment_id"] = cur.ID
		if err := s.validateAction(cur, action); err != nil {
			return err
		}
		a, err = s.apply(cur, action)
		if err != nil {
			return err
		}
		return txAssessments.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) ResetSection(ctx context.Context, sectionID string) (*domain.Assessment, error) {
	cur, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !cur.HasSetup() {
		return nil, ErrSetupRequired
	}
	sec, ok := s.ds.Section(cur.AgeBandID, sectionID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSection, sectionID)
	}
	return s.Dispatch(ctx, domain.ResetSection{SectionID: sec.ID, ItemIDs: sec.ItemIDs()})
}

func (s *assessmentService) Use(ctx context.Context, id string) (*domain.Assessment, error) {
	a, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.state.Set(ctx, currentAssessmentKey, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assessmentService) Delete(ctx context.Context, id string) (err error) {
	done := track(ctx, s.observer, "delete", map[string]any{"assessment_id": id})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txState := repository.NewSQLiteStateRepo(tx)
		if err := repository.NewSQLiteAssessmentRepo(tx).Delete(ctx, id); err != nil {
			return err
		}
		current, err := txState.Get(ctx, currentAssessmentKey)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if current == id {
			return txState.Delete(ctx, currentAssessmentKey)
		}
		return nil
	})
}

// apply reduces and stamps the update time.
func (s *assessmentService) apply(cur *domain.Assessment, action domain.Action) (*domain.Assessment, error) {
	next, err := domain.Reduce(cur, action)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()
	return next, nil
}

func (s *assessmentService) today() string {
	return s.now().Format(domain.DateLayout)
}

// validateSetup checks setup against the dataset and returns it with the
// context in its canonical spelling.
func (s *assessmentService) validateSetup(setup domain.Setup) (domain.Setup, error) {
	if setup.AgeBandID == "" {
		return setup, fmt.Errorf("age band is required: %w", ErrSetupRequired)
	}
	if !s.ds.HasBand(setup.AgeBandID) {
		return setup, fmt.Errorf("%w %q (available: %v)", ErrUnknownBand, setup.AgeBandID, s.ds.BandIDs())
	}
	c, err := domain.ParseContext(string(setup.Context))
	if err != nil {
		return setup, err
	}
	setup.Context = c
	return setup, nil
}

// validateAction checks an action against the dataset before it is applied.
func (s *assessmentService) validateAction(a *domain.Assessment, action domain.Action) error {
	switch act := action.(type) {
	case domain.ApplySetup:
		_, err := s.validateSetup(act.Setup)
		return err
	case domain.SetStatus:
		return s.requireItem(a, act.ItemID)
	case domain.ClearStatus:
		return s.requireItem(a, act.ItemID)
	case domain.SetSectionNote:
		return s.requireSection(a, act.SectionID)
	case domain.ResetSection:
		return s.requireSection(a, act.SectionID)
	case domain.ToggleActivity:
		_, err := domain.ParseAudience(string(act.Audience))
		return err
	case domain.AddCustomActivity:
		_, err := domain.ParseAudience(string(act.Audience))
		return err
	case domain.RemoveCustomActivity:
		_, err := domain.ParseAudience(string(act.Audience))
		return err
	}
	return nil
}

func (s *assessmentService) requireItem(a *domain.Assessment, itemID string) error {
	if !a.HasSetup() {
		return ErrSetupRequired
	}
	if _, _, ok := s.ds.Item(a.AgeBandID, itemID); !ok {
		return fmt.Errorf("%w %q in band %s", ErrUnknownItem, itemID, a.AgeBandID)
	}
	return nil
}

func (s *assessmentService) requireSection(a *domain.Assessment, sectionID string) error {
	if !a.HasSetup() {
		return ErrSetupRequired
	}
	if _, ok := s.ds.Section(a.AgeBandID, sectionID); !ok {
		return fmt.Errorf("%w %q in band %s", ErrUnknownSection, sectionID, a.AgeBandID)
	}
	return nil
}

func loadCurrent(ctx context.Context, state repository.StateRepo, assessments repository.AssessmentRepo) (*domain.Assessment, error) {
	id, err := state.Get(ctx, currentAssessmentKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoAssessment
	}
	if err != nil {
		return nil, err
	}
	a, err := assessments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoAssessment
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
