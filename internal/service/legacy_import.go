package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/firstmap/internal/db"
	"github.com/alexanderramin/firstmap/internal/domain"
	"github.com/alexanderramin/firstmap/internal/repository"
)

// LegacyStorageKey is the browser storage key the web checklist saved under.
const LegacyStorageKey = "firstmap_assessment_v2"

var ErrLegacyFormat = errors.New("unrecognized legacy export")

// LegacyImportResult describes an imported assessment and what was dropped.
type LegacyImportResult struct {
	Assessment *domain.Assessment
	Imported   int
	// Skipped lists "item=value" pairs whose status could not be parsed or
	// whose item does not belong to the assessment's band.
	Skipped []string
}

type legacyAssessment struct {
	ChildNickname            string            `json:"childNickname"`
	AgeBandID                string            `json:"ageBandId"`
	Context                  string            `json:"context"`
	GeneralNote              string            `json:"generalNote"`
	DateISO                  string            `json:"dateISO"`
	Statuses                 map[string]string `json:"statuses"`
	SectionNotes             map[string]string `json:"sectionNotes"`
	SelectedWorkerActivities []string          `json:"selectedWorkerActivities"`
	SelectedParentActivities []string          `json:"selectedParentActivities"`
	CustomWorkerActivities   []string          `json:"customWorkerActivities"`
	CustomParentActivities   []string          `json:"customParentActivities"`
	FinalNote                string            `json:"finalNote"`
	Confirmed                bool              `json:"confirmed"`
}

// decodeLegacy accepts either the stored assessment object or a storage
// dump keyed by LegacyStorageKey whose value is the object or its JSON string.
func decodeLegacy(data []byte) (*legacyAssessment, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
	}

	payload := data
	if raw, ok := envelope[LegacyStorageKey]; ok {
		payload = raw
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil {
			payload = []byte(inner)
		}
	} else if _, ok := envelope["statuses"]; !ok {
		if _, ok := envelope["ageBandId"]; !ok {
			return nil, fmt.Errorf("%w: no %s key and no assessment fields", ErrLegacyFormat, LegacyStorageKey)
		}
	}

	var la legacyAssessment
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&la); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLegacyFormat, err)
	}
	return &la, nil
}

func (s *assessmentService) ImportLegacy(ctx context.Context, r io.Reader) (res *LegacyImportResult, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "import_legacy", fields)
	defer func() { done(err) }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading legacy export: %w", err)
	}
	la, err := decodeLegacy(data)
	if err != nil {
		return nil, err
	}

	a, res, err := s.fromLegacy(la)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAssessmentRepo(tx).Create(ctx, a); err != nil {
			return err
		}
		return repository.NewSQLiteStateRepo(tx).Set(ctx, currentAssessmentKey, a.ID)
	})
	if err != nil {
		return nil, err
	}

	fields["assessment_id"] = a.ID
	fields["imported"] = res.Imported
	fields["skipped"] = len(res.Skipped)
	return res, nil
}

func (s *assessmentService) fromLegacy(la *legacyAssessment) (*domain.Assessment, *LegacyImportResult, error) {
	band := strings.TrimSpace(la.AgeBandID)
	if band != "" && !s.ds.HasBand(band) {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownBand, band)
	}

	var ctxID domain.ContextID
	if la.Context != "" {
		parsed, err := domain.ParseContext(la.Context)
		if err != nil {
			return nil, nil, err
		}
		ctxID = parsed
	}

	now := s.now()
	a := domain.NewAssessment(uuid.New().String(), now.UTC())
	a.ChildNickname = strings.TrimSpace(la.ChildNickname)
	a.AgeBandID = band
	a.Context = ctxID
	a.GeneralNote = la.GeneralNote
	a.Date = now.Format(domain.DateLayout)
	if len(la.DateISO) >= len(domain.DateLayout) {
		a.Date = la.DateISO[:len(domain.DateLayout)]
	}
	a.FinalNote = la.FinalNote
	a.Confirmed = la.Confirmed
	a.SelectedWorkerActivities = append([]string(nil), la.SelectedWorkerActivities...)
	a.SelectedParentActivities = append([]string(nil), la.SelectedParentActivities...)
	a.CustomWorkerActivities = append([]string(nil), la.CustomWorkerActivities...)
	a.CustomParentActivities = append([]string(nil), la.CustomParentActivities...)
	for id, note := range la.SectionNotes {
		if note != "" {
			a.SectionNotes[id] = note
		}
	}

	res := &LegacyImportResult{Assessment: a}
	for itemID, raw := range la.Statuses {
		st, err := domain.ParseStatus(raw)
		if err != nil || (band != "" && !s.hasItem(band, itemID)) {
			res.Skipped = append(res.Skipped, itemID+"="+raw)
			continue
		}
		a.Statuses[itemID] = st
		res.Imported++
	}
	sort.Strings(res.Skipped)
	return a, res, nil
}

func (s *assessmentService) hasItem(band, itemID string) bool {
	_, _, ok := s.ds.Item(band, itemID)
	return ok
}
