package storage

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"leetfolio/internal"
)

// AggregateKey is the single fixed key the whole problem set lives under.
const AggregateKey = "problem_set"

// ProblemSet owns the persisted aggregate. Every operation is a
// read-modify-write of the whole value; mutations are serialized through one
// mutex because the KV layer gives no transactional isolation.
type ProblemSet struct {
	kv  KV
	mu  sync.Mutex
	log *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewProblemSet(kv KV, log *zap.Logger) *ProblemSet {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProblemSet{
		kv:    kv,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// storedAggregate decodes defensively: a malformed info or problems field
// degrades to its empty default instead of failing the operation.
type storedAggregate struct {
	Info     json.RawMessage `json:"info"`
	Problems json.RawMessage `json:"problems"`
}

func (s *ProblemSet) load() (internal.Aggregate, error) {
	agg := internal.Aggregate{Problems: []internal.ProblemRecord{}}

	raw, found, err := s.kv.Read(AggregateKey)
	if err != nil {
		return agg, err
	}
	if !found {
		return agg, nil
	}

	var stored storedAggregate
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.log.Warn("persisted aggregate is malformed, starting from empty", zap.Error(err))
		return agg, nil
	}
	if len(stored.Info) > 0 {
		_ = json.Unmarshal(stored.Info, &agg.Info)
	}
	if len(stored.Problems) > 0 {
		var problems []internal.ProblemRecord
		if err := json.Unmarshal(stored.Problems, &problems); err != nil {
			s.log.Warn("persisted problems are not list-shaped, treating as empty", zap.Error(err))
		} else {
			agg.Problems = problems
		}
	}
	return agg, nil
}

func (s *ProblemSet) save(agg internal.Aggregate) error {
	blob, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return s.kv.Write(AggregateKey, blob)
}

func (s *ProblemSet) SetInfo(info internal.SetInfo) error {
	title := strings.TrimSpace(info.Title)
	submittedBy := strings.TrimSpace(info.SubmittedBy)
	if title == "" {
		return internal.Failf(internal.KindInvalidInput, "info title is required")
	}
	if submittedBy == "" {
		return internal.Failf(internal.KindInvalidInput, "info submittedBy is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.load()
	if err != nil {
		return err
	}
	agg.Info = internal.SetInfo{Title: title, SubmittedBy: submittedBy}
	return s.save(agg)
}

// GetInfo never fails on a missing aggregate; absent fields come back empty.
func (s *ProblemSet) GetInfo() (internal.SetInfo, error) {
	agg, err := s.load()
	if err != nil {
		return internal.SetInfo{}, err
	}
	return agg.Info, nil
}

func (s *ProblemSet) AddProblem(rec internal.ExtractedRecord) (internal.ProblemRecord, error) {
	required := []struct {
		name  string
		value string
	}{
		{"name", rec.Name},
		{"submissionLink", rec.SubmissionLink},
		{"code", rec.Code},
		{"language", rec.Language},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return internal.ProblemRecord{}, internal.Failf(internal.KindInvalidInput, "problem %s is required", field.name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.load()
	if err != nil {
		return internal.ProblemRecord{}, err
	}

	problem := internal.ProblemRecord{
		ID:             s.newID(),
		Name:           rec.Name,
		SubmissionLink: rec.SubmissionLink,
		Code:           rec.Code,
		Language:       rec.Language,
		CapturedAt:     s.now(),
		Order:          len(agg.Problems),
	}
	agg.Problems = append(agg.Problems, problem)

	if err := s.save(agg); err != nil {
		return internal.ProblemRecord{}, err
	}
	return problem, nil
}

// ProblemPatch carries partial updates; nil fields keep the stored value.
type ProblemPatch struct {
	Name           *string
	SubmissionLink *string
	Code           *string
	Language       *string
}

func (s *ProblemSet) UpdateProblem(id string, patch ProblemPatch) (internal.ProblemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.load()
	if err != nil {
		return internal.ProblemRecord{}, err
	}

	for i := range agg.Problems {
		if agg.Problems[i].ID != id {
			continue
		}
		if patch.Name != nil {
			agg.Problems[i].Name = *patch.Name
		}
		if patch.SubmissionLink != nil {
			agg.Problems[i].SubmissionLink = *patch.SubmissionLink
		}
		if patch.Code != nil {
			agg.Problems[i].Code = *patch.Code
		}
		if patch.Language != nil {
			agg.Problems[i].Language = *patch.Language
		}
		if err := s.save(agg); err != nil {
			return internal.ProblemRecord{}, err
		}
		return agg.Problems[i], nil
	}

	return internal.ProblemRecord{}, internal.Failf(internal.KindNotFound, "problem %s not found", id)
}

// DeleteProblem treats an absent id as a benign no-op: the record may already
// have been removed by a concurrent caller. Survivors are renumbered densely.
func (s *ProblemSet) DeleteProblem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.load()
	if err != nil {
		return err
	}

	kept := make([]internal.ProblemRecord, 0, len(agg.Problems))
	removed := false
	for _, p := range agg.Problems {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		s.log.Info("delete of absent problem ignored", zap.String("id", id))
		return nil
	}

	for i := range kept {
		kept[i].Order = i
	}
	agg.Problems = kept
	return s.save(agg)
}

// ListProblems returns records sorted ascending by order. A missing order in
// malformed persisted data reads as zero rather than failing.
func (s *ProblemSet) ListProblems() ([]internal.ProblemRecord, error) {
	agg, err := s.load()
	if err != nil {
		return nil, err
	}
	problems := agg.Problems
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Order < problems[j].Order
	})
	return problems, nil
}

// Reorder replaces the problem sequence with exactly the records named by
// orderedIDs, renumbered by position. Unknown ids are dropped from the input;
// stored records omitted from orderedIDs are permanently dropped.
func (s *ProblemSet) Reorder(orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return internal.Failf(internal.KindInvalidInput, "ordered id list is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	agg, err := s.load()
	if err != nil {
		return err
	}

	byID := make(map[string]internal.ProblemRecord, len(agg.Problems))
	for _, p := range agg.Problems {
		byID[p.ID] = p
	}

	next := make([]internal.ProblemRecord, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		p.Order = len(next)
		next = append(next, p)
	}

	if len(next) != len(agg.Problems) || len(next) != len(orderedIDs) {
		s.log.Warn("reorder count mismatch",
			zap.Int("stored", len(agg.Problems)),
			zap.Int("requested", len(orderedIDs)),
			zap.Int("kept", len(next)))
	}

	agg.Problems = next
	return s.save(agg)
}

// ClearAll destroys the entire aggregate, info included.
func (s *ProblemSet) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Remove(AggregateKey)
}
