package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

type testRecord struct {
	ID     string
	Seq    int
	Stages []domain.StageState
	Fields map[string]any
}

func (r testRecord) RecordID() string                 { return r.ID }
func (r testRecord) StageStates() []domain.StageState { return r.Stages }

// memStore evaluates the column gates in memory.
type memStore struct {
	mu      sync.Mutex
	rows    map[string]*testRecord
	writes  int
	failErr error
}

func newMemStore(records ...testRecord) *memStore {
	s := &memStore{rows: make(map[string]*testRecord)}
	for i := range records {
		r := records[i]
		if r.Fields == nil {
			r.Fields = map[string]any{}
		}
		s.rows[r.ID] = &r
	}
	return s
}

func (s *memStore) stageIndex(def Definition, stage Stage) int {
	return def.Index(stage.Name)
}

func (s *memStore) filter(def Definition, stage Stage, want domain.StageStatus) []testRecord {
	idx := s.stageIndex(def, stage)
	var out []testRecord
	for _, r := range s.rows {
		if r.Stages[idx].Status() == want {
			out = append(out, clone(*r))
		}
	}
	return out
}

func (s *memStore) Pending(ctx context.Context, def Definition, stage Stage) ([]testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	out := s.filter(def, stage, domain.StagePending)
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

func (s *memStore) History(ctx context.Context, def Definition, stage Stage) ([]testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	idx := s.stageIndex(def, stage)
	out := s.filter(def, stage, domain.StageCompleted)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stages[idx].Actual.After(*out[j].Stages[idx].Actual)
	})
	return out, nil
}

func (s *memStore) Complete(ctx context.Context, def Definition, stage Stage, id string, at time.Time, fields map[string]any) (testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return testRecord{}, s.failErr
	}
	r, ok := s.rows[id]
	if !ok {
		return testRecord{}, fmt.Errorf("complete %s: %w", id, domain.ErrNotFound)
	}
	s.writes++
	s.stamp(r, s.stageIndex(def, stage), at)
	for k, v := range fields {
		r.Fields[k] = v
	}
	return clone(*r), nil
}

func (s *memStore) CompleteMany(ctx context.Context, def Definition, stage Stage, ids []string, at time.Time) ([]testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	idx := s.stageIndex(def, stage)
	var out []testRecord
	for _, id := range ids {
		r, ok := s.rows[id]
		if !ok {
			continue
		}
		s.writes++
		s.stamp(r, idx, at)
		out = append(out, clone(*r))
	}
	return out, nil
}

func (s *memStore) stamp(r *testRecord, idx int, at time.Time) {
	t := at
	r.Stages[idx].Actual = &t
}

func clone(r testRecord) testRecord {
	stages := make([]domain.StageState, len(r.Stages))
	copy(stages, r.Stages)
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	r.Stages = stages
	r.Fields = fields
	return r
}
