package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

var stageTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backoffice_stage_transitions_total",
	Help: "Stage transitions attempted, labeled by workflow, stage and outcome",
}, []string{"workflow", "stage", "outcome"})

// Record is a row that participates in a column-gated workflow.
type Record interface {
	RecordID() string
	StageStates() []domain.StageState
}

// Store is the row store behind an Engine. Complete returns an error wrapping
// domain.ErrNotFound when no row has the given id.
type Store[T Record] interface {
	Pending(ctx context.Context, def Definition, stage Stage) ([]T, error)
	History(ctx context.Context, def Definition, stage Stage) ([]T, error)
	Complete(ctx context.Context, def Definition, stage Stage, id string, at time.Time, fields map[string]any) (T, error)
	CompleteMany(ctx context.Context, def Definition, stage Stage, ids []string, at time.Time) ([]T, error)
}

// Outcome is the per-id result of a bulk transition.
type Outcome string

const (
	OutcomeUpdated  Outcome = "updated"
	OutcomeNotFound Outcome = "not_found"
)

// ItemResult reports what happened to one id of a bulk transition.
type ItemResult struct {
	ID      string  `json:"id"`
	Outcome Outcome `json:"outcome"`
}

// BulkResult carries the updated records plus the ids that matched nothing.
type BulkResult[T Record] struct {
	Updated []T
	Missing []string
	Results []ItemResult
}

// Engine applies stage transitions for one Definition.
type Engine[T Record] struct {
	def    Definition
	store  Store[T]
	now    func() time.Time
	logger *zap.Logger
}

func NewEngine[T Record](def Definition, store Store[T], logger *zap.Logger) *Engine[T] {
	return &Engine[T]{
		def:    def,
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(zap.String("workflow", def.Name)),
	}
}

// WithClock replaces the processing-time source.
func (e *Engine[T]) WithClock(now func() time.Time) *Engine[T] {
	e.now = now
	return e
}

func (e *Engine[T]) Definition() Definition { return e.def }

// Pending lists records planned but not completed at stage.
func (e *Engine[T]) Pending(ctx context.Context, stage int) ([]T, error) {
	st, err := e.def.Stage(stage)
	if err != nil {
		return nil, err
	}
	return e.store.Pending(ctx, e.def, st)
}

// History lists records completed at stage, most recently completed first.
func (e *Engine[T]) History(ctx context.Context, stage int) ([]T, error) {
	st, err := e.def.Stage(stage)
	if err != nil {
		return nil, err
	}
	return e.store.History(ctx, e.def, st)
}

// Transition stamps the stage's actual column with the processing time and
// merges the payload fields the stage declares as side effects. Other
// payload fields are dropped.
func (e *Engine[T]) Transition(ctx context.Context, id string, stage int, payload map[string]any) (T, error) {
	var zero T
	st, err := e.def.Stage(stage)
	if err != nil {
		return zero, err
	}
	if id == "" {
		return zero, fmt.Errorf("%w: record id is required", domain.ErrValidation)
	}

	fields := make(map[string]any, len(st.SideEffects))
	for k, v := range payload {
		if st.allows(k) {
			fields[k] = v
		}
	}

	rec, err := e.store.Complete(ctx, e.def, st, id, e.now(), fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			stageTransitions.WithLabelValues(e.def.Name, st.Name, string(OutcomeNotFound)).Inc()
			return zero, fmt.Errorf("%s %s: %w", e.def.Name, id, domain.ErrNotFound)
		}
		stageTransitions.WithLabelValues(e.def.Name, st.Name, "error").Inc()
		return zero, err
	}

	stageTransitions.WithLabelValues(e.def.Name, st.Name, string(OutcomeUpdated)).Inc()
	e.logger.Info("stage completed", zap.String("stage", st.Name), zap.String("id", id))
	return rec, nil
}

// TransitionBulk stamps the stage for every id in one store call. Ids that
// match no record do not fail the call; they are reported in Missing.
func (e *Engine[T]) TransitionBulk(ctx context.Context, ids []string, stage int) (*BulkResult[T], error) {
	st, err := e.def.Stage(stage)
	if err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: ids array is required", domain.ErrValidation)
	}

	updated, err := e.store.CompleteMany(ctx, e.def, st, unique, e.now())
	if err != nil {
		stageTransitions.WithLabelValues(e.def.Name, st.Name, "error").Inc()
		return nil, err
	}

	found := make(map[string]struct{}, len(updated))
	for _, rec := range updated {
		found[rec.RecordID()] = struct{}{}
	}

	res := &BulkResult[T]{Updated: updated, Missing: []string{}, Results: make([]ItemResult, 0, len(unique))}
	for _, id := range unique {
		if _, ok := found[id]; ok {
			res.Results = append(res.Results, ItemResult{ID: id, Outcome: OutcomeUpdated})
			continue
		}
		res.Missing = append(res.Missing, id)
		res.Results = append(res.Results, ItemResult{ID: id, Outcome: OutcomeNotFound})
	}

	stageTransitions.WithLabelValues(e.def.Name, st.Name, string(OutcomeUpdated)).Add(float64(len(updated)))
	stageTransitions.WithLabelValues(e.def.Name, st.Name, string(OutcomeNotFound)).Add(float64(len(res.Missing)))
	if len(res.Missing) > 0 {
		e.logger.Warn("bulk transition skipped unknown ids",
			zap.String("stage", st.Name), zap.Strings("missing", res.Missing))
	}
	return res, nil
}
