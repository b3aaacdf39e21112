package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/punchamoorthee/backoffice/internal/workflow"
)

// StageStore runs the engine's column gates as SQL against one table.
type StageStore[T workflow.Record] struct {
	db *pgxpool.Pool
}

func NewStageStore[T workflow.Record](db *pgxpool.Pool) *StageStore[T] {
	return &StageStore[T]{db: db}
}

func (s *StageStore[T]) Pending(ctx context.Context, def workflow.Definition, stage workflow.Stage) ([]T, error) {
	rows, err := s.db.Query(ctx, pendingQuery(def, stage))
	return collect[T]("list pending "+stage.Name, rows, err)
}

func (s *StageStore[T]) History(ctx context.Context, def workflow.Definition, stage workflow.Stage) ([]T, error) {
	rows, err := s.db.Query(ctx, historyQuery(def, stage))
	return collect[T]("list history "+stage.Name, rows, err)
}

func (s *StageStore[T]) Complete(ctx context.Context, def workflow.Definition, stage workflow.Stage, id string, at time.Time, fields map[string]any) (T, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, len(names)+2)
	args = append(args, at)
	for _, name := range names {
		args = append(args, fields[name])
	}
	args = append(args, id)

	rows, err := s.db.Query(ctx, completeQuery(def, stage, names), args...)
	return collectOne[T]("complete "+stage.Name, rows, err)
}

func (s *StageStore[T]) CompleteMany(ctx context.Context, def workflow.Definition, stage workflow.Stage, ids []string, at time.Time) ([]T, error) {
	rows, err := s.db.Query(ctx, completeManyQuery(def, stage), at, ids)
	return collect[T]("complete many "+stage.Name, rows, err)
}

func keyParam(def workflow.Definition, n int, array bool) string {
	p := fmt.Sprintf("$%d", n)
	if def.KeyType == "" {
		return p
	}
	if array {
		return p + "::" + def.KeyType + "[]"
	}
	return p + "::" + def.KeyType
}

func pendingQuery(def workflow.Definition, stage workflow.Stage) string {
	order := stage.PendingOrder
	if order == "" {
		order = ident(def.CreatedColumn) + " DESC"
	}
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL AND %s IS NULL ORDER BY %s",
		columnList(def.Columns), ident(def.Table), ident(stage.Planned), ident(stage.Actual), order)
}

func historyQuery(def workflow.Definition, stage workflow.Stage) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL ORDER BY %s DESC",
		columnList(def.Columns), ident(def.Table), ident(stage.Planned), ident(stage.Actual), ident(stage.Actual))
}

// completeQuery binds $1 to the processing time, then one parameter per
// field in order, then the key.
func completeQuery(def workflow.Definition, stage workflow.Stage, fields []string) string {
	set := []string{ident(stage.Actual) + " = $1"}
	for i, f := range fields {
		set = append(set, fmt.Sprintf("%s = $%d", ident(f), i+2))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s RETURNING %s",
		ident(def.Table), strings.Join(set, ", "), ident(def.Key), keyParam(def, len(fields)+2, false), columnList(def.Columns))
}

func completeManyQuery(def workflow.Definition, stage workflow.Stage) string {
	return fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = ANY(%s) RETURNING %s",
		ident(def.Table), ident(stage.Actual), ident(def.Key), keyParam(def, 2, true), columnList(def.Columns))
}
