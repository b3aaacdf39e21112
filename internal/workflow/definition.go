package workflow

import (
	"fmt"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

// Stage is one column-gated step of a workflow.
type Stage struct {
	Name    string
	Planned string
	Actual  string
	// SideEffects lists the payload fields a transition may merge into the row.
	SideEffects []string
	// PendingOrder is the ORDER BY clause for the pending list. Empty means
	// newest first by the definition's created column.
	PendingOrder string
}

// Definition maps a record type onto a table and its ordered stages.
type Definition struct {
	Name          string
	Table         string
	Key           string
	KeyType       string
	CreatedColumn string
	Columns       []string
	Stages        []Stage
}

// Stage returns the stage at index or a validation error.
func (d Definition) Stage(index int) (Stage, error) {
	if index < 0 || index >= len(d.Stages) {
		return Stage{}, fmt.Errorf("%w: %s has no stage %d", domain.ErrValidation, d.Name, index)
	}
	return d.Stages[index], nil
}

// Index returns the position of the named stage, or -1.
func (d Definition) Index(name string) int {
	for i, s := range d.Stages {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (s Stage) allows(field string) bool {
	for _, f := range s.SideEffects {
		if f == field {
			return true
		}
	}
	return false
}
