package domain

import "time"

// StageStatus is the derived position of a record at one workflow stage.
type StageStatus string

const (
	StageNotGated  StageStatus = "not_gated"
	StagePending   StageStatus = "pending"
	StageCompleted StageStatus = "completed"
)

// StageState is one stage's progress marker. Planned marks the stage as
// applicable; Actual marks it as completed.
type StageState struct {
	Planned *time.Time `json:"planned,omitempty"`
	Actual  *time.Time `json:"actual,omitempty"`
}

// Status reports where the record sits at this stage. A record whose stage
// was never planned is not gated, regardless of Actual.
func (s StageState) Status() StageStatus {
	switch {
	case s.Planned == nil:
		return StageNotGated
	case s.Actual == nil:
		return StagePending
	default:
		return StageCompleted
	}
}
