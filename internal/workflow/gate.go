package workflow

// CorrelatedGate derives stage status from the existence of a correlated
// row in a second set rather than from a column pair on the subject row.
// A subject is pending while no counting correlated row shares its key and
// history once one does.
type CorrelatedGate[S, C any, K comparable] struct {
	SubjectKey    func(S) K
	CorrelatedKey func(C) K
	// Counts limits which correlated rows complete the stage. Nil counts all.
	Counts func(C) bool
	// Eligible limits which subjects enter the stage at all. Nil admits all.
	Eligible func(S) bool
}

// Split partitions the eligible subjects, preserving their input order.
func (g CorrelatedGate[S, C, K]) Split(subjects []S, correlated []C) (pending, history []S) {
	done := make(map[K]struct{}, len(correlated))
	for _, c := range correlated {
		if g.Counts != nil && !g.Counts(c) {
			continue
		}
		done[g.CorrelatedKey(c)] = struct{}{}
	}

	pending = make([]S, 0, len(subjects))
	history = make([]S, 0)
	for _, s := range subjects {
		if g.Eligible != nil && !g.Eligible(s) {
			continue
		}
		if _, ok := done[g.SubjectKey(s)]; ok {
			history = append(history, s)
		} else {
			pending = append(pending, s)
		}
	}
	return pending, history
}

// Pending returns only the pending side of Split.
func (g CorrelatedGate[S, C, K]) Pending(subjects []S, correlated []C) []S {
	pending, _ := g.Split(subjects, correlated)
	return pending
}
