// Package grading holds the pure correctness/marks computation shared by the
// single-answer autosave path and the bulk submit path. Both must call Grade
// so the same inputs always yield the same result.
package grading

// Result is the outcome of grading one answer.
type Result struct {
	IsCorrect     bool
	MarksObtained float64
}

// Grade scores a chosen option against a question's correct option. A nil
// choice (unanswered) is never correct. Strict equality, full marks or zero —
// no partial credit, no negative marking.
func Grade(correctOption string, marks float64, chosen *string) Result {
	if chosen == nil || *chosen != correctOption {
		return Result{}
	}
	return Result{IsCorrect: true, MarksObtained: marks}
}
