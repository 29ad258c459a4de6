package model

import (
	"time"
)

// SubmissionStatus enumerates a submission's lifecycle states. Transitions are
// forward-only. Scoring runs synchronously inside submit, so "graded" is
// reached atomically with finalization; "submitted" remains a legal stored
// value for rows written before scores were computed in-line.
type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionGraded     SubmissionStatus = "graded"
)

// Final reports whether the submission has been finalized and may no longer
// accept answer edits.
func (s SubmissionStatus) Final() bool {
	return s == SubmissionSubmitted || s == SubmissionGraded
}

// Submission is one student's attempt record for one exam. At most one row
// exists per (student, exam) pair.
type Submission struct {
	ID               int              `json:"id"`
	StudentID        int              `json:"student_id"`
	ExamID           int              `json:"exam_id"`
	Status           SubmissionStatus `json:"status"`
	TotalScore       float64          `json:"total_score"`
	Percentage       float64          `json:"percentage"`
	StartedAt        time.Time        `json:"started_at"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	TimeTakenMinutes *int             `json:"time_taken_minutes,omitempty"`
}

// StartSubmissionRequest is the payload for opening or resuming an attempt.
type StartSubmissionRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
	ExamID    int `json:"exam_id" binding:"required,min=1"`
}

// SubmitExamRequest is the payload for the authoritative finalize operation.
// Answers maps question id to the chosen option; questions absent from the map
// are graded as unanswered. An empty map is a legal fully-unanswered paper, so
// the field carries no required binding; the handler rejects only a nil map.
type SubmitExamRequest struct {
	StudentID        int            `json:"student_id" binding:"required,min=1"`
	ExamID           int            `json:"exam_id" binding:"required,min=1"`
	Answers          map[int]string `json:"answers"`
	TimeTakenMinutes int            `json:"time_taken_minutes" binding:"omitempty,min=0"`
}

// ScoreSummary is the result of finalizing a submission. Percentage is
// formatted to two decimals.
type ScoreSummary struct {
	SubmissionID int     `json:"submission_id"`
	TotalScore   float64 `json:"total_score"`
	TotalMarks   float64 `json:"total_marks"`
	Percentage   string  `json:"percentage"`
}

// SubmissionResult combines a submission with student identity for the
// per-exam results listing.
type SubmissionResult struct {
	Submission
	StudentName string `json:"student_name"`
	Section     string `json:"section"`
}

// SubmissionGradedEvent is published on the exam's monitor channel when a
// submission is finalized.
type SubmissionGradedEvent struct {
	ExamID       int       `json:"exam_id"`
	SubmissionID int       `json:"submission_id"`
	StudentID    int       `json:"student_id"`
	TotalScore   float64   `json:"total_score"`
	Percentage   string    `json:"percentage"`
	GradedAt     time.Time `json:"graded_at"`
}
