package model

// Answer is one student's response to one question within a submission.
// Keyed by (submission, question) with upsert semantics; is_correct and
// marks_obtained are derived at write time and never recomputed independently.
type Answer struct {
	ID            int     `json:"id"`
	SubmissionID  int     `json:"submission_id"`
	QuestionID    int     `json:"question_id"`
	ChosenOption  *string `json:"chosen_option"`
	IsCorrect     bool    `json:"is_correct"`
	MarksObtained float64 `json:"marks_obtained"`
}

// SaveAnswerRequest is the payload for the single-answer autosave path.
type SaveAnswerRequest struct {
	SubmissionID  int    `json:"submission_id" binding:"required,min=1"`
	QuestionID    int    `json:"question_id" binding:"required,min=1"`
	StudentAnswer string `json:"student_answer" binding:"required,oneof=A B C D"`
}
