package model

import (
	"time"
)

// Exam represents an MCQ exam entity.
type Exam struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	ClassID        int       `json:"class_id"`
	Date           time.Time `json:"date"`
	TotalQuestions int       `json:"total_questions"`
	TotalMarks     float64   `json:"total_marks"`
	CreatedAt      time.Time `json:"created_at"`
}

// QuestionInput is one question within a create-exam payload. Marks may be
// omitted; the service then derives a default from the exam's declared totals.
type QuestionInput struct {
	Text          string  `json:"question" binding:"required,min=1,max=2000"`
	OptionA       string  `json:"option_a" binding:"required,max=500"`
	OptionB       string  `json:"option_b" binding:"required,max=500"`
	OptionC       string  `json:"option_c" binding:"required,max=500"`
	OptionD       string  `json:"option_d" binding:"required,max=500"`
	CorrectAnswer string  `json:"correct_answer" binding:"required,oneof=A B C D"`
	Marks         float64 `json:"marks" binding:"omitempty,gt=0"`
}

// CreateExamRequest is the payload for creating an exam with its question set.
type CreateExamRequest struct {
	Name           string          `json:"name" binding:"required,min=3,max=255"`
	ClassID        int             `json:"class_id" binding:"required,min=1"`
	Date           string          `json:"date" binding:"required,datetime=2006-01-02"`
	TotalQuestions int             `json:"total_questions" binding:"required,min=1"`
	TotalMarks     float64         `json:"total_marks" binding:"required,gt=0"`
	Questions      []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// ExamDetail is the authoring projection: the exam header plus its full
// ordered question list, correct answers included. Admin-gated only.
type ExamDetail struct {
	Exam
	Questions []Question `json:"questions"`
}

// ExamPaper is the student-taking projection. Correct answers are withheld;
// this is the shape cached in Redis and served to students.
type ExamPaper struct {
	ExamID         int             `json:"exam_id"`
	Name           string          `json:"name"`
	Date           time.Time       `json:"date"`
	TotalQuestions int             `json:"total_questions"`
	TotalMarks     float64         `json:"total_marks"`
	Questions      []PaperQuestion `json:"questions"`
}

// PaperQuestion is a question as shown to a student mid-exam.
type PaperQuestion struct {
	ID       int     `json:"id"`
	OrderNum int     `json:"order_num"`
	Text     string  `json:"question"`
	OptionA  string  `json:"option_a"`
	OptionB  string  `json:"option_b"`
	OptionC  string  `json:"option_c"`
	OptionD  string  `json:"option_d"`
	Marks    float64 `json:"marks"`
}
