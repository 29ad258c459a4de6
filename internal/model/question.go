package model

// Question is a single MCQ question. Immutable after creation; order_num is
// 1-based and unique within the exam, defining display and grading order.
type Question struct {
	ID            int     `json:"id"`
	ExamID        int     `json:"exam_id"`
	OrderNum      int     `json:"order_num"`
	Text          string  `json:"question"`
	OptionA       string  `json:"option_a"`
	OptionB       string  `json:"option_b"`
	OptionC       string  `json:"option_c"`
	OptionD       string  `json:"option_d"`
	CorrectAnswer string  `json:"correct_answer"`
	Marks         float64 `json:"marks"`
}

// ForPaper strips the correct answer for the student-taking projection.
func (q Question) ForPaper() PaperQuestion {
	return PaperQuestion{
		ID:       q.ID,
		OrderNum: q.OrderNum,
		Text:     q.Text,
		OptionA:  q.OptionA,
		OptionB:  q.OptionB,
		OptionC:  q.OptionC,
		OptionD:  q.OptionD,
		Marks:    q.Marks,
	}
}
