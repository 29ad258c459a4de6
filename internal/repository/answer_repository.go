package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// AnswerRepository handles answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Upsert writes one answer keyed by (submission_id, question_id). Duplicate
// autosaves from retries or multiple tabs converge onto the single row.
func (r *AnswerRepository) Upsert(ctx context.Context, a *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (submission_id, question_id, chosen_option, is_correct, marks_obtained)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (submission_id, question_id) DO UPDATE
		 SET chosen_option = EXCLUDED.chosen_option,
		     is_correct = EXCLUDED.is_correct,
		     marks_obtained = EXCLUDED.marks_obtained
		 RETURNING id`,
		a.SubmissionID, a.QuestionID, a.ChosenOption, a.IsCorrect, a.MarksObtained,
	).Scan(&a.ID)
}

// ListBySubmission retrieves a submission's answers in question order.
func (r *AnswerRepository) ListBySubmission(ctx context.Context, submissionID int) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.submission_id, a.question_id, a.chosen_option, a.is_correct, a.marks_obtained
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.submission_id = $1
		 ORDER BY q.order_num`, submissionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.SubmissionID, &a.QuestionID, &a.ChosenOption, &a.IsCorrect, &a.MarksObtained); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
