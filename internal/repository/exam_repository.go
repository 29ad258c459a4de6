package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// CreateWithQuestions inserts an exam and its full question set in one
// transaction. Either everything lands or nothing does — no orphaned exams
// with zero questions. Question and exam IDs are filled in on success.
func (r *ExamRepository) CreateWithQuestions(ctx context.Context, exam *model.Exam, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (name, class_id, date, total_questions, total_marks)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		exam.Name, exam.ClassID, exam.Date, exam.TotalQuestions, exam.TotalMarks,
	).Scan(&exam.ID, &exam.CreatedAt)
	if err != nil {
		return err
	}

	for i := range questions {
		q := &questions[i]
		q.ExamID = exam.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, order_num, question_text, option_a, option_b, option_c, option_d, correct_answer, marks)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			q.ExamID, q.OrderNum, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.Marks,
		).Scan(&q.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an exam header by id.
func (r *ExamRepository) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, class_id, date, total_questions, total_marks, created_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.ClassID, &e.Date, &e.TotalQuestions, &e.TotalMarks, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves all exam headers, newest first.
func (r *ExamRepository) List(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, class_id, date, total_questions, total_marks, created_at
		 FROM exams ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Name, &e.ClassID, &e.Date, &e.TotalQuestions, &e.TotalMarks, &e.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// Delete removes an exam and everything hanging off it, children first so
// foreign keys never dangle: answers, submissions, questions, then the exam
// row itself. Returns pgx.ErrNoRows if the exam does not exist.
func (r *ExamRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM answers WHERE submission_id IN (SELECT id FROM submissions WHERE exam_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM submissions WHERE exam_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}
