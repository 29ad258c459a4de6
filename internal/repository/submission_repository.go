package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, student_id, exam_id, status, total_score, percentage, started_at, submitted_at, time_taken_minutes`

func scanSubmission(row pgxRow, s *model.Submission) error {
	return row.Scan(&s.ID, &s.StudentID, &s.ExamID, &s.Status, &s.TotalScore, &s.Percentage, &s.StartedAt, &s.SubmittedAt, &s.TimeTakenMinutes)
}

// pgxRow is the single-row scan surface shared by QueryRow results and Rows.
type pgxRow interface {
	Scan(dest ...any) error
}

// Create inserts a new in-progress submission. The (student_id, exam_id)
// unique constraint makes concurrent creates converge: the loser's insert
// hits ON CONFLICT DO NOTHING and this returns pgx.ErrNoRows, after which the
// caller refetches the winner's row.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	s.Status = model.SubmissionInProgress
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (student_id, exam_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, exam_id) DO NOTHING
		 RETURNING id, started_at`,
		s.StudentID, s.ExamID, s.Status,
	).Scan(&s.ID, &s.StartedAt)
}

// GetByStudentAndExam retrieves the submission for a (student, exam) pair.
func (r *SubmissionRepository) GetByStudentAndExam(ctx context.Context, studentID, examID int) (*model.Submission, error) {
	s := &model.Submission{}
	err := scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE student_id = $1 AND exam_id = $2`, studentID, examID), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a submission by id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int) (*model.Submission, error) {
	s := &model.Submission{}
	err := scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Finalize upserts the full answer set and the submission's finalize fields in
// one transaction. Re-running with the same inputs overwrites every row with
// the same values, which is what makes retried submits safe.
func (r *SubmissionRepository) Finalize(ctx context.Context, s *model.Submission, answers []model.Answer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range answers {
		a := &answers[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO answers (submission_id, question_id, chosen_option, is_correct, marks_obtained)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (submission_id, question_id) DO UPDATE
			 SET chosen_option = EXCLUDED.chosen_option,
			     is_correct = EXCLUDED.is_correct,
			     marks_obtained = EXCLUDED.marks_obtained
			 RETURNING id`,
			a.SubmissionID, a.QuestionID, a.ChosenOption, a.IsCorrect, a.MarksObtained,
		).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE submissions
		 SET status = $1, total_score = $2, percentage = $3, submitted_at = $4, time_taken_minutes = $5
		 WHERE id = $6`,
		s.Status, s.TotalScore, s.Percentage, s.SubmittedAt, s.TimeTakenMinutes, s.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByExam retrieves all submissions for an exam joined with student
// identity, ordered by section then name.
func (r *SubmissionRepository) ListByExam(ctx context.Context, examID int) ([]model.SubmissionResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.student_id, s.exam_id, s.status, s.total_score, s.percentage,
		        s.started_at, s.submitted_at, s.time_taken_minutes,
		        st.name, st.section
		 FROM submissions s
		 JOIN students st ON st.id = s.student_id
		 WHERE s.exam_id = $1
		 ORDER BY st.section, st.name`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.SubmissionResult
	for rows.Next() {
		var res model.SubmissionResult
		if err := rows.Scan(&res.ID, &res.StudentID, &res.ExamID, &res.Status, &res.TotalScore, &res.Percentage,
			&res.StartedAt, &res.SubmittedAt, &res.TimeTakenMinutes, &res.StudentName, &res.Section); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListByStudent retrieves all submissions for a student, newest first.
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE student_id = $1
		 ORDER BY started_at DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := scanSubmission(rows, &s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
