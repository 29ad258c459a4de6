package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/grading"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// SubmissionStore is the submission persistence surface.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByStudentAndExam(ctx context.Context, studentID, examID int) (*model.Submission, error)
	GetByID(ctx context.Context, id int) (*model.Submission, error)
	Finalize(ctx context.Context, s *model.Submission, answers []model.Answer) error
	ListByExam(ctx context.Context, examID int) ([]model.SubmissionResult, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Submission, error)
}

// AnswerStore is the answer persistence surface.
type AnswerStore interface {
	Upsert(ctx context.Context, a *model.Answer) error
	ListBySubmission(ctx context.Context, submissionID int) ([]model.Answer, error)
}

// GradedNotifier announces finalized submissions to live exam monitors.
// Implementations must not fail the submit path.
type GradedNotifier interface {
	SubmissionGraded(ctx context.Context, event model.SubmissionGradedEvent)
}

// SubmissionService owns the attempt lifecycle: start/resume, answer
// autosave, and the authoritative submit that grades the entire paper.
type SubmissionService struct {
	submissions SubmissionStore
	answers     AnswerStore
	exams       ExamStore
	questions   QuestionStore
	notifier    GradedNotifier
	now         func() time.Time
	log         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissions SubmissionStore,
	answers AnswerStore,
	exams ExamStore,
	questions QuestionStore,
	notifier GradedNotifier,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		answers:     answers,
		exams:       exams,
		questions:   questions,
		notifier:    notifier,
		now:         time.Now,
		log:         log.With().Str("component", "submission_service").Logger(),
	}
}

// StartOrResume opens an attempt for (student, exam), or returns the existing
// one. Two clients racing to start land on the same row: the losing insert
// returns no rows and we fall back to fetching the winner's.
func (s *SubmissionService) StartOrResume(ctx context.Context, req *model.StartSubmissionRequest) (*model.Submission, error) {
	if _, err := s.exams.GetByID(ctx, req.ExamID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	existing, err := s.submissions.GetByStudentAndExam(ctx, req.StudentID, req.ExamID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	sub := &model.Submission{StudentID: req.StudentID, ExamID: req.ExamID}
	err = s.submissions.Create(ctx, sub)
	if err == nil {
		s.log.Info().Int("submission_id", sub.ID).Int("exam_id", sub.ExamID).Int("student_id", sub.StudentID).Msg("Submission started")
		return sub, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Lost a concurrent start; the winner's row exists now.
	return s.submissions.GetByStudentAndExam(ctx, req.StudentID, req.ExamID)
}

// SaveAnswer grades and upserts one answer while the attempt is in progress.
// Finalized submissions reject edits; the stored score is settled.
func (s *SubmissionService) SaveAnswer(ctx context.Context, req *model.SaveAnswerRequest) (*model.Answer, error) {
	sub, err := s.submissions.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.Status.Final() {
		return nil, ErrSubmissionFinalized
	}

	q, err := s.questions.GetByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotInExam
		}
		return nil, err
	}
	if q.ExamID != sub.ExamID {
		return nil, ErrQuestionNotInExam
	}

	chosen := req.StudentAnswer
	res := grading.Grade(q.CorrectAnswer, q.Marks, &chosen)

	answer := &model.Answer{
		SubmissionID:  sub.ID,
		QuestionID:    q.ID,
		ChosenOption:  &chosen,
		IsCorrect:     res.IsCorrect,
		MarksObtained: res.MarksObtained,
	}
	if err := s.answers.Upsert(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// Submit finalizes an attempt and grades the whole paper in one pass. Every
// exam question is graded against the submitted answer map; missing entries
// count as unanswered. The payload is the complete source of truth for the
// final score, so retrying with the same payload rewrites identical rows and
// returns the same summary. Answer ids outside the exam are ignored.
func (s *SubmissionService) Submit(ctx context.Context, req *model.SubmitExamRequest) (*model.ScoreSummary, error) {
	questions, err := s.questions.ListByExam(ctx, req.ExamID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrExamNotFound
	}

	sub, err := s.StartOrResume(ctx, &model.StartSubmissionRequest{
		StudentID: req.StudentID,
		ExamID:    req.ExamID,
	})
	if err != nil {
		return nil, err
	}

	var totalScore, totalMarks float64
	answers := make([]model.Answer, len(questions))
	for i, q := range questions {
		totalMarks += q.Marks

		var chosen *string
		if opt, ok := req.Answers[q.ID]; ok {
			chosen = &opt
		}

		res := grading.Grade(q.CorrectAnswer, q.Marks, chosen)
		totalScore += res.MarksObtained
		answers[i] = model.Answer{
			SubmissionID:  sub.ID,
			QuestionID:    q.ID,
			ChosenOption:  chosen,
			IsCorrect:     res.IsCorrect,
			MarksObtained: res.MarksObtained,
		}
	}

	var percentage float64
	if totalMarks > 0 {
		percentage = totalScore / totalMarks * 100
	}

	submittedAt := s.now()
	timeTaken := req.TimeTakenMinutes
	sub.Status = model.SubmissionGraded
	sub.TotalScore = totalScore
	sub.Percentage = percentage
	sub.SubmittedAt = &submittedAt
	sub.TimeTakenMinutes = &timeTaken

	if err := s.submissions.Finalize(ctx, sub, answers); err != nil {
		return nil, err
	}

	summary := &model.ScoreSummary{
		SubmissionID: sub.ID,
		TotalScore:   totalScore,
		TotalMarks:   totalMarks,
		Percentage:   fmt.Sprintf("%.2f", percentage),
	}

	if s.notifier != nil {
		s.notifier.SubmissionGraded(ctx, model.SubmissionGradedEvent{
			ExamID:       sub.ExamID,
			SubmissionID: sub.ID,
			StudentID:    sub.StudentID,
			TotalScore:   totalScore,
			Percentage:   summary.Percentage,
			GradedAt:     submittedAt,
		})
	}

	s.log.Info().
		Int("submission_id", sub.ID).
		Int("exam_id", sub.ExamID).
		Float64("score", totalScore).
		Msg("Submission graded")

	return summary, nil
}

// GetSubmission returns one submission by id.
func (s *SubmissionService) GetSubmission(ctx context.Context, id int) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// Answers returns a submission's saved answers in question order.
func (s *SubmissionService) Answers(ctx context.Context, submissionID int) ([]model.Answer, error) {
	if _, err := s.GetSubmission(ctx, submissionID); err != nil {
		return nil, err
	}
	answers, err := s.answers.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []model.Answer{}
	}
	return answers, nil
}

// ResultsByExam returns every submission for an exam with student identity.
func (s *SubmissionService) ResultsByExam(ctx context.Context, examID int) ([]model.SubmissionResult, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	results, err := s.submissions.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.SubmissionResult{}
	}
	return results, nil
}

// ListByStudent returns a student's submissions, newest first.
func (s *SubmissionService) ListByStudent(ctx context.Context, studentID int) ([]model.Submission, error) {
	subs, err := s.submissions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []model.Submission{}
	}
	return subs, nil
}
