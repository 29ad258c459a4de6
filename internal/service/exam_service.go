package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// ExamStore is the exam persistence surface the services consume.
type ExamStore interface {
	CreateWithQuestions(ctx context.Context, exam *model.Exam, questions []model.Question) error
	GetByID(ctx context.Context, id int) (*model.Exam, error)
	List(ctx context.Context) ([]model.Exam, error)
	Delete(ctx context.Context, id int) error
}

// QuestionStore is the question read surface.
type QuestionStore interface {
	ListByExam(ctx context.Context, examID int) ([]model.Question, error)
	GetByID(ctx context.Context, id int) (*model.Question, error)
}

// PaperCache caches the student-taking exam projection. A nil, nil return
// from Get means a cache miss.
type PaperCache interface {
	Store(ctx context.Context, paper *model.ExamPaper) error
	Get(ctx context.Context, examID int) (*model.ExamPaper, error)
	Invalidate(ctx context.Context, examID int) error
}

// ExamService handles exam authoring: creation with the full question set,
// the two read projections, and cascading deletion.
type ExamService struct {
	exams     ExamStore
	questions QuestionStore
	cache     PaperCache
	log       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(exams ExamStore, questions QuestionStore, cache PaperCache, log zerolog.Logger) *ExamService {
	return &ExamService{
		exams:     exams,
		questions: questions,
		cache:     cache,
		log:       log.With().Str("component", "exam_service").Logger(),
	}
}

// Create validates and inserts an exam with its ordered question set in one
// transaction, then warms the student paper cache.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.ExamDetail, error) {
	if len(req.Questions) != req.TotalQuestions {
		return nil, ErrQuestionCountMismatch
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	questions, err := buildQuestions(req)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Name:           req.Name,
		ClassID:        req.ClassID,
		Date:           date,
		TotalQuestions: req.TotalQuestions,
		TotalMarks:     req.TotalMarks,
	}

	if err := s.exams.CreateWithQuestions(ctx, exam, questions); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Store(ctx, buildPaper(exam, questions)); err != nil {
			s.log.Warn().Err(err).Int("exam_id", exam.ID).Msg("Failed to warm paper cache")
		}
	}

	s.log.Info().Int("exam_id", exam.ID).Int("questions", len(questions)).Msg("Exam created")
	return &model.ExamDetail{Exam: *exam, Questions: questions}, nil
}

// buildQuestions assigns order numbers and marks. A question with omitted
// marks defaults to floor(totalMarks/totalQuestions); the last question
// absorbs the rounding remainder so attached marks always sum to the declared
// total. Explicit marks that do not sum to the total are rejected.
func buildQuestions(req *model.CreateExamRequest) ([]model.Question, error) {
	base := math.Floor(req.TotalMarks / float64(req.TotalQuestions))

	questions := make([]model.Question, len(req.Questions))
	var sum float64
	lastDefaulted := false

	for i, in := range req.Questions {
		marks := in.Marks
		if marks == 0 {
			marks = base
			lastDefaulted = i == len(req.Questions)-1
		}
		sum += marks
		questions[i] = model.Question{
			OrderNum:      i + 1,
			Text:          in.Text,
			OptionA:       in.OptionA,
			OptionB:       in.OptionB,
			OptionC:       in.OptionC,
			OptionD:       in.OptionD,
			CorrectAnswer: in.CorrectAnswer,
			Marks:         marks,
		}
	}

	diff := req.TotalMarks - sum
	if math.Abs(diff) > 1e-9 {
		if !lastDefaulted || diff < 0 {
			return nil, ErrMarksMismatch
		}
		questions[len(questions)-1].Marks += diff
	}

	return questions, nil
}

func buildPaper(exam *model.Exam, questions []model.Question) *model.ExamPaper {
	paper := &model.ExamPaper{
		ExamID:         exam.ID,
		Name:           exam.Name,
		Date:           exam.Date,
		TotalQuestions: exam.TotalQuestions,
		TotalMarks:     exam.TotalMarks,
		Questions:      make([]model.PaperQuestion, len(questions)),
	}
	for i, q := range questions {
		paper.Questions[i] = q.ForPaper()
	}
	return paper
}

// GetDetail returns the authoring projection: exam header plus the full
// question list, correct answers included. Admin-gated by the router.
func (s *ExamService) GetDetail(ctx context.Context, id int) (*model.ExamDetail, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	questions, err := s.questions.ListByExam(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ExamDetail{Exam: *exam, Questions: questions}, nil
}

// List returns all exam headers.
func (s *ExamService) List(ctx context.Context) ([]model.Exam, error) {
	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// GetPaper returns the student-taking projection, served from cache with a
// database fallback that self-heals the cache on a miss.
func (s *ExamService) GetPaper(ctx context.Context, examID int) (*model.ExamPaper, error) {
	if s.cache != nil {
		paper, err := s.cache.Get(ctx, examID)
		if err != nil {
			s.log.Warn().Err(err).Int("exam_id", examID).Msg("Paper cache read failed")
		} else if paper != nil {
			return paper, nil
		}
	}

	detail, err := s.GetDetail(ctx, examID)
	if err != nil {
		return nil, err
	}

	paper := buildPaper(&detail.Exam, detail.Questions)
	if s.cache != nil {
		if err := s.cache.Store(ctx, paper); err != nil {
			s.log.Warn().Err(err).Int("exam_id", examID).Msg("Paper cache store failed")
		}
	}
	return paper, nil
}

// Delete removes an exam and its questions (children first) and drops the
// cached paper.
func (s *ExamService) Delete(ctx context.Context, id int) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExamNotFound
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn().Err(err).Int("exam_id", id).Msg("Paper cache invalidate failed")
		}
	}

	s.log.Info().Int("exam_id", id).Msg("Exam deleted")
	return nil
}
