package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

// In-memory store fakes. They mirror the repositories' contract, including
// pgx.ErrNoRows for absent rows and unique-key convergence on inserts.

// errUnique mimics the driver's unique-constraint violation.
var errUnique = &pgconn.PgError{Code: "23505"}

type fakeExamStore struct {
	mu      sync.Mutex
	nextID  int
	exams   map[int]model.Exam
	builder *fakeQuestionStore
}

func newFakeExamStore(questions *fakeQuestionStore) *fakeExamStore {
	return &fakeExamStore{nextID: 1, exams: map[int]model.Exam{}, builder: questions}
}

func (s *fakeExamStore) CreateWithQuestions(ctx context.Context, exam *model.Exam, questions []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exam.ID = s.nextID
	s.nextID++
	s.exams[exam.ID] = *exam
	for i := range questions {
		questions[i].ExamID = exam.ID
		s.builder.add(&questions[i])
	}
	return nil
}

func (s *fakeExamStore) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exams[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &e, nil
}

func (s *fakeExamStore) List(ctx context.Context) ([]model.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Exam
	for _, e := range s.exams {
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeExamStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.exams, id)
	return nil
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	nextID    int
	questions map[int]model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{nextID: 1, questions: map[int]model.Question{}}
}

func (s *fakeQuestionStore) add(q *model.Question) {
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = *q
}

func (s *fakeQuestionStore) ListByExam(ctx context.Context, examID int) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for id := 1; id < s.nextID; id++ {
		if q, ok := s.questions[id]; ok && q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) GetByID(ctx context.Context, id int) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &q, nil
}

type submissionKey struct{ studentID, examID int }

type fakeSubmissionStore struct {
	mu               sync.Mutex
	nextID           int
	byID             map[int]model.Submission
	byKey            map[submissionKey]int
	finalizedAnswers []model.Answer
	// missNextGet makes the next GetByStudentAndExam report no row even when
	// one exists, simulating a row inserted by a concurrent start right after
	// the existence check.
	missNextGet bool
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{nextID: 1, byID: map[int]model.Submission{}, byKey: map[submissionKey]int{}}
}

func (s *fakeSubmissionStore) Create(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := submissionKey{sub.StudentID, sub.ExamID}
	if _, exists := s.byKey[k]; exists {
		return pgx.ErrNoRows
	}
	sub.ID = s.nextID
	sub.Status = model.SubmissionInProgress
	s.nextID++
	s.byID[sub.ID] = *sub
	s.byKey[k] = sub.ID
	return nil
}

func (s *fakeSubmissionStore) GetByStudentAndExam(ctx context.Context, studentID, examID int) (*model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missNextGet {
		s.missNextGet = false
		return nil, pgx.ErrNoRows
	}
	id, ok := s.byKey[submissionKey{studentID, examID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	sub := s.byID[id]
	return &sub, nil
}

func (s *fakeSubmissionStore) GetByID(ctx context.Context, id int) (*model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sub, nil
}

func (s *fakeSubmissionStore) Finalize(ctx context.Context, sub *model.Submission, answers []model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sub.ID] = *sub
	s.finalizedAnswers = answers
	return nil
}

func (s *fakeSubmissionStore) ListByExam(ctx context.Context, examID int) ([]model.SubmissionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SubmissionResult
	for id := 1; id < s.nextID; id++ {
		if sub, ok := s.byID[id]; ok && sub.ExamID == examID {
			out = append(out, model.SubmissionResult{Submission: sub})
		}
	}
	return out, nil
}

func (s *fakeSubmissionStore) ListByStudent(ctx context.Context, studentID int) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for id := 1; id < s.nextID; id++ {
		if sub, ok := s.byID[id]; ok && sub.StudentID == studentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

type answerKey struct{ submissionID, questionID int }

type fakeAnswerStore struct {
	mu      sync.Mutex
	nextID  int
	answers map[answerKey]model.Answer
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{nextID: 1, answers: map[answerKey]model.Answer{}}
}

func (s *fakeAnswerStore) Upsert(ctx context.Context, a *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := answerKey{a.SubmissionID, a.QuestionID}
	if existing, ok := s.answers[k]; ok {
		a.ID = existing.ID
	} else {
		a.ID = s.nextID
		s.nextID++
	}
	s.answers[k] = *a
	return nil
}

func (s *fakeAnswerStore) ListBySubmission(ctx context.Context, submissionID int) ([]model.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Answer
	for _, a := range s.answers {
		if a.SubmissionID == submissionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePaperCache struct {
	mu     sync.Mutex
	papers map[int]*model.ExamPaper
	stores int
	hits   int
}

func newFakePaperCache() *fakePaperCache {
	return &fakePaperCache{papers: map[int]*model.ExamPaper{}}
}

func (c *fakePaperCache) Store(ctx context.Context, paper *model.ExamPaper) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.papers[paper.ExamID] = paper
	c.stores++
	return nil
}

func (c *fakePaperCache) Get(ctx context.Context, examID int) (*model.ExamPaper, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.papers[examID]
	if !ok {
		return nil, nil
	}
	c.hits++
	return p, nil
}

func (c *fakePaperCache) Invalidate(ctx context.Context, examID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.papers, examID)
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []model.SubmissionGradedEvent
}

func (n *fakeNotifier) SubmissionGraded(ctx context.Context, event model.SubmissionGradedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeFeeStructureStore struct {
	mu      sync.Mutex
	nextID  int
	byClass map[string]model.FeeStructure
}

func newFakeFeeStructureStore() *fakeFeeStructureStore {
	return &fakeFeeStructureStore{nextID: 1, byClass: map[string]model.FeeStructure{}}
}

func (s *fakeFeeStructureStore) Create(ctx context.Context, f *model.FeeStructure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byClass[f.ClassName]; exists {
		return errUnique
	}
	f.ID = s.nextID
	s.nextID++
	s.byClass[f.ClassName] = *f
	return nil
}

func (s *fakeFeeStructureStore) Update(ctx context.Context, f *model.FeeStructure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byClass[f.ClassName]
	if !ok {
		return pgx.ErrNoRows
	}
	f.ID = existing.ID
	s.byClass[f.ClassName] = *f
	return nil
}

func (s *fakeFeeStructureStore) GetByClassName(ctx context.Context, className string) (*model.FeeStructure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.byClass[className]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &f, nil
}

func (s *fakeFeeStructureStore) List(ctx context.Context) ([]model.FeeStructure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.FeeStructure
	for _, f := range s.byClass {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFeeStructureStore) Delete(ctx context.Context, className string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byClass[className]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byClass, className)
	return nil
}

type fakeSectionFeeStore struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]model.SectionExtraFee
}

func newFakeSectionFeeStore() *fakeSectionFeeStore {
	return &fakeSectionFeeStore{nextID: 1, byID: map[int]model.SectionExtraFee{}}
}

func (s *fakeSectionFeeStore) Create(ctx context.Context, fee *model.SectionExtraFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.ClassName == fee.ClassName && existing.Section == fee.Section && existing.ServiceName == fee.ServiceName {
			return errUnique
		}
	}
	fee.ID = s.nextID
	s.nextID++
	s.byID[fee.ID] = *fee
	return nil
}

func (s *fakeSectionFeeStore) Update(ctx context.Context, fee *model.SectionExtraFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[fee.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.byID[fee.ID] = *fee
	return nil
}

func (s *fakeSectionFeeStore) GetByID(ctx context.Context, id int) (*model.SectionExtraFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fee, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &fee, nil
}

func (s *fakeSectionFeeStore) ListActiveByClass(ctx context.Context, className string) ([]model.SectionExtraFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SectionExtraFee
	for id := 1; id < s.nextID; id++ {
		if fee, ok := s.byID[id]; ok && fee.ClassName == className && fee.IsActive {
			out = append(out, fee)
		}
	}
	return out, nil
}

func (s *fakeSectionFeeStore) List(ctx context.Context, className, section string) ([]model.SectionExtraFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SectionExtraFee
	for id := 1; id < s.nextID; id++ {
		fee, ok := s.byID[id]
		if !ok {
			continue
		}
		if className != "" && fee.ClassName != className {
			continue
		}
		if section != "" && fee.Section != section {
			continue
		}
		out = append(out, fee)
	}
	return out, nil
}

func (s *fakeSectionFeeStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	return nil
}

type fakeLedgerStore struct {
	ledgers []fees.StudentLedger
}

func (s *fakeLedgerStore) Ledgers(ctx context.Context, className, section string) ([]fees.StudentLedger, error) {
	var out []fees.StudentLedger
	for _, l := range s.ledgers {
		if className != "" && l.ClassName != className {
			continue
		}
		if section != "" && l.Section != section {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
