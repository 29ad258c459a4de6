package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain Errors
var (
	ErrExamNotFound          = errors.New("exam not found")
	ErrSubmissionNotFound    = errors.New("submission not found")
	ErrQuestionNotInExam     = errors.New("question does not belong to this exam")
	ErrSubmissionFinalized   = errors.New("submission already finalized")
	ErrMarksMismatch         = errors.New("question marks do not sum to the declared total marks")
	ErrQuestionCountMismatch = errors.New("question count does not match the declared total questions")
	ErrStructureNotFound     = errors.New("fee structure not found")
	ErrDuplicateClass        = errors.New("fee structure already exists for this class")
	ErrSectionFeeNotFound    = errors.New("section extra fee not found")
	ErrDuplicateSectionFee   = errors.New("service already exists for this section")
	ErrInconsistentQuarters  = errors.New("quarterly amounts do not reconcile with the total fee")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
