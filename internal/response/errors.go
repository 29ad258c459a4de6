package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly   ErrCode = "STUDENT_ACCESS_ONLY"
	ErrStaffAccessOnly     ErrCode = "STAFF_ACCESS_ONLY"
	ErrPrincipalAccessOnly ErrCode = "PRINCIPAL_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrMarksMismatch       ErrCode = "MARKS_MISMATCH"
	ErrSubmissionFinalized ErrCode = "SUBMISSION_FINALIZED"
	ErrQuestionNotInExam   ErrCode = "QUESTION_NOT_IN_EXAM"
	ErrNotSubmissionOwner  ErrCode = "NOT_SUBMISSION_OWNER"

	// ─── Fee-specific ──────────────────────────────────────────────────
	ErrInvalidAmount        ErrCode = "INVALID_AMOUNT"
	ErrInvalidDistribution  ErrCode = "INVALID_DISTRIBUTION"
	ErrInconsistentQuarters ErrCode = "INCONSISTENT_QUARTERS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrStaffAccessOnly:
		return "This resource is restricted to staff members."
	case ErrPrincipalAccessOnly:
		return "This action is restricted to the principal."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrMarksMismatch:
		return "Question marks do not sum to the declared total marks."
	case ErrSubmissionFinalized:
		return "This submission has already been finalized; answers can no longer be changed."
	case ErrQuestionNotInExam:
		return "The question does not belong to this exam."
	case ErrNotSubmissionOwner:
		return "This submission belongs to a different student."

	// ─── Fee-specific ──────────────────────────────────────────────────
	case ErrInvalidAmount:
		return "The total amount must be greater than zero."
	case ErrInvalidDistribution:
		return "Custom distribution percentages must sum to 100."
	case ErrInconsistentQuarters:
		return "Quarterly amounts do not reconcile with the total fee."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
