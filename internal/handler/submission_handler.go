package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/middleware"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/response"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/service"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/validator"
)

// SubmissionHandler handles the student attempt lifecycle.
type SubmissionHandler struct {
	service *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// studentID resolves the acting student. Students act as themselves
// regardless of the payload; staff may act on the payload's student.
func studentID(c *gin.Context, requested int) int {
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Role == middleware.RoleStudent {
		return claims.UserID
	}
	return requested
}

// Start handles POST /api/v1/submissions/start.
func (h *SubmissionHandler) Start(c *gin.Context) {
	var req model.StartSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	req.StudentID = studentID(c, req.StudentID)

	sub, err := h.service.StartOrResume(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sub)
}

// SaveAnswer handles POST /api/v1/submissions/answer — the autosave path.
func (h *SubmissionHandler) SaveAnswer(c *gin.Context) {
	var req model.SaveAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !h.ownsSubmission(c, req.SubmissionID) {
		return
	}

	answer, err := h.service.SaveAnswer(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrSubmissionFinalized):
			response.Fail(c, http.StatusConflict, response.ErrSubmissionFinalized)
		case errors.Is(err, service.ErrQuestionNotInExam):
			response.Fail(c, http.StatusBadRequest, response.ErrQuestionNotInExam)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, answer)
}

// Submit handles POST /api/v1/submissions/submit — finalize and grade.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	// An empty answers map is a fully unanswered paper and grades to zero;
	// only a missing field is malformed.
	if req.Answers == nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"answers": "answers is a required field"})
		return
	}
	req.StudentID = studentID(c, req.StudentID)

	summary, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Get handles GET /api/v1/submissions/:id.
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.ownsSubmission(c, id) {
		return
	}

	sub, err := h.service.GetSubmission(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sub)
}

// Answers handles GET /api/v1/submissions/:id/answers.
func (h *SubmissionHandler) Answers(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if !h.ownsSubmission(c, id) {
		return
	}

	answers, err := h.service.Answers(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, answers)
}

// ResultsByExam handles GET /api/v1/exams/:id/results. Staff only (routed).
func (h *SubmissionHandler) ResultsByExam(c *gin.Context) {
	examID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	results, err := h.service.ResultsByExam(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// MySubmissions handles GET /api/v1/submissions.
func (h *SubmissionHandler) MySubmissions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subs, err := h.service.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, subs)
}

// ownsSubmission writes a Forbidden response and returns false when a student
// touches someone else's submission. Staff pass through.
func (h *SubmissionHandler) ownsSubmission(c *gin.Context, submissionID int) bool {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != middleware.RoleStudent {
		return true
	}

	sub, err := h.service.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return false
	}
	if sub.StudentID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrNotSubmissionOwner)
		return false
	}
	return true
}
