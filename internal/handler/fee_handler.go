package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/middleware"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/response"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/service"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/validator"
)

// FeeHandler handles fee structures, section extra fees, the quarter split
// utility, and the class-wise payment aggregate.
type FeeHandler struct {
	service *service.FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(service *service.FeeService) *FeeHandler {
	return &FeeHandler{service: service}
}

// CreateStructure handles POST /api/v1/fees/structures.
func (h *FeeHandler) CreateStructure(c *gin.Context) {
	var req model.FeeStructureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	structure, err := h.service.CreateStructure(c.Request.Context(), &req)
	if err != nil {
		h.failStructure(c, err)
		return
	}
	response.Success(c, http.StatusCreated, structure)
}

// UpdateStructure handles PUT /api/v1/fees/structures/:class.
func (h *FeeHandler) UpdateStructure(c *gin.Context) {
	var req model.FeeStructureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	req.ClassName = c.Param("class")

	structure, err := h.service.UpdateStructure(c.Request.Context(), &req)
	if err != nil {
		h.failStructure(c, err)
		return
	}
	response.Success(c, http.StatusOK, structure)
}

func (h *FeeHandler) failStructure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateClass):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrStructureNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInconsistentQuarters):
		response.Fail(c, http.StatusBadRequest, response.ErrInconsistentQuarters)
	case errors.Is(err, fees.ErrInvalidAmount):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAmount)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// GetStructure handles GET /api/v1/fees/structures/:class.
func (h *FeeHandler) GetStructure(c *gin.Context) {
	structure, err := h.service.GetStructure(c.Request.Context(), c.Param("class"))
	if err != nil {
		if errors.Is(err, service.ErrStructureNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, structure)
}

// ListStructures handles GET /api/v1/fees/structures.
func (h *FeeHandler) ListStructures(c *gin.Context) {
	structures, err := h.service.ListStructures(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, structures)
}

// DeleteStructure handles DELETE /api/v1/fees/structures/:class.
func (h *FeeHandler) DeleteStructure(c *gin.Context) {
	if err := h.service.DeleteStructure(c.Request.Context(), c.Param("class")); err != nil {
		if errors.Is(err, service.ErrStructureNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// CalculateQuarters handles POST /api/v1/fees/calculate-quarters. Pure
// computation, nothing persisted.
func (h *FeeHandler) CalculateQuarters(c *gin.Context) {
	var req model.CalculateQuartersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.service.CalculateQuarters(&req)
	if err != nil {
		switch {
		case errors.Is(err, fees.ErrInvalidAmount):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidAmount)
		case errors.Is(err, fees.ErrInvalidDistribution):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidDistribution)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CreateSectionFee handles POST /api/v1/fees/section-fees. Principal only
// (routed).
func (h *FeeHandler) CreateSectionFee(c *gin.Context) {
	var req model.SectionExtraFeeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	createdBy := 0
	if claims := middleware.GetClaims(c); claims != nil {
		createdBy = claims.UserID
	}

	fee, err := h.service.CreateSectionFee(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.failSectionFee(c, err)
		return
	}
	response.Success(c, http.StatusCreated, fee)
}

// UpdateSectionFee handles PUT /api/v1/fees/section-fees/:id.
func (h *FeeHandler) UpdateSectionFee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SectionExtraFeeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fee, err := h.service.UpdateSectionFee(c.Request.Context(), id, &req)
	if err != nil {
		h.failSectionFee(c, err)
		return
	}
	response.Success(c, http.StatusOK, fee)
}

func (h *FeeHandler) failSectionFee(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionFeeNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrDuplicateSectionFee):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrInconsistentQuarters):
		response.Fail(c, http.StatusBadRequest, response.ErrInconsistentQuarters)
	case errors.Is(err, fees.ErrInvalidAmount):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAmount)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ListSectionFees handles GET /api/v1/fees/section-fees?class=&section=.
func (h *FeeHandler) ListSectionFees(c *gin.Context) {
	out, err := h.service.ListSectionFees(c.Request.Context(), c.Query("class"), c.Query("section"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// DeleteSectionFee handles DELETE /api/v1/fees/section-fees/:id.
func (h *FeeHandler) DeleteSectionFee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.service.DeleteSectionFee(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSectionFeeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ClassWisePayments handles GET /api/v1/fees/class-wise-payments.
// Query params: class, section, quarter (1-4), status (paid|pending|overdue).
func (h *FeeHandler) ClassWisePayments(c *gin.Context) {
	filter := model.ClassWisePaymentsFilter{
		ClassName: c.Query("class"),
		Section:   c.Query("section"),
		Status:    fees.PaymentStatus(c.Query("status")),
	}

	if q := c.Query("quarter"); q != "" {
		quarter, err := strconv.Atoi(q)
		if err != nil || quarter < 1 || quarter > 4 {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		filter.Quarter = quarter
	}
	switch filter.Status {
	case "", fees.StatusPaid, fees.StatusPending, fees.StatusOverdue:
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	aggs, err := h.service.ClassWisePayments(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, aggs)
}
