package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "evergreen_estimator/internal/adapter/http/dto/request"
	response "evergreen_estimator/internal/adapter/http/dto/response"
	"evergreen_estimator/internal/domain/mutate"
	"evergreen_estimator/internal/domain/validation"
	"evergreen_estimator/internal/infrastructure/pdf"
	"evergreen_estimator/internal/usecase"
	"evergreen_estimator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles every estimate editing request: project details,
// line items, allocations, scope, validation, and PDF export.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate starts a new draft. The body is optional; present fields
// pre-fill the project details.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateDetailsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
			return
		}
	}

	patch, err := payload.ToPatch()
	if err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Create(c.Request.Context(), patch)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	estimates, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(estimates))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EstimateHandler) UpdateDetails(c *gin.Context) {
	var payload request.EstimateDetailsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}
	patch, err := payload.ToPatch()
	if err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateDetails(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) UpdateScope(c *gin.Context) {
	var payload request.ScopeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateScope(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) AddLineItem(c *gin.Context) {
	var payload request.LineItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.AddLineItem(c.Request.Context(), c.Param("id"), payload.ToLineItem())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

func (h *EstimateHandler) UpdateLineItem(c *gin.Context) {
	var payload request.LineItemPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateLineItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), payload.ToPatch())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) DeleteLineItem(c *gin.Context) {
	estimate, err := h.usecase.DeleteLineItem(c.Request.Context(), c.Param("id"), c.Param("itemID"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) AddAllocation(c *gin.Context) {
	var payload request.AllocationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.AddAllocation(c.Request.Context(), c.Param("id"), payload.ToAllocation())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

func (h *EstimateHandler) UpdateAllocation(c *gin.Context) {
	var payload request.AllocationPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateAllocation(c.Request.Context(), c.Param("id"), c.Param("allocationID"), payload.ToPatch())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) DeleteAllocation(c *gin.Context) {
	estimate, err := h.usecase.DeleteAllocation(c.Request.Context(), c.Param("id"), c.Param("allocationID"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// GetValidation returns the advisory checklist and readiness flags.
func (h *EstimateHandler) GetValidation(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, validation.Evaluate(estimate))
}

// ExportPDF renders the snapshot as a downloadable document. The export is
// read-only; nothing feeds back into the model.
func (h *EstimateHandler) ExportPDF(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	doc, err := pdf.Build(estimate)
	if err != nil {
		appErr := pkg.NewDomainError("PDF_EXPORT_FAILED", "Failed to render estimate PDF", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(estimate)))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func mapEstimateError(err error) *pkg.AppError {
	var overAlloc *mutate.OverAllocationError
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, mutate.ErrNonPositiveQuantity):
		return pkg.NewDomainErrorSimple("INVALID_QUANTITY", "Allocation quantity must be positive", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, mutate.ErrLineItemNotFound):
		return pkg.NewDomainErrorSimple("LINE_ITEM_NOT_FOUND", "Line item not found", http.StatusNotFound)
	case errors.Is(err, mutate.ErrAllocationNotFound):
		return pkg.NewDomainErrorSimple("ALLOCATION_NOT_FOUND", "Allocation not found", http.StatusNotFound)
	case errors.As(err, &overAlloc):
		msg := fmt.Sprintf("Requested quantity %g exceeds remaining quantity %g", overAlloc.Requested, overAlloc.Headroom)
		return pkg.NewDomainErrorSimple("OVER_ALLOCATION", msg, http.StatusConflict)
	case errors.Is(err, mutate.ErrOverAllocation):
		return pkg.NewDomainErrorSimple("OVER_ALLOCATION", "Allocation exceeds unallocated quantity", http.StatusConflict)
	case errors.Is(err, mutate.ErrDuplicateID):
		return pkg.NewDomainErrorSimple("DUPLICATE_ID", "Id already exists", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
