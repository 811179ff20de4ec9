package handler

import (
	"net/http"

	"memberbase/internal/dto"
	"memberbase/internal/entity"
	"memberbase/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DiscountHandler struct {
	Service  *service.DiscountService
	Validate *validator.Validate
}

func NewDiscountHandler(svc *service.DiscountService, validate *validator.Validate) *DiscountHandler {
	return &DiscountHandler{Service: svc, Validate: validate}
}

func (h *DiscountHandler) List(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	limit, page := parsePagination(c)
	discounts, count, err := h.Service.List(c.Request().Context(), identity, limit, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	results := dto.DiscountResponsesFromEntities(discounts)
	return c.JSON(http.StatusOK, dto.NewListResponse(results, len(results), count, page, limit))
}

func (h *DiscountHandler) Create(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	var req dto.DiscountRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	discount, err := h.Service.Create(c.Request().Context(), identity, discountInput(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.DiscountResponseFromEntity(discount))
}

func (h *DiscountHandler) Update(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid discount id")
	}
	var req dto.DiscountRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	discount, err := h.Service.Update(c.Request().Context(), identity, id, discountInput(req))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DiscountResponseFromEntity(discount))
}

func (h *DiscountHandler) Delete(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid discount id")
	}
	if err := h.Service.Delete(c.Request().Context(), identity, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func discountInput(req dto.DiscountRequest) service.DiscountInput {
	input := service.DiscountInput{
		Title:           req.Title,
		Description:     req.Description,
		DiscountType:    entity.DiscountType(req.DiscountType),
		ApplicableTo:    req.ApplicableTo,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MinValue:        req.MinValue,
		MaxValue:        req.MaxValue,
		BaseCalculation: entity.BaseCalculation(req.BaseCalculation),
	}
	if req.Value != nil {
		input.Value = *req.Value
	}
	if req.Priority != nil {
		input.Priority = *req.Priority
	}
	if req.Progressive != nil {
		input.Progressive = *req.Progressive
	}
	return input
}
