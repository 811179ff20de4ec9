package handler

import (
	"net/http"

	"memberbase/internal/dto"
	"memberbase/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service  *service.UserService
	Validate *validator.Validate
}

func NewUserHandler(svc *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{Service: svc, Validate: validate}
}

func (h *UserHandler) List(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	limit, page := parsePagination(c)
	users, count, err := h.Service.ListUsers(c.Request().Context(), identity, limit, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	results := dto.UserResponsesFromEntities(users)
	return c.JSON(http.StatusOK, dto.NewListResponse(results, len(results), count, page, limit))
}

// Update binds leniently on purpose: any key outside the allow-listed
// UpdateUserRequest fields is silently dropped, not rejected.
func (h *UserHandler) Update(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	input := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Mobile:    req.Mobile,
		Phone:     req.Phone,
		Gender:    genderPtr(req.Gender),
		Birth:     req.Birth,
		Roles:     req.Roles,
		Tags:      req.Tags,
		Notes:     req.Notes,
	}
	user, err := h.Service.UpdateProfile(c.Request().Context(), identity, targetID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) SetStaff(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.SetStaffRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	user, err := h.Service.SetStaff(c.Request().Context(), identity, targetID, *req.IsStaff)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) SetActive(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.SetActiveRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	user, err := h.Service.SetActive(c.Request().Context(), identity, targetID, *req.Active)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}

	var req dto.ChangePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	if err := h.Service.ChangePassword(c.Request().Context(), identity, targetID, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) Delete(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	targetID, err := parseIDParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid user id")
	}
	if err := h.Service.DeleteUser(c.Request().Context(), identity, targetID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
