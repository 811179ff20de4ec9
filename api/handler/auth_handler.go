package handler

import (
	"net/http"

	"memberbase/internal/dto"
	"memberbase/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.UserService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.UserService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	input := service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Mobile:    req.Mobile,
		Phone:     req.Phone,
		Gender:    genderPtr(req.Gender),
		Birth:     req.Birth,
		Notes:     req.Notes,
		Roles:     req.Roles,
		Tags:      req.Tags,
	}
	user, token, err := h.Service.Register(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserResponse: dto.UserResponseFromEntity(user),
		Token:        token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, "malformed request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	token, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		IPAddress:  stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Refresh issues a replacement token with a fresh expiry. The presented token
// has already been verified by the auth guard.
func (h *AuthHandler) Refresh(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	token, err := h.Service.RefreshToken(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return writeError(c, http.StatusUnauthorized, "access denied")
	}
	user, err := h.Service.GetUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}
