package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"memberbase/api/middleware"
	"memberbase/internal/entity"
	"memberbase/internal/service"

	"github.com/labstack/echo/v4"
)

var errUnauthenticated = errors.New("unauthenticated")

func identityFromContext(c echo.Context) (service.Identity, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return service.Identity{}, errUnauthenticated
	}
	isStaff, ok := middleware.IsStaffFromContext(c)
	if !ok {
		return service.Identity{}, errUnauthenticated
	}
	return service.Identity{UserID: userID, IsStaff: isStaff}, nil
}

// decodeJSON rejects unknown fields; used where the request shape is fixed.
// Partial updates bind leniently instead, so off-allow-list keys are dropped.
func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parsePagination reads limit (default 10) and page (default 1, 1-indexed).
func parsePagination(c echo.Context) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	return limit, page
}

func genderPtr(value *string) *entity.Gender {
	if value == nil {
		return nil
	}
	gender := entity.Gender(*value)
	return &gender
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
