package adminapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// errorResponse is the JSON envelope for all error outcomes
type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// fieldError describes a single failed payload constraint
type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorResponse{Code: code, Message: message, Detail: detail})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parsePagination reads skip/limit query parameters with the service
// defaults. Negative values fall back to the defaults; there is no upper
// bound on limit.
func parsePagination(c echo.Context) (skip, limit int) {
	skip = defaultSkip
	limit = defaultLimit
	if v := c.QueryParam("skip"); v != "" {
		if n := cast.ToInt(v); n >= 0 {
			skip = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n := cast.ToInt(v); n > 0 {
			limit = n
		}
	}
	return skip, limit
}

// validatePayload runs echo's validator and translates violations into
// field-level detail for 422 responses.
func validatePayload(c echo.Context, payload interface{}) []fieldError {
	err := c.Validate(payload)
	if err == nil {
		return nil
	}
	verrs, isValidation := err.(validator.ValidationErrors)
	if !isValidation {
		return []fieldError{{Field: "", Reason: "invalid payload"}}
	}
	fields := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldError{
			Field:  fe.Field(),
			Reason: "failed constraint: " + fe.Tag(),
		})
	}
	return fields
}

func failValidation(c echo.Context, fields []fieldError) error {
	return fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
		"Request validation failed", fields)
}
