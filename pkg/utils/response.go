package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "gearguard/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HttpResponse is the error envelope; successful responses carry the bare resource.
type HttpResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, code int) error {
	return ctx.JSON(code, body)
}

// OkResponse is returned by delete endpoints.
func OkResponse(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "Internal server error"
	var details map[string]interface{}

	var httpErr *apperrors.HttpError
	var validationErrs validator.ValidationErrors
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		message = "Validation failed"
		details = make(map[string]interface{}, len(validationErrs))
		for _, fe := range validationErrs {
			details[lowerFirst(fe.Field())] = describeFieldError(fe)
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		details = httpErr.Details
	case errors.As(err, &echoErr):
		code = echoErr.Code
		message = fmt.Sprint(echoErr.Message)
	default:
		code = apperrors.StatusCode(err)
		if code != http.StatusInternalServerError {
			message = err.Error()
		}
	}

	if logger != nil {
		fields := []zap.Field{
			zap.Int("status", code),
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Warn("request rejected", fields...)
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
		Details: details,
	})
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof", "role", "request_type", "request_stage":
		return "has an unsupported value"
	}
	return "is invalid (" + fe.Tag() + ")"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
