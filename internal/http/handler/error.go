package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"claimflow/internal/claim"
	"claimflow/internal/http/middleware"
	"claimflow/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details,omitempty"`
}

// errorDetail points a message at a request field.
type errorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string, details ...errorDetail) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	return c.Status(status).JSON(res)
}

// respondError renders known workflow errors. Anything else is returned so the
// global ErrorHandler answers 500 and the request logger records the cause.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *claim.ValidationError
	if errors.As(err, &vErr) {
		details := make([]errorDetail, 0, len(vErr.Violations))
		for _, v := range vErr.Violations {
			details = append(details, errorDetail{Field: v.Field, Message: v.Message})
		}
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", "claim is invalid", details...)
	}
	var tErr *claim.IllegalTransitionError
	if errors.As(err, &tErr) {
		return writeError(c, fiber.StatusConflict, "ILLEGAL_TRANSITION", tErr.Error())
	}

	switch {
	case errors.Is(err, claim.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, claim.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, claim.ErrDuplicateMonth):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_MONTH", err.Error())
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrBusy):
		return writeError(c, fiber.StatusConflict, "BUSY", err.Error())
	case errors.Is(err, claim.ErrMalformedEntries):
		return writeError(c, fiber.StatusBadRequest, "MALFORMED_ENTRIES", claim.ErrMalformedEntries.Error())
	case errors.Is(err, claim.ErrUnknownAction):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_ACTION", err.Error())
	case errors.Is(err, claim.ErrEmptyFile):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_FILE", err.Error())
	case errors.Is(err, claim.ErrUnsupportedFileType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", err.Error())
	case errors.Is(err, claim.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.Is(err, service.ErrUnknownUser):
		return writeError(c, fiber.StatusNotFound, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrUserExists):
		return writeError(c, fiber.StatusConflict, "USER_EXISTS", err.Error())
	case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrInvalidRate), errors.Is(err, service.ErrNotLecturer):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	}
	return err
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
