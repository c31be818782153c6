package handler

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claimflow/internal/http/middleware"
	"claimflow/internal/model"
	"claimflow/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so details match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// claimRequest is the body for creating, editing and quoting a claim.
// When entries are sent, hours are computed from them. The month key is checked by the
// claim rules so that its violation is reported together with the others.
type claimRequest struct {
	MonthKey string          `json:"month_key"`
	Hours    decimal.Decimal `json:"hours"`
	Entries  json.RawMessage `json:"entries,omitempty" swaggertype:"array,object"`
	Notes    *string         `json:"notes,omitempty" validate:"omitempty,max=4000"`
	// Submit creates the claim directly in Pending.
	Submit bool `json:"submit,omitempty"`
}

func (r claimRequest) input() service.ClaimInput {
	return service.ClaimInput{MonthKey: r.MonthKey, Hours: r.Hours, Entries: r.Entries, Notes: r.Notes}
}

type remarkRequest struct {
	Remark string `json:"remark" validate:"max=2000"`
}

type userRequest struct {
	UserName   string          `json:"user_name" validate:"required,min=3,max=64"`
	Email      string          `json:"email" validate:"required,email"`
	FirstName  string          `json:"first_name" validate:"required,max=100"`
	LastName   string          `json:"last_name" validate:"required,max=100"`
	Role       model.Role      `json:"role" validate:"required,oneof=Lecturer Coordinator AcademicManager HR"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type rateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// bind decodes the JSON body into dst and validates it. It writes the error response
// itself and reports false when the request cannot continue.
func bind(c *fiber.Ctx, dst any) (bool, error) {
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), dst); err != nil {
			return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, err
		}
		details := make([]errorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, errorDetail{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return false, writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", "request is invalid", details...)
	}
	return true, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		return "must be " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag()
}

// principal returns the authenticated principal. Routes are mounted behind middleware.Auth,
// so a miss means the handler was wired without it.
func principal(c *fiber.Ctx) (model.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return model.Principal{}, fiber.ErrUnauthorized
	}
	return p, nil
}

// idParam returns the :id path parameter, or writes INVALID_ID.
func idParam(c *fiber.Ctx) (string, bool, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// pageParams reads limit and offset query parameters.
func pageParams(c *fiber.Ctx, defLimit int) (limit, offset int, ok bool, err error) {
	limit, convErr := strconv.Atoi(c.Query("limit", strconv.Itoa(defLimit)))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, convErr = strconv.Atoi(c.Query("offset", "0"))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}
