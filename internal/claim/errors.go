// Package claim holds the monthly claim rules: hour aggregation, validation and the
// review workflow state machine. Everything here is pure; persistence and I/O live elsewhere.
package claim

import (
	"errors"
	"fmt"
	"strings"

	"claimflow/internal/model"
)

var (
	ErrNotFound         = errors.New("claim not found")
	ErrForbidden        = errors.New("action not permitted for this role")
	ErrDuplicateMonth   = errors.New("a claim already exists for this month")
	ErrMalformedEntries = errors.New("could not read time entries")
	ErrUnknownAction    = errors.New("unknown workflow action")
)

// Violation is a single failed validation rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the full, unshortened result of validating a claim.
type Violations []Violation

// Messages returns the human-readable messages in rule order.
func (v Violations) Messages() []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = x.Message
	}
	return out
}

// Has reports whether a violation with the given message is present.
func (v Violations) Has(message string) bool {
	for _, x := range v {
		if x.Message == message {
			return true
		}
	}
	return false
}

// ValidationError carries every violation found on a claim.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	return "claim is invalid: " + strings.Join(e.Violations.Messages(), " ")
}

// IllegalTransitionError is returned when an action is attempted from a state that does not allow it.
type IllegalTransitionError struct {
	Action   Action
	From     model.ClaimStatus
	Required []model.ClaimStatus
}

func (e *IllegalTransitionError) Error() string {
	req := make([]string, len(e.Required))
	for i, s := range e.Required {
		req[i] = string(s)
	}
	return fmt.Sprintf("illegal transition: %s requires status %s, claim is %s",
		e.Action, strings.Join(req, " or "), e.From)
}
