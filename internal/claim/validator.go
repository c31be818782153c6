package claim

import (
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"claimflow/internal/model"
)

const (
	// MaxRemarkLength bounds reviewer remarks, in characters.
	MaxRemarkLength = 2000
	// MaxHourlyRate bounds the rate HR may assign to a lecturer.
	MaxHourlyRate = 100000
)

// MaxMonthlyHours is the most a contractor may claim for one month.
var MaxMonthlyHours = decimal.NewFromInt(180)

var monthKeyRx = regexp.MustCompile(`^\d{4}-\d{2}$`)

const (
	MsgMonthFormat        = "Month must be formatted as YYYY-MM."
	MsgMonthRange         = "Month must be between 1 and 12."
	MsgHoursCeiling       = "Total hours for a single month may not exceed 180."
	MsgHoursNegative      = "Hours cannot be negative."
	MsgRateNegative       = "Hourly rate cannot be negative."
	MsgSubmittedAtMissing = "SubmittedAt must be set when the claim is Pending."
	MsgAmountNegative     = "Calculated Amount cannot be negative."
	MsgRemarkTooLong      = "Reviewer remark may not exceed 2000 characters."
)

// Validate evaluates every rule against c and returns all violations found.
// An empty result means the claim may be persisted.
func Validate(c *model.Claim) Violations {
	var v Violations

	if !monthKeyRx.MatchString(c.MonthKey) {
		v = append(v, Violation{Field: "month_key", Message: MsgMonthFormat})
	} else if m := c.Month(); m < 1 || m > 12 {
		v = append(v, Violation{Field: "month_key", Message: MsgMonthRange})
	}

	if c.Hours.GreaterThan(MaxMonthlyHours) {
		v = append(v, Violation{Field: "hours", Message: MsgHoursCeiling})
	}
	if c.Hours.IsNegative() {
		v = append(v, Violation{Field: "hours", Message: MsgHoursNegative})
	}
	if c.Rate.IsNegative() {
		v = append(v, Violation{Field: "rate", Message: MsgRateNegative})
	}

	// Pending and every later review stage carry a submission time.
	if c.Status.IsActive() && c.SubmittedAt == nil {
		v = append(v, Violation{Field: "submitted_at", Message: MsgSubmittedAtMissing})
	}

	if c.Amount().IsNegative() {
		v = append(v, Violation{Field: "amount", Message: MsgAmountNegative})
	}

	if c.ReviewerRemark != nil && utf8.RuneCountInString(*c.ReviewerRemark) > MaxRemarkLength {
		v = append(v, Violation{Field: "reviewer_remark", Message: MsgRemarkTooLong})
	}

	return v
}

// Check is Validate as an error: nil when valid, *ValidationError otherwise.
func Check(c *model.Claim) error {
	if v := Validate(c); len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}
