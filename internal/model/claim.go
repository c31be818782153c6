package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus is the workflow state of a claim. Each state has exactly one name.
type ClaimStatus string

const (
	StatusDraft                 ClaimStatus = "Draft"
	StatusPending               ClaimStatus = "Pending"
	StatusVerifiedByCoordinator ClaimStatus = "VerifiedByCoordinator"
	StatusApprovedByManager     ClaimStatus = "ApprovedByManager"
	StatusFinalisedByHR         ClaimStatus = "FinalisedByHR"
	StatusRejected              ClaimStatus = "Rejected"
)

// AllStatuses lists every state in workflow order.
var AllStatuses = []ClaimStatus{
	StatusDraft,
	StatusPending,
	StatusVerifiedByCoordinator,
	StatusApprovedByManager,
	StatusFinalisedByHR,
	StatusRejected,
}

// ParseClaimStatus returns the status named s.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// IsActive reports whether the status occupies the contractor's month:
// submitted and not sent back.
func (s ClaimStatus) IsActive() bool {
	switch s {
	case StatusPending, StatusVerifiedByCoordinator, StatusApprovedByManager, StatusFinalisedByHR:
		return true
	}
	return false
}

// IsEditable reports whether the owning contractor may still change the claim.
func (s ClaimStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Claim is a contractor's monthly record of worked hours.
// Amount is never stored; it is always derived from Hours and Rate.
type Claim struct {
	ID             string          `json:"id"`
	ContractorID   string          `json:"contractor_id"`
	MonthKey       string          `json:"month_key"`
	Hours          decimal.Decimal `json:"hours"`
	Rate           decimal.Decimal `json:"rate"`
	Status         ClaimStatus     `json:"status"`
	Notes          *string         `json:"notes,omitempty"`
	ReviewerRemark *string         `json:"reviewer_remark,omitempty"`
	CoordinatorID  *string         `json:"coordinator_id,omitempty"`
	ManagerID      *string         `json:"manager_id,omitempty"`
	SubmittedAt    *time.Time      `json:"submitted_at,omitempty"`
	VerifiedAt     *time.Time      `json:"verified_at,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	RejectedAt     *time.Time      `json:"rejected_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int64           `json:"version"`
	Attachments    []Document      `json:"attachments"`
}

// Amount returns hours × rate rounded to cents, half away from zero.
func (c *Claim) Amount() decimal.Decimal {
	return c.Hours.Mul(c.Rate).Round(2)
}

// MarshalJSON adds the derived amount to the encoded claim.
func (c Claim) MarshalJSON() ([]byte, error) {
	type alias Claim
	return json.Marshal(struct {
		alias
		Amount decimal.Decimal `json:"amount"`
	}{alias(c), c.Amount()})
}

// Year returns the year component of MonthKey, or 0 when it cannot be read.
func (c *Claim) Year() int {
	y, _ := splitMonthKey(c.MonthKey)
	return y
}

// Month returns the month component of MonthKey, or 0 when it cannot be read.
func (c *Claim) Month() int {
	_, m := splitMonthKey(c.MonthKey)
	return m
}

// SetYear replaces the year and keeps the month.
func (c *Claim) SetYear(year int) {
	c.MonthKey = BuildMonthKey(year, c.Month())
}

// SetMonth replaces the month and keeps the year.
func (c *Claim) SetMonth(month int) {
	c.MonthKey = BuildMonthKey(c.Year(), month)
}

// BuildMonthKey formats a zero-padded YYYY-MM key.
func BuildMonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthKeyOf returns the month key t falls in.
func MonthKeyOf(t time.Time) string {
	return BuildMonthKey(t.Year(), int(t.Month()))
}

func splitMonthKey(key string) (int, int) {
	if len(key) != 7 || key[4] != '-' {
		return 0, 0
	}
	y, err := strconv.Atoi(key[:4])
	if err != nil {
		return 0, 0
	}
	m, err := strconv.Atoi(key[5:])
	if err != nil {
		return y, 0
	}
	return y, m
}

// ClaimReportRow is a claim joined with the names HR needs to pay it.
type ClaimReportRow struct {
	Claim           Claim  `json:"claim"`
	ContractorName  string `json:"contractor_name"`
	CoordinatorName string `json:"coordinator_name,omitempty"`
}
