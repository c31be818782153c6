package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User is an account managed by HR. HourlyRate only matters for lecturers.
type User struct {
	ID         string          `json:"id"`
	UserName   string          `json:"user_name"`
	Email      string          `json:"email"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Role       Role            `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Principal is the acting identity passed explicitly into every workflow operation.
// HourlyRate is the authoritative rate from the user's profile.
type Principal struct {
	UserID     string
	Name       string
	Role       Role
	HourlyRate decimal.Decimal
}

// PrincipalFromUser builds the acting principal for u.
func PrincipalFromUser(u User) Principal {
	return Principal{
		UserID:     u.ID,
		Name:       u.FullName(),
		Role:       u.Role,
		HourlyRate: u.HourlyRate,
	}
}
