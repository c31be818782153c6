package repository

import (
	"context"

	"claimflow/internal/model"
)

// ClaimFilter narrows listing queries. Zero fields match everything.
type ClaimFilter struct {
	Status   model.ClaimStatus
	MonthKey string
}

// ClaimRepository persists claims. It enforces one claim per (contractor, month)
// and rejects updates against a stale Version with ErrVersionConflict.
type ClaimRepository interface {
	// Create inserts c with version 1. A second claim for the same contractor and month yields ErrDuplicate.
	Create(ctx context.Context, c *model.Claim) (*model.Claim, error)

	FindByID(ctx context.Context, id string) (*model.Claim, error)

	// FindByContractorMonth returns ErrNotFound when the contractor has no claim for monthKey.
	FindByContractorMonth(ctx context.Context, contractorID, monthKey string) (*model.Claim, error)

	// ListByContractor returns a contractor's claims, newest submission first, drafts leading.
	ListByContractor(ctx context.Context, contractorID string) ([]model.Claim, error)

	// ListByStatus returns claims in status, oldest submission first, id as tiebreak.
	ListByStatus(ctx context.Context, status model.ClaimStatus) ([]model.Claim, error)

	// List returns a filtered page of all claims, most recently created first.
	List(ctx context.Context, f ClaimFilter, pq PageQuery) (*PageResult[model.Claim], error)

	// Update writes c if its Version still matches the stored row and returns the row with the bumped version.
	Update(ctx context.Context, c *model.Claim) (*model.Claim, error)

	// Report joins claims with contractor and coordinator names, ordered by contractor last name,
	// first name, then month.
	Report(ctx context.Context, f ClaimFilter) ([]model.ClaimReportRow, error)

	// ReportMonths lists distinct month keys, latest first.
	ReportMonths(ctx context.Context) ([]string, error)
}
