package postgres

import (
	"context"
	"database/sql"
	"errors"

	"claimflow/internal/model"
	"claimflow/internal/repository"
)

// ClaimPostgres is a PostgreSQL implementation of repository.ClaimRepository.
type ClaimPostgres struct {
	db *sql.DB
}

// NewClaimPostgres creates a new ClaimPostgres repository.
func NewClaimPostgres(db *sql.DB) *ClaimPostgres {
	return &ClaimPostgres{db: db}
}

var _ repository.ClaimRepository = (*ClaimPostgres)(nil)

const claimColumns = `id, contractor_id, month_key, hours, rate, status, notes, reviewer_remark,
		coordinator_id, manager_id, submitted_at, verified_at, approved_at, rejected_at,
		created_at, updated_at, version`

const claimColumnsC = `c.id, c.contractor_id, c.month_key, c.hours, c.rate, c.status, c.notes, c.reviewer_remark,
		c.coordinator_id, c.manager_id, c.submitted_at, c.verified_at, c.approved_at, c.rejected_at,
		c.created_at, c.updated_at, c.version`

func scanClaim(s rowScanner, extra ...any) (*model.Claim, error) {
	var c model.Claim
	dest := []any{
		&c.ID, &c.ContractorID, &c.MonthKey, &c.Hours, &c.Rate, &c.Status, &c.Notes, &c.ReviewerRemark,
		&c.CoordinatorID, &c.ManagerID, &c.SubmittedAt, &c.VerifiedAt, &c.ApprovedAt, &c.RejectedAt,
		&c.CreatedAt, &c.UpdatedAt, &c.Version,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectClaims(rows *sql.Rows) ([]model.Claim, error) {
	defer rows.Close()
	items := make([]model.Claim, 0)
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new claim at version 1 and returns the stored row.
func (r *ClaimPostgres) Create(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	const q = `
		INSERT INTO claims (id, contractor_id, month_key, hours, rate, status, notes, reviewer_remark,
			coordinator_id, manager_id, submitted_at, verified_at, approved_at, rejected_at,
			created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1)
		RETURNING ` + claimColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID, c.ContractorID, c.MonthKey, c.Hours, c.Rate, c.Status, c.Notes, c.ReviewerRemark,
		c.CoordinatorID, c.ManagerID, c.SubmittedAt, c.VerifiedAt, c.ApprovedAt, c.RejectedAt,
		c.CreatedAt, c.UpdatedAt,
	)
	out, err := scanClaim(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single claim by its ID.
func (r *ClaimPostgres) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	const q = `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`
	c, err := scanClaim(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *ClaimPostgres) FindByContractorMonth(ctx context.Context, contractorID, monthKey string) (*model.Claim, error) {
	const q = `SELECT ` + claimColumns + ` FROM claims WHERE contractor_id = $1 AND month_key = $2`
	c, err := scanClaim(r.db.QueryRowContext(ctx, q, contractorID, monthKey))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *ClaimPostgres) ListByContractor(ctx context.Context, contractorID string) ([]model.Claim, error) {
	const q = `SELECT ` + claimColumns + ` FROM claims
		WHERE contractor_id = $1
		ORDER BY submitted_at DESC NULLS FIRST, id DESC`
	rows, err := r.db.QueryContext(ctx, q, contractorID)
	if err != nil {
		return nil, err
	}
	return collectClaims(rows)
}

func (r *ClaimPostgres) ListByStatus(ctx context.Context, status model.ClaimStatus) ([]model.Claim, error) {
	const q = `SELECT ` + claimColumns + ` FROM claims
		WHERE status = $1
		ORDER BY submitted_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	return collectClaims(rows)
}

// List returns claims using LIMIT/OFFSET pagination and a total count.
func (r *ClaimPostgres) List(ctx context.Context, f repository.ClaimFilter, pq repository.PageQuery) (*repository.PageResult[model.Claim], error) {
	const where = ` WHERE ($1 = '' OR status = $1) AND ($2 = '' OR month_key = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM claims`+where, f.Status, f.MonthKey).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + claimColumns + ` FROM claims` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, qList, f.Status, f.MonthKey, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collectClaims(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Claim]{
		Items: items,
		Total: total,
	}, nil
}

// Update performs a compare-and-swap on version. Contractor and creation time never change.
func (r *ClaimPostgres) Update(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	const q = `
		UPDATE claims SET
			month_key = $3, hours = $4, rate = $5, status = $6, notes = $7, reviewer_remark = $8,
			coordinator_id = $9, manager_id = $10, submitted_at = $11, verified_at = $12,
			approved_at = $13, rejected_at = $14, updated_at = $15, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING ` + claimColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID, c.Version,
		c.MonthKey, c.Hours, c.Rate, c.Status, c.Notes, c.ReviewerRemark,
		c.CoordinatorID, c.ManagerID, c.SubmittedAt, c.VerifiedAt,
		c.ApprovedAt, c.RejectedAt, c.UpdatedAt,
	)
	out, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrVersionConflict
		}
		return nil, mapError(err)
	}
	return out, nil
}

func (r *ClaimPostgres) Report(ctx context.Context, f repository.ClaimFilter) ([]model.ClaimReportRow, error) {
	const q = `
		SELECT ` + claimColumnsC + `,
			TRIM(u.first_name || ' ' || u.last_name),
			COALESCE(TRIM(co.first_name || ' ' || co.last_name), '')
		FROM claims c
		JOIN users u ON u.id = c.contractor_id
		LEFT JOIN users co ON co.id = c.coordinator_id
		WHERE ($1 = '' OR c.status = $1) AND ($2 = '' OR c.month_key = $2)
		ORDER BY u.last_name, u.first_name, c.month_key, c.id`
	rows, err := r.db.QueryContext(ctx, q, f.Status, f.MonthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ClaimReportRow, 0)
	for rows.Next() {
		var row model.ClaimReportRow
		c, err := scanClaim(rows, &row.ContractorName, &row.CoordinatorName)
		if err != nil {
			return nil, err
		}
		row.Claim = *c
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClaimPostgres) ReportMonths(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT month_key FROM claims ORDER BY month_key DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := make([]string, 0)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}
