package service

import (
	"context"
	"sync"

	"claimflow/internal/model"
	"claimflow/internal/repository"
)

// memClaims is a ClaimRepository over a map with the same uniqueness and version rules as postgres.
type memClaims struct {
	mu   sync.Mutex
	rows map[string]model.Claim
}

func newMemClaims() *memClaims {
	return &memClaims{rows: map[string]model.Claim{}}
}

func (m *memClaims) Create(_ context.Context, c *model.Claim) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ContractorID == c.ContractorID && r.MonthKey == c.MonthKey {
			return nil, repository.ErrDuplicate
		}
	}
	row := *c
	row.Version = 1
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memClaims) FindByID(_ context.Context, id string) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (m *memClaims) FindByContractorMonth(_ context.Context, contractorID, monthKey string) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ContractorID == contractorID && r.MonthKey == monthKey {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memClaims) filter(keep func(model.Claim) bool) []model.Claim {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Claim{}
	for _, r := range m.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *memClaims) ListByContractor(_ context.Context, contractorID string) ([]model.Claim, error) {
	return m.filter(func(c model.Claim) bool { return c.ContractorID == contractorID }), nil
}

func (m *memClaims) ListByStatus(_ context.Context, status model.ClaimStatus) ([]model.Claim, error) {
	return m.filter(func(c model.Claim) bool { return c.Status == status }), nil
}

func (m *memClaims) List(_ context.Context, f repository.ClaimFilter, pq repository.PageQuery) (*repository.PageResult[model.Claim], error) {
	items := m.filter(func(c model.Claim) bool {
		return (f.Status == "" || c.Status == f.Status) && (f.MonthKey == "" || c.MonthKey == f.MonthKey)
	})
	return &repository.PageResult[model.Claim]{Items: items, Total: len(items)}, nil
}

func (m *memClaims) Update(_ context.Context, c *model.Claim) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[c.ID]
	if !ok || cur.Version != c.Version {
		return nil, repository.ErrVersionConflict
	}
	for id, r := range m.rows {
		if id != c.ID && r.ContractorID == c.ContractorID && r.MonthKey == c.MonthKey {
			return nil, repository.ErrDuplicate
		}
	}
	row := *c
	row.Version++
	row.Attachments = nil
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memClaims) Report(_ context.Context, f repository.ClaimFilter) ([]model.ClaimReportRow, error) {
	rows := []model.ClaimReportRow{}
	for _, c := range m.filter(func(c model.Claim) bool { return f.Status == "" || c.Status == f.Status }) {
		rows = append(rows, model.ClaimReportRow{Claim: c})
	}
	return rows, nil
}

func (m *memClaims) ReportMonths(context.Context) ([]string, error) {
	return []string{}, nil
}

var _ repository.ClaimRepository = (*memClaims)(nil)
