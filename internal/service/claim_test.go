package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"claimflow/internal/claim"
	"claimflow/internal/lock"
	lockMocks "claimflow/internal/lock/mocks"
	"claimflow/internal/model"
	"claimflow/internal/repository"
	repoMocks "claimflow/internal/repository/mocks"
)

var (
	fixedNow = time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	lecturer    = model.Principal{UserID: "u1", Role: model.RoleLecturer, HourlyRate: decimal.NewFromInt(100)}
	otherLect   = model.Principal{UserID: "u2", Role: model.RoleLecturer, HourlyRate: decimal.NewFromInt(80)}
	coordinator = model.Principal{UserID: "c1", Role: model.RoleCoordinator}
	manager     = model.Principal{UserID: "m1", Role: model.RoleManager}
	hrUser      = model.Principal{UserID: "h1", Role: model.RoleHR}
)

type claimFixture struct {
	claims  *repoMocks.MockClaimRepository
	docs    *repoMocks.MockDocumentRepository
	locker  *lockMocks.MockLocker
	metrics *Metrics
	svc     *claimService
}

func newClaimFixture(t *testing.T) *claimFixture {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	log, _ := test.NewNullLogger()

	f := &claimFixture{
		claims:  new(repoMocks.MockClaimRepository),
		docs:    new(repoMocks.MockDocumentRepository),
		locker:  new(lockMocks.MockLocker),
		metrics: m,
	}
	f.svc = NewClaimService(f.claims, f.docs, f.locker, log, m).(*claimService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *claimFixture) assertExpectations(t *testing.T) {
	f.claims.AssertExpectations(t)
	f.docs.AssertExpectations(t)
	f.locker.AssertExpectations(t)
}

func (f *claimFixture) count(action, result string) float64 {
	return testutil.ToFloat64(f.metrics.transitions.WithLabelValues(action, result))
}

func storedClaim(status model.ClaimStatus) *model.Claim {
	c := &model.Claim{
		ID:           "claim-1",
		ContractorID: lecturer.UserID,
		MonthKey:     "2025-03",
		Hours:        decimal.RequireFromString("22.5"),
		Rate:         decimal.NewFromInt(100),
		Status:       status,
		CreatedAt:    fixedNow.Add(-48 * time.Hour),
		UpdatedAt:    fixedNow.Add(-48 * time.Hour),
		Version:      3,
	}
	if status.IsActive() {
		at := fixedNow.Add(-24 * time.Hour)
		c.SubmittedAt = &at
	}
	return c
}

func grantLock(l *lockMocks.MockLocker, released *bool) {
	l.On("Acquire", mock.Anything, lock.ClaimKey("u1", "2025-03")).
		Return(lock.ReleaseFunc(func(context.Context) error {
			*released = true
			return nil
		}), nil)
}

const threeEntries = `[
	{"date":"2025-03-03","start":"09:00","end":"17:00"},
	{"date":"2025-03-10","start":"08:30","end":"16:00"},
	{"date":"2025-03-17","start":"10:00","end":"17:00"},
	{"date":"2025-04-01","start":"09:00","end":"17:00"}
]`

func TestClaimService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		input       ClaimInput
		setupMocks  func(f *claimFixture, released *bool)
		wantErr     error
		wantErrAs   any
		wantRelease bool
	}{
		{
			name:  "creates draft with profile rate",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(nil, repository.ErrNotFound)
				f.claims.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
					return c.ID != "" && c.Status == model.StatusDraft && c.ContractorID == "u1" &&
						c.Rate.Equal(decimal.NewFromInt(100)) && c.SubmittedAt == nil
				})).Return(storedClaim(model.StatusDraft), nil)
			},
			wantRelease: true,
		},
		{
			name:  "hours aggregated from time entries",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(999), Entries: []byte(threeEntries)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(nil, repository.ErrNotFound)
				f.claims.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
					return c.Hours.Equal(decimal.RequireFromString("22.5")) && c.Amount().Equal(decimal.NewFromInt(2250))
				})).Return(storedClaim(model.StatusDraft), nil)
			},
			wantRelease: true,
		},
		{
			name:  "existing pending claim blocks the month",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(storedClaim(model.StatusPending), nil)
			},
			wantErr:     claim.ErrDuplicateMonth,
			wantRelease: true,
		},
		{
			name:  "existing rejected claim must be edited, not replaced",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(storedClaim(model.StatusRejected), nil)
			},
			wantErr:     claim.ErrDuplicateMonth,
			wantRelease: true,
		},
		{
			name:  "unique constraint wins a race",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(nil, repository.ErrNotFound)
				f.claims.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: uq_claims_contractor_month", repository.ErrDuplicate))
			},
			wantErr:     claim.ErrDuplicateMonth,
			wantRelease: true,
		},
		{
			name:  "invalid claim never takes the lock",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(200)},
			setupMocks: func(f *claimFixture, released *bool) {
			},
			wantErrAs: new(*claim.ValidationError),
		},
		{
			name:  "malformed entries",
			input: ClaimInput{MonthKey: "2025-03", Entries: []byte(`{"date":`)},
			setupMocks: func(f *claimFixture, released *bool) {
			},
			wantErr: claim.ErrMalformedEntries,
		},
		{
			name:  "lock held by a concurrent request",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				f.locker.On("Acquire", mock.Anything, mock.Anything).Return(nil, lock.ErrBusy)
			},
			wantErr: ErrBusy,
		},
		{
			name:  "repository failure is wrapped",
			input: ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(10)},
			setupMocks: func(f *claimFixture, released *bool) {
				grantLock(f.locker, released)
				f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(nil, errors.New("db down"))
			},
			wantErr:     nil,
			wantRelease: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClaimFixture(t)
			var released bool
			tt.setupMocks(f, &released)

			c, err := f.svc.Create(ctx, lecturer, tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			case tt.wantErrAs != nil:
				assert.ErrorAs(t, err, tt.wantErrAs)
			case tt.name == "repository failure is wrapped":
				assert.ErrorContains(t, err, "check existing claim: db down")
			default:
				require.NoError(t, err)
				assert.Equal(t, "claim-1", c.ID)
				assert.NotNil(t, c.Attachments)
			}
			assert.Equal(t, tt.wantRelease, released)
			f.assertExpectations(t)
		})
	}
}

func TestClaimService_SubmitNew(t *testing.T) {
	f := newClaimFixture(t)
	var released bool
	grantLock(f.locker, &released)
	f.claims.On("FindByContractorMonth", mock.Anything, "u1", "2025-03").Return(nil, repository.ErrNotFound)
	f.claims.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
		return c.Status == model.StatusPending && c.SubmittedAt != nil && c.SubmittedAt.Equal(fixedNow)
	})).Return(storedClaim(model.StatusPending), nil)

	c, err := f.svc.SubmitNew(context.Background(), lecturer, ClaimInput{MonthKey: "2025-03", Hours: decimal.RequireFromString("22.5")})

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, c.Status)
	assert.Equal(t, float64(1), f.count("submit", resultOK))
	f.assertExpectations(t)

	_, err = f.svc.SubmitNew(context.Background(), coordinator, ClaimInput{MonthKey: "2025-03"})
	assert.ErrorIs(t, err, claim.ErrForbidden)
	assert.Equal(t, float64(1), f.count("submit", resultRejected))
}

func TestClaimService_Transition(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      model.Principal
		action     claim.Action
		remark     string
		setupMocks func(f *claimFixture)
		check      func(t *testing.T, c *model.Claim, err error)
		result     string
	}{
		{
			name:   "coordinator verifies pending claim",
			actor:  coordinator,
			action: claim.ActionVerify,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusPending), nil)
				f.claims.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
					return c.Status == model.StatusVerifiedByCoordinator && c.Version == 3 &&
						c.VerifiedAt != nil && *c.CoordinatorID == "c1"
				})).Return(func() *model.Claim {
					c := storedClaim(model.StatusVerifiedByCoordinator)
					c.Version = 4
					return c
				}(), nil)
				f.docs.On("ListByClaim", mock.Anything, "claim-1").Return([]model.Document{{ID: "d1"}}, nil)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(4), c.Version)
				assert.Len(t, c.Attachments, 1)
			},
			result: resultOK,
		},
		{
			name:   "lecturer resubmits rejected claim",
			actor:  lecturer,
			action: claim.ActionSubmit,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusRejected), nil)
				f.claims.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
					return c.Status == model.StatusPending && c.SubmittedAt.Equal(fixedNow)
				})).Return(storedClaim(model.StatusPending), nil)
				f.docs.On("ListByClaim", mock.Anything, "claim-1").Return([]model.Document{}, nil)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				require.NoError(t, err)
				assert.Equal(t, model.StatusPending, c.Status)
			},
			result: resultOK,
		},
		{
			name:   "submit of approved claim is illegal",
			actor:  lecturer,
			action: claim.ActionSubmit,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusApprovedByManager), nil)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				var illegal *claim.IllegalTransitionError
				assert.ErrorAs(t, err, &illegal)
				assert.Nil(t, c)
			},
			result: resultRejected,
		},
		{
			name:   "manager approves concurrently modified claim",
			actor:  manager,
			action: claim.ActionApprove,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusVerifiedByCoordinator), nil)
				f.claims.On("Update", mock.Anything, mock.Anything).Return(nil, repository.ErrVersionConflict)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				assert.ErrorIs(t, err, ErrConflict)
			},
			result: resultRejected,
		},
		{
			name:   "missing claim",
			actor:  hrUser,
			action: claim.ActionFinalise,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(nil, repository.ErrNotFound)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				assert.ErrorIs(t, err, claim.ErrNotFound)
			},
			result: resultRejected,
		},
		{
			name:   "another lecturer's claim looks missing",
			actor:  otherLect,
			action: claim.ActionSubmit,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusDraft), nil)
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				assert.ErrorIs(t, err, claim.ErrNotFound)
			},
			result: resultRejected,
		},
		{
			name:       "edit is not a transition",
			actor:      lecturer,
			action:     claim.ActionEdit,
			setupMocks: func(f *claimFixture) {},
			check: func(t *testing.T, c *model.Claim, err error) {
				assert.ErrorIs(t, err, claim.ErrUnknownAction)
			},
			result: resultRejected,
		},
		{
			name:   "storage failure",
			actor:  coordinator,
			action: claim.ActionCoordinatorReject,
			setupMocks: func(f *claimFixture) {
				f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusPending), nil)
				f.claims.On("Update", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
			},
			check: func(t *testing.T, c *model.Claim, err error) {
				assert.ErrorContains(t, err, "update claim: connection reset")
			},
			result: resultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClaimFixture(t)
			tt.setupMocks(f)

			c, err := f.svc.Transition(ctx, tt.actor, "claim-1", tt.action, tt.remark)

			tt.check(t, c, err)
			assert.Equal(t, float64(1), f.count(string(tt.action), tt.result))
			f.assertExpectations(t)
		})
	}
}

func TestClaimService_Edit(t *testing.T) {
	f := newClaimFixture(t)
	notes := "corrected"
	existing := storedClaim(model.StatusRejected)
	existing.Rate = decimal.NewFromInt(1)

	f.claims.On("FindByID", mock.Anything, "claim-1").Return(existing, nil)
	f.claims.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Claim) bool {
		return c.MonthKey == "2025-04" && c.Hours.Equal(decimal.NewFromInt(12)) &&
			c.Rate.Equal(decimal.NewFromInt(100)) && c.Status == model.StatusRejected && *c.Notes == "corrected"
	})).Return(storedClaim(model.StatusRejected), nil)
	f.docs.On("ListByClaim", mock.Anything, "claim-1").Return([]model.Document{}, nil)

	_, err := f.svc.Edit(context.Background(), lecturer, "claim-1", ClaimInput{MonthKey: "2025-04", Hours: decimal.NewFromInt(12), Notes: &notes})

	require.NoError(t, err)
	f.assertExpectations(t)

	t.Run("month already claimed", func(t *testing.T) {
		f := newClaimFixture(t)
		f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusDraft), nil)
		f.claims.On("Update", mock.Anything, mock.Anything).Return(nil, repository.ErrDuplicate)

		_, err := f.svc.Edit(context.Background(), lecturer, "claim-1", ClaimInput{MonthKey: "2025-02", Hours: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, claim.ErrDuplicateMonth)
	})
}

func TestClaimService_Get(t *testing.T) {
	t.Run("owner sees attachments", func(t *testing.T) {
		f := newClaimFixture(t)
		f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusPending), nil)
		f.docs.On("ListByClaim", mock.Anything, "claim-1").Return([]model.Document{{ID: "d1"}, {ID: "d2"}}, nil)

		c, err := f.svc.Get(context.Background(), lecturer, "claim-1")

		require.NoError(t, err)
		assert.Len(t, c.Attachments, 2)
		f.assertExpectations(t)
	})

	t.Run("foreign claim is not found", func(t *testing.T) {
		f := newClaimFixture(t)
		f.claims.On("FindByID", mock.Anything, "claim-1").Return(storedClaim(model.StatusPending), nil)

		_, err := f.svc.Get(context.Background(), otherLect, "claim-1")
		assert.ErrorIs(t, err, claim.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		f := newClaimFixture(t)
		_, err := f.svc.Get(context.Background(), lecturer, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestClaimService_Queue(t *testing.T) {
	t1 := fixedNow.Add(-2 * time.Hour)
	t2 := fixedNow.Add(-time.Hour)

	tests := []struct {
		name       string
		actor      model.Principal
		setupMocks func(f *claimFixture)
		wantIDs    []string
		wantErr    error
	}{
		{
			name:  "coordinator queue oldest first",
			actor: coordinator,
			setupMocks: func(f *claimFixture) {
				f.claims.On("ListByStatus", mock.Anything, model.StatusPending).Return([]model.Claim{
					{ID: "b", SubmittedAt: &t2},
					{ID: "c", SubmittedAt: &t1},
					{ID: "a", SubmittedAt: &t2},
				}, nil)
			},
			wantIDs: []string{"c", "a", "b"},
		},
		{
			name:  "manager queue",
			actor: manager,
			setupMocks: func(f *claimFixture) {
				f.claims.On("ListByStatus", mock.Anything, model.StatusVerifiedByCoordinator).Return([]model.Claim{}, nil)
			},
			wantIDs: []string{},
		},
		{
			name:  "hr queue",
			actor: hrUser,
			setupMocks: func(f *claimFixture) {
				f.claims.On("ListByStatus", mock.Anything, model.StatusApprovedByManager).Return([]model.Claim{{ID: "x", SubmittedAt: &t1}}, nil)
			},
			wantIDs: []string{"x"},
		},
		{
			name:       "lecturers have no queue",
			actor:      lecturer,
			setupMocks: func(f *claimFixture) {},
			wantErr:    claim.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClaimFixture(t)
			tt.setupMocks(f)

			got, err := f.svc.Queue(context.Background(), tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			f.assertExpectations(t)
		})
	}
}

func TestClaimService_Quote(t *testing.T) {
	f := newClaimFixture(t)

	q, err := f.svc.Quote(context.Background(), lecturer, ClaimInput{MonthKey: "2025-03", Entries: []byte(threeEntries)})

	require.NoError(t, err)
	assert.Equal(t, "22.5", q.Hours.String())
	assert.Equal(t, "100", q.Rate.String())
	assert.Equal(t, "2250.00", q.Amount.StringFixed(2))

	_, err = f.svc.Quote(context.Background(), lecturer, ClaimInput{MonthKey: "2025-13"})
	var vErr *claim.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestClaimService_Overview(t *testing.T) {
	f := newClaimFixture(t)
	filter := repository.ClaimFilter{MonthKey: "2025-03"}
	f.claims.On("List", mock.Anything, filter, repository.PageQuery{Limit: 20, Offset: 0}).
		Return(&repository.PageResult[model.Claim]{Items: []model.Claim{*storedClaim(model.StatusPending)}, Total: 1}, nil)

	res, err := f.svc.Overview(context.Background(), hrUser, filter, 0, -5)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	f.assertExpectations(t)

	_, err = f.svc.Overview(context.Background(), lecturer, filter, 10, 0)
	assert.ErrorIs(t, err, claim.ErrForbidden)
}

func TestClaimService_Report(t *testing.T) {
	tests := []struct {
		name       string
		actor      model.Principal
		filter     ReportFilter
		setupMocks func(f *claimFixture)
		wantErr    error
		wantErrAs  any
	}{
		{
			name:   "defaults to approved claims",
			actor:  hrUser,
			filter: ReportFilter{MonthKey: " 2025-03 "},
			setupMocks: func(f *claimFixture) {
				f.claims.On("Report", mock.Anything, repository.ClaimFilter{Status: model.StatusApprovedByManager, MonthKey: "2025-03"}).
					Return([]model.ClaimReportRow{{ContractorName: "Ada Lovelace"}}, nil)
			},
		},
		{
			name:   "all statuses",
			actor:  hrUser,
			filter: ReportFilter{Status: ReportAllStatuses},
			setupMocks: func(f *claimFixture) {
				f.claims.On("Report", mock.Anything, repository.ClaimFilter{}).Return([]model.ClaimReportRow{}, nil)
			},
		},
		{
			name:   "explicit status",
			actor:  hrUser,
			filter: ReportFilter{Status: "FinalisedByHR"},
			setupMocks: func(f *claimFixture) {
				f.claims.On("Report", mock.Anything, repository.ClaimFilter{Status: model.StatusFinalisedByHR}).Return([]model.ClaimReportRow{}, nil)
			},
		},
		{
			name:       "unknown status",
			actor:      hrUser,
			filter:     ReportFilter{Status: "Approved"},
			setupMocks: func(f *claimFixture) {},
			wantErrAs:  new(*claim.ValidationError),
		},
		{
			name:       "hr only",
			actor:      manager,
			setupMocks: func(f *claimFixture) {},
			wantErr:    claim.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClaimFixture(t)
			tt.setupMocks(f)

			rows, err := f.svc.Report(context.Background(), tt.actor, tt.filter)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrAs != nil:
				assert.ErrorAs(t, err, tt.wantErrAs)
			default:
				require.NoError(t, err)
				assert.NotNil(t, rows)
			}
			f.assertExpectations(t)
		})
	}
}

func TestClaimService_ReportMonthsAndListMine(t *testing.T) {
	f := newClaimFixture(t)
	f.claims.On("ReportMonths", mock.Anything).Return([]string{"2025-04", "2025-03"}, nil)
	f.claims.On("ListByContractor", mock.Anything, "u1").Return([]model.Claim{*storedClaim(model.StatusDraft)}, nil)

	months, err := f.svc.ReportMonths(context.Background(), hrUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-04", "2025-03"}, months)

	_, err = f.svc.ReportMonths(context.Background(), coordinator)
	assert.ErrorIs(t, err, claim.ErrForbidden)

	mine, err := f.svc.ListMine(context.Background(), lecturer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	f.assertExpectations(t)
}

func TestClaimService_ReadOperationsAreTraced(t *testing.T) {
	f := newClaimFixture(t)
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	f.svc.tracer = tp.Tracer("claimflow/internal/service")

	f.claims.On("ListByContractor", mock.Anything, "u1").Return([]model.Claim{}, nil)
	f.claims.On("List", mock.Anything, repository.ClaimFilter{}, repository.PageQuery{Limit: 20}).
		Return(&repository.PageResult[model.Claim]{}, nil)
	f.claims.On("ReportMonths", mock.Anything).Return([]string{"2025-03"}, nil)

	ctx := context.Background()
	_, err := f.svc.ListMine(ctx, lecturer)
	require.NoError(t, err)
	_, err = f.svc.Overview(ctx, coordinator, repository.ClaimFilter{}, 0, 0)
	require.NoError(t, err)
	_, err = f.svc.Quote(ctx, lecturer, ClaimInput{MonthKey: "2025-03", Hours: decimal.RequireFromString("22.5")})
	require.NoError(t, err)
	_, err = f.svc.ReportMonths(ctx, hrUser)
	require.NoError(t, err)
	_, err = f.svc.ReportMonths(ctx, coordinator)
	require.ErrorIs(t, err, claim.ErrForbidden)

	spans := rec.Ended()
	require.Len(t, spans, 5)
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"ClaimService.ListMine",
		"ClaimService.Overview",
		"ClaimService.Quote",
		"ClaimService.ReportMonths",
		"ClaimService.ReportMonths",
	}, names)

	assert.Equal(t, codes.Unset, spans[3].Status().Code)
	assert.Equal(t, codes.Error, spans[4].Status().Code)
	assert.Contains(t, spans[4].Attributes(), attribute.String("principal.role", "Coordinator"))
	f.assertExpectations(t)
}

// The full lifecycle against an in-memory repository: a month with an active claim
// refuses a second claim, and only the edit-and-resubmit path reopens it.
func TestClaimService_Lifecycle(t *testing.T) {
	log, _ := test.NewNullLogger()
	repo := newMemClaims()
	docs := new(repoMocks.MockDocumentRepository)
	docs.On("ListByClaim", mock.Anything, mock.Anything).Return([]model.Document{}, nil)
	svc := NewClaimService(repo, docs, lock.Noop{}, log, nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, lecturer, ClaimInput{MonthKey: "2025-03", Entries: []byte(threeEntries)})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, c.Status)
	assert.Equal(t, "2250", c.Amount().String())

	c, err = svc.Transition(ctx, lecturer, c.ID, claim.ActionSubmit, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, c.Status)
	assert.NotNil(t, c.SubmittedAt)

	_, err = svc.SubmitNew(ctx, lecturer, ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, claim.ErrDuplicateMonth)

	c, err = svc.Transition(ctx, coordinator, c.ID, claim.ActionCoordinatorReject, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, c.Status)
	assert.Equal(t, claim.DefaultCoordinatorRejectRemark, *c.ReviewerRemark)

	_, err = svc.Create(ctx, lecturer, ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, claim.ErrDuplicateMonth)

	c, err = svc.Edit(ctx, lecturer, c.ID, ClaimInput{MonthKey: "2025-03", Hours: decimal.NewFromInt(20)})
	require.NoError(t, err)
	c, err = svc.Transition(ctx, lecturer, c.ID, claim.ActionSubmit, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, c.Status)
	assert.Nil(t, c.RejectedAt)

	for _, step := range []struct {
		p      model.Principal
		action claim.Action
		want   model.ClaimStatus
	}{
		{coordinator, claim.ActionVerify, model.StatusVerifiedByCoordinator},
		{manager, claim.ActionApprove, model.StatusApprovedByManager},
		{hrUser, claim.ActionFinalise, model.StatusFinalisedByHR},
	} {
		c, err = svc.Transition(ctx, step.p, c.ID, step.action, "")
		require.NoError(t, err)
		assert.Equal(t, step.want, c.Status)
	}
	assert.Equal(t, "2000", c.Amount().String())

	var illegal *claim.IllegalTransitionError
	_, err = svc.Transition(ctx, lecturer, c.ID, claim.ActionSubmit, "")
	assert.ErrorAs(t, err, &illegal)
}
