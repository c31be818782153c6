package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"claimflow/internal/claim"
	"claimflow/internal/lock"
	"claimflow/internal/model"
	"claimflow/internal/repository"
)

var tracer = otel.Tracer("claimflow/internal/service")

// ClaimInput is what a lecturer supplies when creating or editing a claim.
// When Entries is non-empty the hours are aggregated from it and Hours is ignored.
type ClaimInput struct {
	MonthKey string
	Hours    decimal.Decimal
	Entries  []byte
	Notes    *string
}

// Quote is the priced preview of a claim that has not been saved.
type Quote struct {
	MonthKey string          `json:"month_key"`
	Hours    decimal.Decimal `json:"hours"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// ReportFilter selects claims for the HR report. An empty Status means
// ApprovedByManager; "all" disables status filtering.
type ReportFilter struct {
	MonthKey string
	Status   string
}

// ReportAllStatuses disables status filtering in ReportFilter.
const ReportAllStatuses = "all"

// ClaimListResult is the service-level DTO for paginated claims.
type ClaimListResult struct {
	Items []model.Claim `json:"data"`
	Total int           `json:"total"`
}

// ClaimService is the workflow boundary. Every operation takes the acting principal explicitly;
// claims a principal may not see are reported as claim.ErrNotFound.
type ClaimService interface {
	// Create stores a new Draft for the acting lecturer.
	Create(ctx context.Context, p model.Principal, in ClaimInput) (*model.Claim, error)
	// SubmitNew creates a claim and submits it in one step.
	SubmitNew(ctx context.Context, p model.Principal, in ClaimInput) (*model.Claim, error)
	Get(ctx context.Context, p model.Principal, id string) (*model.Claim, error)
	ListMine(ctx context.Context, p model.Principal) ([]model.Claim, error)
	// Edit changes a Draft or Rejected claim in place.
	Edit(ctx context.Context, p model.Principal, id string, in ClaimInput) (*model.Claim, error)
	// Transition applies a workflow action other than edit.
	Transition(ctx context.Context, p model.Principal, id string, action claim.Action, remark string) (*model.Claim, error)
	// Queue lists the claims waiting on the principal's review stage, oldest first.
	Queue(ctx context.Context, p model.Principal) ([]model.Claim, error)
	Overview(ctx context.Context, p model.Principal, f repository.ClaimFilter, limit, offset int) (*ClaimListResult, error)
	Quote(ctx context.Context, p model.Principal, in ClaimInput) (*Quote, error)
	Report(ctx context.Context, p model.Principal, f ReportFilter) ([]model.ClaimReportRow, error)
	ReportMonths(ctx context.Context, p model.Principal) ([]string, error)
}

type claimService struct {
	claims  repository.ClaimRepository
	docs    repository.DocumentRepository
	locker  lock.Locker
	agg     *claim.Aggregator
	log     logrus.FieldLogger
	metrics *Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewClaimService constructs a new ClaimService. metrics may be nil.
func NewClaimService(
	claims repository.ClaimRepository,
	docs repository.DocumentRepository,
	locker lock.Locker,
	log logrus.FieldLogger,
	metrics *Metrics,
) ClaimService {
	log = log.WithField("component", "claim_service")
	return &claimService{
		claims:  claims,
		docs:    docs,
		locker:  locker,
		agg:     claim.NewAggregator(log),
		log:     log,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

func (s *claimService) startSpan(ctx context.Context, name string, p model.Principal) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "ClaimService."+name, trace.WithAttributes(
		attribute.String("principal.id", p.UserID),
		attribute.String("principal.role", string(p.Role)),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// isUserFacing reports whether err is an expected workflow outcome rather than a fault.
func isUserFacing(err error) bool {
	var vErr *claim.ValidationError
	var tErr *claim.IllegalTransitionError
	switch {
	case errors.As(err, &vErr), errors.As(err, &tErr):
		return true
	case errors.Is(err, claim.ErrNotFound), errors.Is(err, claim.ErrForbidden),
		errors.Is(err, claim.ErrDuplicateMonth), errors.Is(err, claim.ErrMalformedEntries),
		errors.Is(err, claim.ErrUnknownAction), errors.Is(err, ErrConflict), errors.Is(err, ErrBusy):
		return true
	}
	return false
}

func (s *claimService) record(action claim.Action, c *model.Claim, p model.Principal, err error) {
	fields := logrus.Fields{
		"event":          "claim_transition",
		"action":         string(action),
		"principal_id":   p.UserID,
		"principal_role": string(p.Role),
	}
	if c != nil {
		fields["claim_id"] = c.ID
		fields["status"] = string(c.Status)
		fields["month_key"] = c.MonthKey
	}
	switch {
	case err == nil:
		s.metrics.observe(string(action), resultOK)
		s.log.WithFields(fields).Info("claim transition applied")
	case isUserFacing(err):
		s.metrics.observe(string(action), resultRejected)
		s.log.WithFields(fields).WithError(err).Info("claim transition refused")
	default:
		s.metrics.observe(string(action), resultError)
		s.log.WithFields(fields).WithError(err).Error("claim transition failed")
	}
}

// changes resolves the hours for in, aggregating raw entries when present.
func (s *claimService) changes(in ClaimInput) (claim.Changes, error) {
	monthKey := strings.TrimSpace(in.MonthKey)
	hours := in.Hours
	if len(in.Entries) > 0 {
		total, err := s.agg.TotalJSON(monthKey, in.Entries)
		if err != nil {
			return claim.Changes{}, err
		}
		hours = total
	}
	return claim.Changes{MonthKey: monthKey, Hours: hours, Notes: in.Notes}, nil
}

func (s *claimService) Create(ctx context.Context, p model.Principal, in ClaimInput) (c *model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "Create", p)
	defer func() { endSpan(span, err) }()

	c, err = s.create(ctx, p, in, false)
	s.record("create", c, p, err)
	return c, err
}

func (s *claimService) SubmitNew(ctx context.Context, p model.Principal, in ClaimInput) (c *model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "SubmitNew", p)
	defer func() { endSpan(span, err) }()

	c, err = s.create(ctx, p, in, true)
	s.record(claim.ActionSubmit, c, p, err)
	return c, err
}

// create holds the (contractor, month) lock across the existence check and insert.
// Any existing claim for the month blocks a new one; Rejected claims are edited in place.
func (s *claimService) create(ctx context.Context, p model.Principal, in ClaimInput, submit bool) (*model.Claim, error) {
	ch, err := s.changes(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	draft, err := claim.NewDraft(p, ch, now)
	if err != nil {
		return nil, err
	}
	draft.ID = uuid.NewString()
	if submit {
		if err := claim.Apply(draft, p, claim.Transition{Action: claim.ActionSubmit}, now); err != nil {
			return nil, err
		}
	}

	release, err := s.locker.Acquire(ctx, lock.ClaimKey(p.UserID, draft.MonthKey))
	if err != nil {
		if errors.Is(err, lock.ErrBusy) {
			return nil, ErrBusy
		}
		return nil, fmt.Errorf("acquire claim lock: %w", err)
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			s.log.WithError(rerr).WithField("event", "lock_release_failed").Warn("could not release claim lock")
		}
	}()

	existing, err := s.claims.FindByContractorMonth(ctx, p.UserID, draft.MonthKey)
	switch {
	case err == nil:
		s.log.WithFields(logrus.Fields{
			"event":      "duplicate_month",
			"claim_id":   existing.ID,
			"status":     string(existing.Status),
			"month_key":  existing.MonthKey,
			"contractor": p.UserID,
		}).Info("claim already exists for month")
		return nil, claim.ErrDuplicateMonth
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check existing claim: %w", err)
	}

	stored, err := s.claims.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, claim.ErrDuplicateMonth
		}
		return nil, fmt.Errorf("save claim: %w", err)
	}
	stored.Attachments = []model.Document{}
	return stored, nil
}

// load fetches a claim the principal may see.
func (s *claimService) load(ctx context.Context, p model.Principal, id string) (*model.Claim, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.claims.FindByID(ctx, id)
	if err != nil {
		return nil, claimNotFound(err)
	}
	if err := claim.CanView(c, p); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *claimService) withAttachments(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	docs, err := s.docs.ListByClaim(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	c.Attachments = docs
	return c, nil
}

func (s *claimService) Get(ctx context.Context, p model.Principal, id string) (c *model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "Get", p)
	defer func() { endSpan(span, err) }()

	c, err = s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return s.withAttachments(ctx, c)
}

func (s *claimService) ListMine(ctx context.Context, p model.Principal) (claims []model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "ListMine", p)
	defer func() { endSpan(span, err) }()

	return s.claims.ListByContractor(ctx, p.UserID)
}

// save persists a transitioned claim, translating optimistic-lock and uniqueness failures.
func (s *claimService) save(ctx context.Context, c *model.Claim) (*model.Claim, error) {
	stored, err := s.claims.Update(ctx, c)
	switch {
	case err == nil:
		return s.withAttachments(ctx, stored)
	case errors.Is(err, repository.ErrVersionConflict):
		return nil, ErrConflict
	case errors.Is(err, repository.ErrDuplicate):
		return nil, claim.ErrDuplicateMonth
	case errors.Is(err, repository.ErrNotFound):
		return nil, claim.ErrNotFound
	}
	return nil, fmt.Errorf("update claim: %w", err)
}

func (s *claimService) Edit(ctx context.Context, p model.Principal, id string, in ClaimInput) (c *model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "Edit", p)
	defer func() { endSpan(span, err) }()
	defer func() { s.record(claim.ActionEdit, c, p, err) }()

	c, err = s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	ch, err := s.changes(in)
	if err != nil {
		return nil, err
	}
	if err = claim.Apply(c, p, claim.Transition{Action: claim.ActionEdit, Changes: &ch}, s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

func (s *claimService) Transition(ctx context.Context, p model.Principal, id string, action claim.Action, remark string) (c *model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "Transition", p)
	span.SetAttributes(attribute.String("claim.id", id), attribute.String("claim.action", string(action)))
	defer func() { endSpan(span, err) }()
	defer func() { s.record(action, c, p, err) }()

	if action == claim.ActionEdit {
		return nil, claim.ErrUnknownAction
	}
	c, err = s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err = claim.Apply(c, p, claim.Transition{Action: action, Remark: remark}, s.now()); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

func (s *claimService) Queue(ctx context.Context, p model.Principal) (claims []model.Claim, err error) {
	ctx, span := s.startSpan(ctx, "Queue", p)
	defer func() { endSpan(span, err) }()

	status, ok := claim.QueueStatus(p.Role)
	if !ok {
		return nil, claim.ErrForbidden
	}
	claims, err = s.claims.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	claim.SortQueue(claims)
	return claims, nil
}

func (s *claimService) Overview(ctx context.Context, p model.Principal, f repository.ClaimFilter, limit, offset int) (res *ClaimListResult, err error) {
	ctx, span := s.startSpan(ctx, "Overview", p)
	defer func() { endSpan(span, err) }()

	if !p.Role.IsReviewer() {
		return nil, claim.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	page, err := s.claims.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ClaimListResult{Items: page.Items, Total: page.Total}, nil
}

func (s *claimService) Quote(ctx context.Context, p model.Principal, in ClaimInput) (q *Quote, err error) {
	_, span := s.startSpan(ctx, "Quote", p)
	defer func() { endSpan(span, err) }()

	ch, err := s.changes(in)
	if err != nil {
		return nil, err
	}
	c, err := claim.NewDraft(p, ch, s.now())
	if err != nil {
		return nil, err
	}
	return &Quote{MonthKey: c.MonthKey, Hours: c.Hours, Rate: c.Rate, Amount: c.Amount()}, nil
}

func (s *claimService) Report(ctx context.Context, p model.Principal, f ReportFilter) (rows []model.ClaimReportRow, err error) {
	ctx, span := s.startSpan(ctx, "Report", p)
	defer func() { endSpan(span, err) }()

	if p.Role != model.RoleHR {
		return nil, claim.ErrForbidden
	}
	rf := repository.ClaimFilter{MonthKey: strings.TrimSpace(f.MonthKey)}
	switch f.Status {
	case "":
		rf.Status = model.StatusApprovedByManager
	case ReportAllStatuses:
	default:
		st, err := model.ParseClaimStatus(f.Status)
		if err != nil {
			return nil, &claim.ValidationError{Violations: claim.Violations{{Field: "status", Message: err.Error()}}}
		}
		rf.Status = st
	}
	return s.claims.Report(ctx, rf)
}

func (s *claimService) ReportMonths(ctx context.Context, p model.Principal) (months []string, err error) {
	ctx, span := s.startSpan(ctx, "ReportMonths", p)
	defer func() { endSpan(span, err) }()

	if p.Role != model.RoleHR {
		return nil, claim.ErrForbidden
	}
	return s.claims.ReportMonths(ctx)
}
