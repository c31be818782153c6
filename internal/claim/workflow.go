package claim

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"claimflow/internal/model"
)

// Action names a requested workflow step.
type Action string

const (
	ActionSubmit            Action = "submit"
	ActionEdit              Action = "edit"
	ActionVerify            Action = "verify"
	ActionCoordinatorReject Action = "coordinator_reject"
	ActionApprove           Action = "approve"
	ActionManagerReject     Action = "manager_reject"
	ActionFinalise          Action = "finalise"
)

const (
	DefaultCoordinatorRejectRemark = "Rejected by Coordinator."
	DefaultApproveRemark           = "Approved by Academic Manager."
	DefaultManagerRejectRemark     = "Rejected by Academic Manager."
)

// Changes are the contractor-editable fields of a claim.
type Changes struct {
	MonthKey string
	Hours    decimal.Decimal
	Notes    *string
}

// Transition is a requested action plus its payload.
// Remark is used by reviewer actions; Changes only by ActionEdit.
type Transition struct {
	Action  Action
	Remark  string
	Changes *Changes
}

type rule struct {
	role  model.Role
	owner bool
	from  []model.ClaimStatus
}

var rules = map[Action]rule{
	ActionSubmit:            {role: model.RoleLecturer, owner: true, from: []model.ClaimStatus{model.StatusDraft, model.StatusRejected}},
	ActionEdit:              {role: model.RoleLecturer, owner: true, from: []model.ClaimStatus{model.StatusDraft, model.StatusRejected}},
	ActionVerify:            {role: model.RoleCoordinator, from: []model.ClaimStatus{model.StatusPending}},
	ActionCoordinatorReject: {role: model.RoleCoordinator, from: []model.ClaimStatus{model.StatusPending}},
	ActionApprove:           {role: model.RoleManager, from: []model.ClaimStatus{model.StatusVerifiedByCoordinator}},
	ActionManagerReject:     {role: model.RoleManager, from: []model.ClaimStatus{model.StatusVerifiedByCoordinator}},
	ActionFinalise:          {role: model.RoleHR, from: []model.ClaimStatus{model.StatusApprovedByManager}},
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := rules[a]; !ok {
		return "", ErrUnknownAction
	}
	return a, nil
}

// RequiredRole returns the role allowed to perform a.
func RequiredRole(a Action) (model.Role, bool) {
	r, ok := rules[a]
	return r.role, ok
}

// RejectActionFor maps a reviewer role to its reject action.
func RejectActionFor(role model.Role) (Action, bool) {
	switch role {
	case model.RoleCoordinator:
		return ActionCoordinatorReject, true
	case model.RoleManager:
		return ActionManagerReject, true
	}
	return "", false
}

// NewDraft builds a Draft claim owned by p. The rate always comes from p, never from the caller.
func NewDraft(p model.Principal, ch Changes, now time.Time) (*model.Claim, error) {
	if p.Role != model.RoleLecturer {
		return nil, ErrForbidden
	}
	now = now.UTC()
	c := &model.Claim{
		ContractorID: p.UserID,
		MonthKey:     strings.TrimSpace(ch.MonthKey),
		Hours:        ch.Hours,
		Rate:         p.HourlyRate,
		Status:       model.StatusDraft,
		Notes:        ch.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		Attachments:  []model.Document{},
	}
	if err := Check(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply performs t on c as p. On any error c is left untouched.
// Role, ownership and source state are checked in that order, then the result is validated.
func Apply(c *model.Claim, p model.Principal, t Transition, now time.Time) error {
	r, ok := rules[t.Action]
	if !ok {
		return ErrUnknownAction
	}
	if p.Role != r.role {
		return ErrForbidden
	}
	if r.owner && c.ContractorID != p.UserID {
		return ErrNotFound
	}
	if !hasStatus(r.from, c.Status) {
		return &IllegalTransitionError{Action: t.Action, From: c.Status, Required: r.from}
	}

	next := *c
	now = now.UTC()
	actor := p.UserID
	remark := strings.TrimSpace(t.Remark)

	switch t.Action {
	case ActionSubmit:
		next.Rate = p.HourlyRate
		next.Status = model.StatusPending
		next.SubmittedAt = &now
		// A resubmission starts a fresh review round.
		next.VerifiedAt, next.ApprovedAt, next.RejectedAt = nil, nil, nil
		next.CoordinatorID, next.ManagerID = nil, nil
	case ActionEdit:
		next.Rate = p.HourlyRate
		if ch := t.Changes; ch != nil {
			next.MonthKey = strings.TrimSpace(ch.MonthKey)
			next.Hours = ch.Hours
			next.Notes = ch.Notes
		}
	case ActionVerify:
		next.Status = model.StatusVerifiedByCoordinator
		next.VerifiedAt = &now
		next.CoordinatorID = &actor
		if remark != "" {
			next.ReviewerRemark = &remark
		}
	case ActionCoordinatorReject:
		next.Status = model.StatusRejected
		next.RejectedAt = &now
		next.CoordinatorID = &actor
		next.ReviewerRemark = remarkOr(remark, DefaultCoordinatorRejectRemark)
	case ActionApprove:
		next.Status = model.StatusApprovedByManager
		next.ApprovedAt = &now
		next.ManagerID = &actor
		next.ReviewerRemark = remarkOr(remark, DefaultApproveRemark)
	case ActionManagerReject:
		next.Status = model.StatusRejected
		next.RejectedAt = &now
		next.ManagerID = &actor
		next.ReviewerRemark = remarkOr(remark, DefaultManagerRejectRemark)
	case ActionFinalise:
		next.Status = model.StatusFinalisedByHR
	}
	next.UpdatedAt = now

	if err := Check(&next); err != nil {
		return err
	}
	*c = next
	return nil
}

// CanView returns ErrNotFound unless p owns c or reviews claims.
func CanView(c *model.Claim, p model.Principal) error {
	if p.Role.IsReviewer() {
		return nil
	}
	if p.Role == model.RoleLecturer && c.ContractorID == p.UserID {
		return nil
	}
	return ErrNotFound
}

// QueueStatus returns the status a reviewer role works from.
func QueueStatus(role model.Role) (model.ClaimStatus, bool) {
	switch role {
	case model.RoleCoordinator:
		return model.StatusPending, true
	case model.RoleManager:
		return model.StatusVerifiedByCoordinator, true
	case model.RoleHR:
		return model.StatusApprovedByManager, true
	}
	return "", false
}

// SortQueue orders claims oldest submission first, then by id. Unsubmitted claims go last.
func SortQueue(claims []model.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		a, b := claims[i].SubmittedAt, claims[j].SubmittedAt
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return claims[i].ID < claims[j].ID
	})
}

func remarkOr(remark, def string) *string {
	if remark == "" {
		remark = def
	}
	return &remark
}

func hasStatus(list []model.ClaimStatus, s model.ClaimStatus) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
