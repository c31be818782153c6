package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"claimflow/internal/claim"
	"claimflow/internal/model"
	"claimflow/internal/repository"
)

// NewUser is the HR input for creating an account.
type NewUser struct {
	UserName   string
	Email      string
	FirstName  string
	LastName   string
	Role       model.Role
	HourlyRate decimal.Decimal
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items []model.User `json:"data"`
	Total int          `json:"total"`
}

// PrincipalResolver turns an authenticated user id into the acting principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID string) (model.Principal, error)
}

// UserService resolves principals and lets HR administer accounts and rates.
type UserService interface {
	PrincipalResolver
	List(ctx context.Context, p model.Principal, limit, offset int) (*UserListResult, error)
	Create(ctx context.Context, p model.Principal, in NewUser) (*model.User, error)
	SetRate(ctx context.Context, p model.Principal, userID string, rate decimal.Decimal) error
}

type userService struct {
	users repository.UserRepository
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository, log logrus.FieldLogger) UserService {
	return &userService{users: users, log: log.WithField("component", "user_service"), now: time.Now}
}

var maxRate = decimal.NewFromInt(claim.MaxHourlyRate)

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(maxRate)
}

func (s *userService) Resolve(ctx context.Context, userID string) (model.Principal, error) {
	if userID == "" {
		return model.Principal{}, ErrUnknownUser
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Principal{}, ErrUnknownUser
		}
		return model.Principal{}, err
	}
	return model.PrincipalFromUser(*u), nil
}

func (s *userService) List(ctx context.Context, p model.Principal, limit, offset int) (*UserListResult, error) {
	if p.Role != model.RoleHR {
		return nil, claim.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.users.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: res.Items, Total: res.Total}, nil
}

// Create adds an account. Only lecturers carry a rate; for other roles it is forced to zero.
func (s *userService) Create(ctx context.Context, p model.Principal, in NewUser) (*model.User, error) {
	if p.Role != model.RoleHR {
		return nil, claim.ErrForbidden
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	rate := in.HourlyRate
	if in.Role != model.RoleLecturer {
		rate = decimal.Zero
	}
	if !validRate(rate) {
		return nil, ErrInvalidRate
	}

	u, err := s.users.Create(ctx, &model.User{
		ID:         uuid.NewString(),
		UserName:   strings.TrimSpace(in.UserName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Role:       in.Role,
		HourlyRate: rate,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"event":   "user_created",
		"user_id": u.ID,
		"role":    string(u.Role),
		"by":      p.UserID,
	}).Info("user created")
	return u, nil
}

func (s *userService) SetRate(ctx context.Context, p model.Principal, userID string, rate decimal.Decimal) error {
	if p.Role != model.RoleHR {
		return claim.ErrForbidden
	}
	if !validRate(rate) {
		return ErrInvalidRate
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}
	if u.Role != model.RoleLecturer {
		return ErrNotLecturer
	}
	if err := s.users.UpdateRate(ctx, userID, rate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownUser
		}
		return err
	}

	s.log.WithFields(logrus.Fields{
		"event":   "rate_changed",
		"user_id": userID,
		"rate":    rate.String(),
		"by":      p.UserID,
	}).Info("hourly rate updated")
	return nil
}
