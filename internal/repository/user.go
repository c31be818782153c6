package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"claimflow/internal/model"
)

// UserRepository persists accounts and their hourly rates.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)
	// UpdateRate sets a user's hourly rate; ErrNotFound when the user does not exist.
	UpdateRate(ctx context.Context, id string, rate decimal.Decimal) error
}
