package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type FindParams struct {
	CompanyID *uuid.UUID
	Limit     int
	Offset    int
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, data *User) (*User, error)
	Update(ctx context.Context, data *User) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
