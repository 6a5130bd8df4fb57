package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("company not found")

// Company is the tenant boundary. Every domain object except the
// cross-company super admin view belongs to exactly one company.
type Company struct {
	id        uuid.UUID
	name      string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Company)

func WithID(id uuid.UUID) Option {
	return func(c *Company) {
		c.id = id
	}
}

func WithIsActive(isActive bool) Option {
	return func(c *Company) {
		c.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *Company) {
		c.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *Company) {
		c.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Company {
	c := &Company{
		id:        uuid.New(),
		name:      name,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Company) ID() uuid.UUID {
	return c.id
}

func (c *Company) Name() string {
	return c.name
}

func (c *Company) IsActive() bool {
	return c.isActive
}

func (c *Company) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Company) UpdatedAt() time.Time {
	return c.updatedAt
}

type Repository interface {
	GetAll(ctx context.Context) ([]*Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Create(ctx context.Context, data *Company) (*Company, error)
	Update(ctx context.Context, data *Company) (*Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
