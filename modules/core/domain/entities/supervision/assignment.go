package supervision

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAssignmentNotFound = errors.New("supervision assignment not found")

// Assignment is a directed supervision edge (subordinate -> supervisor)
// scoped to one company. The company-wide edge set must stay acyclic and
// irreflexive; that is enforced at assignment time by walking the chain, not
// by a stored constraint.
type Assignment struct {
	id            uuid.UUID
	companyID     uuid.UUID
	subordinateID uuid.UUID
	supervisorID  uuid.UUID
	createdAt     time.Time
}

type Option func(*Assignment)

func WithID(id uuid.UUID) Option {
	return func(a *Assignment) {
		a.id = id
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(a *Assignment) {
		a.createdAt = createdAt
	}
}

func New(companyID, subordinateID, supervisorID uuid.UUID, opts ...Option) *Assignment {
	a := &Assignment{
		id:            uuid.New(),
		companyID:     companyID,
		subordinateID: subordinateID,
		supervisorID:  supervisorID,
		createdAt:     time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assignment) ID() uuid.UUID {
	return a.id
}

func (a *Assignment) CompanyID() uuid.UUID {
	return a.companyID
}

func (a *Assignment) SubordinateID() uuid.UUID {
	return a.subordinateID
}

func (a *Assignment) SupervisorID() uuid.UUID {
	return a.supervisorID
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

type Repository interface {
	// GetBySubordinate returns the supervision edge pointing up from the
	// given user within the company, or ErrAssignmentNotFound.
	GetBySubordinate(ctx context.Context, companyID, subordinateID uuid.UUID) (*Assignment, error)
	// Exists reports whether supervisor supervises subordinate in company.
	Exists(ctx context.Context, companyID, subordinateID, supervisorID uuid.UUID) (bool, error)
	// Save inserts or replaces the subordinate's edge within the company.
	Save(ctx context.Context, data *Assignment) (*Assignment, error)
	Delete(ctx context.Context, companyID, subordinateID uuid.UUID) error
}
