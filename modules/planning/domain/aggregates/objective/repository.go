package objective

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

var ErrObjectiveNotFound = errors.New("objective not found")

type FindParams struct {
	CompanyID *uuid.UUID
	OwnerID   *uuid.UUID
	Month     *planmonth.Month
	Limit     int
	Offset    int
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]*Objective, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Objective, error)
	Create(ctx context.Context, data *Objective) (*Objective, error)
	Update(ctx context.Context, data *Objective) (*Objective, error)
	// Delete removes the objective and cascades to its sub-tasks and their
	// activities, meetings and people.
	Delete(ctx context.Context, id uuid.UUID) error
}
