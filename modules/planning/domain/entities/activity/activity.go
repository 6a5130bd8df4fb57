package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrActivityNotFound = errors.New("activity not found")

// Activity is a daily or weekly action planned under a sub-task.
type Activity struct {
	ID        uuid.UUID
	SubTaskID uuid.UUID
	Title     string
	Cadence   string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Activity, error)
	GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*Activity, error)
	Create(ctx context.Context, data *Activity) (*Activity, error)
	Update(ctx context.Context, data *Activity) (*Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
