package meeting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMeetingNotFound = errors.New("meeting not found")

// Meeting is a planned meeting under a sub-task.
type Meeting struct {
	ID          uuid.UUID
	SubTaskID   uuid.UUID
	Title       string
	ScheduledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Meeting, error)
	GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*Meeting, error)
	Create(ctx context.Context, data *Meeting) (*Meeting, error)
	Update(ctx context.Context, data *Meeting) (*Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
