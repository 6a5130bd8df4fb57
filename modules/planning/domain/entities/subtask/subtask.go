package subtask

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSubTaskNotFound = errors.New("sub-task not found")

// SubTask breaks an objective down. Its owner, company and governing month
// are those of the parent objective and are never stored here.
type SubTask struct {
	ID          uuid.UUID
	ObjectiveID uuid.UUID
	Title       string
	Description string
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SubTask, error)
	GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*SubTask, error)
	Create(ctx context.Context, data *SubTask) (*SubTask, error)
	Update(ctx context.Context, data *SubTask) (*SubTask, error)
	// Delete removes the sub-task and cascades to its activities, meetings
	// and people.
	Delete(ctx context.Context, id uuid.UUID) error
}
