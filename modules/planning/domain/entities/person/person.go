package person

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPersonNotFound = errors.New("person not found")

// Person is a contact involved in a sub-task.
type Person struct {
	ID        uuid.UUID
	SubTaskID uuid.UUID
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Person, error)
	GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*Person, error)
	Create(ctx context.Context, data *Person) (*Person, error)
	Update(ctx context.Context, data *Person) (*Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
