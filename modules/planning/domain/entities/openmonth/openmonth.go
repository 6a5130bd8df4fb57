package openmonth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

var ErrOpenMonthNotFound = errors.New("open month not found")

// OpenMonth marks a future month a user has unlocked for planning. The
// current month is always implicitly open and never stored. Rows are created
// once and never mutated or deleted.
type OpenMonth struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Month     planmonth.Month
	CreatedAt time.Time
}

type Repository interface {
	// Get returns the open-month row for (userID, month), or
	// ErrOpenMonthNotFound.
	Get(ctx context.Context, userID uuid.UUID, month planmonth.Month) (*OpenMonth, error)
	Exists(ctx context.Context, userID uuid.UUID, month planmonth.Month) (bool, error)
	// ListByUser returns all months the user has opened, in calendar order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OpenMonth, error)
	// Create inserts the row; inserting an existing (userID, month) pair
	// returns the stored row unchanged.
	Create(ctx context.Context, data *OpenMonth) (*OpenMonth, error)
}
