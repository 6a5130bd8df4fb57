package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// TargetType distinguishes what a feedback annotates.
type TargetType string

const (
	// TargetObjective annotates a single objective.
	TargetObjective TargetType = "objective"
	// TargetMonthPlan annotates a user's whole month plan.
	TargetMonthPlan TargetType = "month_plan"
)

// Feedback is a supervisor annotation. For visibility purposes it belongs to
// the target's owner, not to the author who wrote it.
type Feedback struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	AuthorID  uuid.UUID
	Target    TargetType
	// ObjectiveID is set when Target is TargetObjective.
	ObjectiveID *uuid.UUID
	// TargetUserID and Month are set when Target is TargetMonthPlan.
	TargetUserID *uuid.UUID
	Month        *planmonth.Month
	Body         string
	CreatedAt    time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*Feedback, error)
	GetByMonthPlan(ctx context.Context, userID uuid.UUID, month planmonth.Month) ([]*Feedback, error)
	Create(ctx context.Context, data *Feedback) (*Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
