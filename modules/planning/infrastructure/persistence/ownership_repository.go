package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

// Every resolve is a single query joining up to the owning objective, so a
// torn parent chain shows up as no rows rather than a stale answer.
const (
	ownershipObjectiveQuery = `
        SELECT o.owner_id, o.company_id, o.month
        FROM objectives o
        WHERE o.id = $1`

	ownershipSubTaskQuery = `
        SELECT o.owner_id, o.company_id, o.month
        FROM sub_tasks st
        JOIN objectives o ON o.id = st.objective_id
        WHERE st.id = $1`

	ownershipActivityQuery = `
        SELECT o.owner_id, o.company_id, o.month
        FROM activities a
        JOIN sub_tasks st ON st.id = a.sub_task_id
        JOIN objectives o ON o.id = st.objective_id
        WHERE a.id = $1`

	ownershipMeetingQuery = `
        SELECT o.owner_id, o.company_id, o.month
        FROM meetings m
        JOIN sub_tasks st ON st.id = m.sub_task_id
        JOIN objectives o ON o.id = st.objective_id
        WHERE m.id = $1`

	ownershipPersonQuery = `
        SELECT o.owner_id, o.company_id, o.month
        FROM persons p
        JOIN sub_tasks st ON st.id = p.sub_task_id
        JOIN objectives o ON o.id = st.objective_id
        WHERE p.id = $1`

	// Feedback belongs to its target's owner. Objective-target rows derive
	// everything from the objective; month-plan rows carry owner, company
	// and month themselves.
	ownershipFeedbackQuery = `
        SELECT
            COALESCE(o.owner_id, f.target_user_id),
            COALESCE(o.company_id, f.company_id),
            COALESCE(o.month, f.month)
        FROM feedback f
        LEFT JOIN objectives o ON o.id = f.objective_id
        WHERE f.id = $1
          AND (f.objective_id IS NULL OR o.id IS NOT NULL)`
)

type PgOwnershipRepository struct{}

func NewOwnershipRepository() access.Resolver {
	return &PgOwnershipRepository{}
}

func (g *PgOwnershipRepository) resolve(ctx context.Context, query string, id uuid.UUID) (access.Ownership, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return access.Ownership{}, err
	}
	var ownerID, companyID, month string
	err = tx.QueryRow(ctx, query, id.String()).Scan(&ownerID, &companyID, &month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.Ownership{}, access.ErrOwnershipNotFound
		}
		return access.Ownership{}, errors.Wrap(err, "failed to resolve ownership")
	}

	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return access.Ownership{}, errors.Wrap(err, "invalid owner id")
	}
	company, err := uuid.Parse(companyID)
	if err != nil {
		return access.Ownership{}, errors.Wrap(err, "invalid company id")
	}
	m, err := planmonth.Parse(month)
	if err != nil {
		return access.Ownership{}, errors.Wrap(err, "invalid month")
	}
	return access.Ownership{OwnerID: owner, CompanyID: company, Month: m}, nil
}

func (g *PgOwnershipRepository) ResolveObjective(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipObjectiveQuery, id)
}

func (g *PgOwnershipRepository) ResolveSubTask(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipSubTaskQuery, id)
}

func (g *PgOwnershipRepository) ResolveActivity(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipActivityQuery, id)
}

func (g *PgOwnershipRepository) ResolveMeeting(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipMeetingQuery, id)
}

func (g *PgOwnershipRepository) ResolvePerson(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipPersonQuery, id)
}

func (g *PgOwnershipRepository) ResolveFeedback(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return g.resolve(ctx, ownershipFeedbackQuery, id)
}
