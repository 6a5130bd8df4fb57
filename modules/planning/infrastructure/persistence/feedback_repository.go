package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/feedback"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	feedbackFindQuery = `
        SELECT f.id, f.company_id, f.author_id, f.target, f.objective_id, f.target_user_id, f.month, f.body, f.created_at
        FROM feedback f`

	feedbackInsertQuery = `
        INSERT INTO feedback (id, company_id, author_id, target, objective_id, target_user_id, month, body, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	feedbackDeleteQuery = `DELETE FROM feedback WHERE id = $1`
)

type PgFeedbackRepository struct{}

func NewFeedbackRepository() feedback.Repository {
	return &PgFeedbackRepository{}
}

func (g *PgFeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var f models.Feedback
	err = tx.QueryRow(ctx, feedbackFindQuery+` WHERE f.id = $1`, id.String()).Scan(
		&f.ID, &f.CompanyID, &f.AuthorID, &f.Target, &f.ObjectiveID, &f.TargetUserID, &f.Month, &f.Body, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, feedback.ErrFeedbackNotFound
		}
		return nil, errors.Wrap(err, "failed to query feedback")
	}
	return toDomainFeedback(&f)
}

func (g *PgFeedbackRepository) GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*feedback.Feedback, error) {
	return g.list(ctx, feedbackFindQuery+` WHERE f.objective_id = $1 ORDER BY f.created_at`, objectiveID.String())
}

func (g *PgFeedbackRepository) GetByMonthPlan(ctx context.Context, userID uuid.UUID, month planmonth.Month) ([]*feedback.Feedback, error) {
	return g.list(
		ctx,
		feedbackFindQuery+` WHERE f.target_user_id = $1 AND f.month = $2 ORDER BY f.created_at`,
		userID.String(),
		month.String(),
	)
}

func (g *PgFeedbackRepository) list(ctx context.Context, query string, args ...interface{}) ([]*feedback.Feedback, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query feedback")
	}
	defer rows.Close()

	out := make([]*feedback.Feedback, 0)
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(
			&f.ID, &f.CompanyID, &f.AuthorID, &f.Target, &f.ObjectiveID, &f.TargetUserID, &f.Month, &f.Body, &f.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan feedback")
		}
		entity, err := toDomainFeedback(&f)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgFeedbackRepository) Create(ctx context.Context, data *feedback.Feedback) (*feedback.Feedback, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	dbFeedback := toDBFeedback(data)
	if _, err := tx.Exec(
		ctx,
		feedbackInsertQuery,
		dbFeedback.ID,
		dbFeedback.CompanyID,
		dbFeedback.AuthorID,
		dbFeedback.Target,
		dbFeedback.ObjectiveID,
		dbFeedback.TargetUserID,
		dbFeedback.Month,
		dbFeedback.Body,
		dbFeedback.CreatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert feedback")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgFeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, feedbackDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete feedback")
	}
	return nil
}
