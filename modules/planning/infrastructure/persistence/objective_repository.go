package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/aggregates/objective"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	objectiveFindQuery = `
        SELECT
            o.id,
            o.company_id,
            o.owner_id,
            o.month,
            o.title,
            o.description,
            o.confirmed_at,
            o.created_at,
            o.updated_at
        FROM objectives o`

	objectiveCountQuery = `SELECT COUNT(o.id) FROM objectives o`

	objectiveInsertQuery = `
        INSERT INTO objectives (id, company_id, owner_id, month, title, description, confirmed_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	objectiveUpdateQuery = `
        UPDATE objectives
        SET title = $2, description = $3, confirmed_at = $4, updated_at = $5
        WHERE id = $1`

	// Children are removed in the same transaction, deepest first, so a
	// failed cascade leaves no orphans.
	objectiveDeletePersonsQuery = `
        DELETE FROM persons WHERE sub_task_id IN (SELECT id FROM sub_tasks WHERE objective_id = $1)`
	objectiveDeleteMeetingsQuery = `
        DELETE FROM meetings WHERE sub_task_id IN (SELECT id FROM sub_tasks WHERE objective_id = $1)`
	objectiveDeleteActivitiesQuery = `
        DELETE FROM activities WHERE sub_task_id IN (SELECT id FROM sub_tasks WHERE objective_id = $1)`
	objectiveDeleteSubTasksQuery = `DELETE FROM sub_tasks WHERE objective_id = $1`
	objectiveDeleteQuery         = `DELETE FROM objectives WHERE id = $1`
)

type PgObjectiveRepository struct{}

func NewObjectiveRepository() objective.Repository {
	return &PgObjectiveRepository{}
}

func objectiveFilters(params *objective.FindParams) (string, []interface{}) {
	where := ""
	args := []interface{}{}
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if params == nil {
		return where, args
	}
	if params.CompanyID != nil {
		args = append(args, params.CompanyID.String())
		and(fmt.Sprintf("o.company_id = $%d", len(args)))
	}
	if params.OwnerID != nil {
		args = append(args, params.OwnerID.String())
		and(fmt.Sprintf("o.owner_id = $%d", len(args)))
	}
	if params.Month != nil {
		args = append(args, params.Month.String())
		and(fmt.Sprintf("o.month = $%d", len(args)))
	}
	return where, args
}

func (g *PgObjectiveRepository) Count(ctx context.Context, params *objective.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := objectiveFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, objectiveCountQuery+where, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count objectives")
	}
	return count, nil
}

func (g *PgObjectiveRepository) GetPaginated(ctx context.Context, params *objective.FindParams) ([]*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	where, args := objectiveFilters(params)
	query := objectiveFindQuery + where + ` ORDER BY o.month, o.created_at`
	if params != nil && params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params != nil && params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query objectives")
	}
	defer rows.Close()

	out := make([]*objective.Objective, 0)
	for rows.Next() {
		var o models.Objective
		if err := rows.Scan(
			&o.ID,
			&o.CompanyID,
			&o.OwnerID,
			&o.Month,
			&o.Title,
			&o.Description,
			&o.ConfirmedAt,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan objective")
		}
		entity, err := toDomainObjective(&o)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgObjectiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var o models.Objective
	err = tx.QueryRow(ctx, objectiveFindQuery+` WHERE o.id = $1`, id.String()).Scan(
		&o.ID,
		&o.CompanyID,
		&o.OwnerID,
		&o.Month,
		&o.Title,
		&o.Description,
		&o.ConfirmedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, objective.ErrObjectiveNotFound
		}
		return nil, errors.Wrap(err, "failed to query objective")
	}
	return toDomainObjective(&o)
}

func (g *PgObjectiveRepository) Create(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	dbObjective := toDBObjective(data)
	if _, err := tx.Exec(
		ctx,
		objectiveInsertQuery,
		dbObjective.ID,
		dbObjective.CompanyID,
		dbObjective.OwnerID,
		dbObjective.Month,
		dbObjective.Title,
		dbObjective.Description,
		dbObjective.ConfirmedAt,
		dbObjective.CreatedAt,
		dbObjective.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert objective")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgObjectiveRepository) Update(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	dbObjective := toDBObjective(data)
	if _, err := tx.Exec(
		ctx,
		objectiveUpdateQuery,
		dbObjective.ID,
		dbObjective.Title,
		dbObjective.Description,
		dbObjective.ConfirmedAt,
		dbObjective.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update objective")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgObjectiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, query := range []string{
		objectiveDeletePersonsQuery,
		objectiveDeleteMeetingsQuery,
		objectiveDeleteActivitiesQuery,
		objectiveDeleteSubTasksQuery,
		objectiveDeleteQuery,
	} {
		if _, err := tx.Exec(ctx, query, id.String()); err != nil {
			return errors.Wrap(err, "failed to delete objective")
		}
	}
	return nil
}
