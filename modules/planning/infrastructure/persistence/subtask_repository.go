package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/subtask"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	subTaskFindQuery = `
        SELECT st.id, st.objective_id, st.title, st.description, st.done, st.created_at, st.updated_at
        FROM sub_tasks st`

	subTaskInsertQuery = `
        INSERT INTO sub_tasks (id, objective_id, title, description, done, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	subTaskUpdateQuery = `
        UPDATE sub_tasks
        SET title = $2, description = $3, done = $4, updated_at = $5
        WHERE id = $1`

	subTaskDeletePersonsQuery    = `DELETE FROM persons WHERE sub_task_id = $1`
	subTaskDeleteMeetingsQuery   = `DELETE FROM meetings WHERE sub_task_id = $1`
	subTaskDeleteActivitiesQuery = `DELETE FROM activities WHERE sub_task_id = $1`
	subTaskDeleteQuery           = `DELETE FROM sub_tasks WHERE id = $1`
)

type PgSubTaskRepository struct{}

func NewSubTaskRepository() subtask.Repository {
	return &PgSubTaskRepository{}
}

func (g *PgSubTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*subtask.SubTask, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var st models.SubTask
	err = tx.QueryRow(ctx, subTaskFindQuery+` WHERE st.id = $1`, id.String()).Scan(
		&st.ID, &st.ObjectiveID, &st.Title, &st.Description, &st.Done, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subtask.ErrSubTaskNotFound
		}
		return nil, errors.Wrap(err, "failed to query sub-task")
	}
	return toDomainSubTask(&st)
}

func (g *PgSubTaskRepository) GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*subtask.SubTask, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, subTaskFindQuery+` WHERE st.objective_id = $1 ORDER BY st.created_at`, objectiveID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sub-tasks")
	}
	defer rows.Close()

	out := make([]*subtask.SubTask, 0)
	for rows.Next() {
		var st models.SubTask
		if err := rows.Scan(
			&st.ID, &st.ObjectiveID, &st.Title, &st.Description, &st.Done, &st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan sub-task")
		}
		entity, err := toDomainSubTask(&st)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgSubTaskRepository) Create(ctx context.Context, data *subtask.SubTask) (*subtask.SubTask, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		subTaskInsertQuery,
		data.ID.String(),
		data.ObjectiveID.String(),
		data.Title,
		data.Description,
		data.Done,
		data.CreatedAt,
		data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert sub-task")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgSubTaskRepository) Update(ctx context.Context, data *subtask.SubTask) (*subtask.SubTask, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		subTaskUpdateQuery,
		data.ID.String(),
		data.Title,
		data.Description,
		data.Done,
		data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update sub-task")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgSubTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, query := range []string{
		subTaskDeletePersonsQuery,
		subTaskDeleteMeetingsQuery,
		subTaskDeleteActivitiesQuery,
		subTaskDeleteQuery,
	} {
		if _, err := tx.Exec(ctx, query, id.String()); err != nil {
			return errors.Wrap(err, "failed to delete sub-task")
		}
	}
	return nil
}
