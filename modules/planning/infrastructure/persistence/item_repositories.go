package persistence

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/activity"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/meeting"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/person"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	activityFindQuery = `
        SELECT a.id, a.sub_task_id, a.title, a.cadence, a.done, a.created_at, a.updated_at
        FROM activities a`
	activityInsertQuery = `
        INSERT INTO activities (id, sub_task_id, title, cadence, done, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	activityUpdateQuery = `
        UPDATE activities SET title = $2, cadence = $3, done = $4, updated_at = $5 WHERE id = $1`
	activityDeleteQuery = `DELETE FROM activities WHERE id = $1`

	meetingFindQuery = `
        SELECT m.id, m.sub_task_id, m.title, m.scheduled_at, m.created_at, m.updated_at
        FROM meetings m`
	meetingInsertQuery = `
        INSERT INTO meetings (id, sub_task_id, title, scheduled_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	meetingUpdateQuery = `
        UPDATE meetings SET title = $2, scheduled_at = $3, updated_at = $4 WHERE id = $1`
	meetingDeleteQuery = `DELETE FROM meetings WHERE id = $1`

	personFindQuery = `
        SELECT p.id, p.sub_task_id, p.name, p.notes, p.created_at, p.updated_at
        FROM persons p`
	personInsertQuery = `
        INSERT INTO persons (id, sub_task_id, name, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	personUpdateQuery = `
        UPDATE persons SET name = $2, notes = $3, updated_at = $4 WHERE id = $1`
	personDeleteQuery = `DELETE FROM persons WHERE id = $1`
)

type PgActivityRepository struct{}

func NewActivityRepository() activity.Repository {
	return &PgActivityRepository{}
}

func (g *PgActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var a models.Activity
	err = tx.QueryRow(ctx, activityFindQuery+` WHERE a.id = $1`, id.String()).Scan(
		&a.ID, &a.SubTaskID, &a.Title, &a.Cadence, &a.Done, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, activity.ErrActivityNotFound
		}
		return nil, errors.Wrap(err, "failed to query activity")
	}
	return toDomainActivity(&a)
}

func (g *PgActivityRepository) GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*activity.Activity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, activityFindQuery+` WHERE a.sub_task_id = $1 ORDER BY a.created_at`, subTaskID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activities")
	}
	defer rows.Close()

	out := make([]*activity.Activity, 0)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.SubTaskID, &a.Title, &a.Cadence, &a.Done, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan activity")
		}
		entity, err := toDomainActivity(&a)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgActivityRepository) Create(ctx context.Context, data *activity.Activity) (*activity.Activity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		activityInsertQuery,
		data.ID.String(), data.SubTaskID.String(), data.Title, data.Cadence, data.Done, data.CreatedAt, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert activity")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgActivityRepository) Update(ctx context.Context, data *activity.Activity) (*activity.Activity, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		activityUpdateQuery,
		data.ID.String(), data.Title, data.Cadence, data.Done, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update activity")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, activityDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete activity")
	}
	return nil
}

type PgMeetingRepository struct{}

func NewMeetingRepository() meeting.Repository {
	return &PgMeetingRepository{}
}

func (g *PgMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*meeting.Meeting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var m models.Meeting
	err = tx.QueryRow(ctx, meetingFindQuery+` WHERE m.id = $1`, id.String()).Scan(
		&m.ID, &m.SubTaskID, &m.Title, &m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, meeting.ErrMeetingNotFound
		}
		return nil, errors.Wrap(err, "failed to query meeting")
	}
	return toDomainMeeting(&m)
}

func (g *PgMeetingRepository) GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*meeting.Meeting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, meetingFindQuery+` WHERE m.sub_task_id = $1 ORDER BY m.created_at`, subTaskID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query meetings")
	}
	defer rows.Close()

	out := make([]*meeting.Meeting, 0)
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.SubTaskID, &m.Title, &m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan meeting")
		}
		entity, err := toDomainMeeting(&m)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgMeetingRepository) Create(ctx context.Context, data *meeting.Meeting) (*meeting.Meeting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var scheduledAt sql.NullTime
	if data.ScheduledAt != nil {
		scheduledAt = sql.NullTime{Time: *data.ScheduledAt, Valid: true}
	}
	if _, err := tx.Exec(
		ctx,
		meetingInsertQuery,
		data.ID.String(), data.SubTaskID.String(), data.Title, scheduledAt, data.CreatedAt, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert meeting")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgMeetingRepository) Update(ctx context.Context, data *meeting.Meeting) (*meeting.Meeting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var scheduledAt sql.NullTime
	if data.ScheduledAt != nil {
		scheduledAt = sql.NullTime{Time: *data.ScheduledAt, Valid: true}
	}
	if _, err := tx.Exec(
		ctx,
		meetingUpdateQuery,
		data.ID.String(), data.Title, scheduledAt, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update meeting")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgMeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, meetingDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete meeting")
	}
	return nil
}

type PgPersonRepository struct{}

func NewPersonRepository() person.Repository {
	return &PgPersonRepository{}
}

func (g *PgPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var p models.Person
	err = tx.QueryRow(ctx, personFindQuery+` WHERE p.id = $1`, id.String()).Scan(
		&p.ID, &p.SubTaskID, &p.Name, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, person.ErrPersonNotFound
		}
		return nil, errors.Wrap(err, "failed to query person")
	}
	return toDomainPerson(&p)
}

func (g *PgPersonRepository) GetBySubTask(ctx context.Context, subTaskID uuid.UUID) ([]*person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, personFindQuery+` WHERE p.sub_task_id = $1 ORDER BY p.created_at`, subTaskID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query persons")
	}
	defer rows.Close()

	out := make([]*person.Person, 0)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.SubTaskID, &p.Name, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan person")
		}
		entity, err := toDomainPerson(&p)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgPersonRepository) Create(ctx context.Context, data *person.Person) (*person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		personInsertQuery,
		data.ID.String(), data.SubTaskID.String(), data.Name, data.Notes, data.CreatedAt, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert person")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgPersonRepository) Update(ctx context.Context, data *person.Person) (*person.Person, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		personUpdateQuery,
		data.ID.String(), data.Name, data.Notes, data.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update person")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, personDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete person")
	}
	return nil
}
