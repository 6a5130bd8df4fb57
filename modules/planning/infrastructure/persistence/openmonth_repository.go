package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/openmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	openMonthFindQuery = `
        SELECT om.id, om.user_id, om.month, om.created_at
        FROM open_months om`

	openMonthExistsQuery = `SELECT 1 FROM open_months WHERE user_id = $1 AND month = $2`

	// ON CONFLICT DO NOTHING makes concurrent opens of the same month
	// converge on a single row.
	openMonthInsertQuery = `
        INSERT INTO open_months (id, user_id, month, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, month) DO NOTHING`
)

type PgOpenMonthRepository struct{}

func NewOpenMonthRepository() openmonth.Repository {
	return &PgOpenMonthRepository{}
}

func (g *PgOpenMonthRepository) Get(ctx context.Context, userID uuid.UUID, month planmonth.Month) (*openmonth.OpenMonth, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var om models.OpenMonth
	err = tx.QueryRow(ctx, openMonthFindQuery+` WHERE om.user_id = $1 AND om.month = $2`, userID.String(), month.String()).Scan(
		&om.ID, &om.UserID, &om.Month, &om.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, openmonth.ErrOpenMonthNotFound
		}
		return nil, errors.Wrap(err, "failed to query open month")
	}
	return toDomainOpenMonth(&om)
}

func (g *PgOpenMonthRepository) Exists(ctx context.Context, userID uuid.UUID, month planmonth.Month) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var one int
	err = tx.QueryRow(ctx, openMonthExistsQuery, userID.String(), month.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to query open month")
	}
	return true, nil
}

func (g *PgOpenMonthRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*openmonth.OpenMonth, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, openMonthFindQuery+` WHERE om.user_id = $1 ORDER BY om.month`, userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query open months")
	}
	defer rows.Close()

	out := make([]*openmonth.OpenMonth, 0)
	for rows.Next() {
		var om models.OpenMonth
		if err := rows.Scan(&om.ID, &om.UserID, &om.Month, &om.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan open month")
		}
		entity, err := toDomainOpenMonth(&om)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgOpenMonthRepository) Create(ctx context.Context, data *openmonth.OpenMonth) (*openmonth.OpenMonth, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		openMonthInsertQuery,
		data.ID.String(),
		data.UserID.String(),
		data.Month.String(),
		data.CreatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert open month")
	}
	return g.Get(ctx, data.UserID, data.Month)
}
