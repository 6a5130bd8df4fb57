package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/core/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	assignmentFindQuery = `
        SELECT sa.id, sa.company_id, sa.subordinate_id, sa.supervisor_id, sa.created_at
        FROM supervisor_assignments sa
        WHERE sa.company_id = $1 AND sa.subordinate_id = $2`

	assignmentExistsQuery = `
        SELECT 1 FROM supervisor_assignments
        WHERE company_id = $1 AND subordinate_id = $2 AND supervisor_id = $3`

	// One edge per subordinate per company; re-assigning replaces it.
	assignmentUpsertQuery = `
        INSERT INTO supervisor_assignments (id, company_id, subordinate_id, supervisor_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (company_id, subordinate_id)
        DO UPDATE SET supervisor_id = EXCLUDED.supervisor_id`

	assignmentDeleteQuery = `
        DELETE FROM supervisor_assignments WHERE company_id = $1 AND subordinate_id = $2`
)

type PgSupervisionRepository struct{}

func NewSupervisionRepository() supervision.Repository {
	return &PgSupervisionRepository{}
}

func (g *PgSupervisionRepository) GetBySubordinate(ctx context.Context, companyID, subordinateID uuid.UUID) (*supervision.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var a models.SupervisorAssignment
	err = tx.QueryRow(ctx, assignmentFindQuery, companyID.String(), subordinateID.String()).Scan(
		&a.ID, &a.CompanyID, &a.SubordinateID, &a.SupervisorID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supervision.ErrAssignmentNotFound
		}
		return nil, errors.Wrap(err, "failed to query supervision assignment")
	}
	return toDomainAssignment(&a)
}

func (g *PgSupervisionRepository) Exists(ctx context.Context, companyID, subordinateID, supervisorID uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var one int
	err = tx.QueryRow(ctx, assignmentExistsQuery, companyID.String(), subordinateID.String(), supervisorID.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to query supervision edge")
	}
	return true, nil
}

func (g *PgSupervisionRepository) Save(ctx context.Context, data *supervision.Assignment) (*supervision.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		assignmentUpsertQuery,
		data.ID().String(),
		data.CompanyID().String(),
		data.SubordinateID().String(),
		data.SupervisorID().String(),
		data.CreatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to save supervision assignment")
	}
	return g.GetBySubordinate(ctx, data.CompanyID(), data.SubordinateID())
}

func (g *PgSupervisionRepository) Delete(ctx context.Context, companyID, subordinateID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, assignmentDeleteQuery, companyID.String(), subordinateID.String()); err != nil {
		return errors.Wrap(err, "failed to delete supervision assignment")
	}
	return nil
}
