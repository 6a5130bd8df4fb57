package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/company"
	"github.com/dsalvat/fase-platform-sub001/modules/core/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	companyFindQuery = `
        SELECT c.id, c.name, c.is_active, c.created_at, c.updated_at
        FROM companies c`

	companyInsertQuery = `
        INSERT INTO companies (id, name, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`

	companyUpdateQuery = `
        UPDATE companies SET name = $2, is_active = $3, updated_at = $4 WHERE id = $1`

	companyDeleteQuery = `DELETE FROM companies WHERE id = $1`
)

type PgCompanyRepository struct{}

func NewCompanyRepository() company.Repository {
	return &PgCompanyRepository{}
}

func (g *PgCompanyRepository) GetAll(ctx context.Context) ([]*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, companyFindQuery+` ORDER BY c.name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query companies")
	}
	defer rows.Close()

	out := make([]*company.Company, 0)
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan company")
		}
		entity, err := toDomainCompany(&c)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (g *PgCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var c models.Company
	err = tx.QueryRow(ctx, companyFindQuery+` WHERE c.id = $1`, id.String()).Scan(
		&c.ID, &c.Name, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, errors.Wrap(err, "failed to query company")
	}
	return toDomainCompany(&c)
}

func (g *PgCompanyRepository) Create(ctx context.Context, data *company.Company) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		companyInsertQuery,
		data.ID().String(),
		data.Name(),
		data.IsActive(),
		data.CreatedAt(),
		data.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert company")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgCompanyRepository) Update(ctx context.Context, data *company.Company) (*company.Company, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		companyUpdateQuery,
		data.ID().String(),
		data.Name(),
		data.IsActive(),
		data.UpdatedAt(),
	); err != nil {
		return nil, errors.Wrap(err, "failed to update company")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, companyDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete company")
	}
	return nil
}
