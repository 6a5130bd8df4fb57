package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/infrastructure/persistence/models"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.first_name,
            u.last_name,
            u.super_admin,
            u.active_company_id,
            u.created_at,
            u.updated_at
        FROM users u`

	userCountQuery = `SELECT COUNT(u.id) FROM users u`

	userInsertQuery = `
        INSERT INTO users (id, email, first_name, last_name, super_admin, active_company_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	userUpdateQuery = `
        UPDATE users
        SET email = $2, first_name = $3, last_name = $4, super_admin = $5, active_company_id = $6, updated_at = $7
        WHERE id = $1`

	userDeleteQuery = `DELETE FROM users WHERE id = $1`

	userRolesQuery = `
        SELECT user_id, company_id, role, supervisor_id
        FROM user_company_roles
        WHERE user_id = $1`

	userRolesDeleteQuery = `DELETE FROM user_company_roles WHERE user_id = $1`
	userRolesInsertQuery = `
        INSERT INTO user_company_roles (user_id, company_id, role, supervisor_id)
        VALUES ($1, $2, $3, $4)`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	query := userCountQuery
	args := []interface{}{}
	if params != nil && params.CompanyID != nil {
		query += ` JOIN user_company_roles ucr ON ucr.user_id = u.id WHERE ucr.company_id = $1`
		args = append(args, params.CompanyID.String())
	}
	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (g *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := userFindQuery
	args := []interface{}{}
	if params.CompanyID != nil {
		query += ` JOIN user_company_roles ucr ON ucr.user_id = u.id WHERE ucr.company_id = $1`
		args = append(args, params.CompanyID.String())
	}
	query += ` ORDER BY u.created_at`
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	dbUsers := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.SuperAdmin,
			&u.ActiveCompanyID,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		dbUsers = append(dbUsers, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*user.User, 0, len(dbUsers))
	for _, dbUser := range dbUsers {
		id, err := uuid.Parse(dbUser.ID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid user id")
		}
		roles, err := g.queryRoles(ctx, id)
		if err != nil {
			return nil, err
		}
		entity, err := toDomainUser(dbUser, roles)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return g.getOne(ctx, userFindQuery+` WHERE u.id = $1`, id.String())
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return g.getOne(ctx, userFindQuery+` WHERE u.email = $1`, email)
}

func (g *PgUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var dbUser models.User
	err = tx.QueryRow(ctx, query, arg).Scan(
		&dbUser.ID,
		&dbUser.Email,
		&dbUser.FirstName,
		&dbUser.LastName,
		&dbUser.SuperAdmin,
		&dbUser.ActiveCompanyID,
		&dbUser.CreatedAt,
		&dbUser.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to query user")
	}

	id, err := uuid.Parse(dbUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id")
	}
	roles, err := g.queryRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDomainUser(&dbUser, roles)
}

func (g *PgUserRepository) queryRoles(ctx context.Context, userID uuid.UUID) ([]*models.UserCompanyRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, userRolesQuery, userID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user roles")
	}
	defer rows.Close()

	roles := make([]*models.UserCompanyRole, 0)
	for rows.Next() {
		var r models.UserCompanyRole
		if err := rows.Scan(&r.UserID, &r.CompanyID, &r.Role, &r.SupervisorID); err != nil {
			return nil, errors.Wrap(err, "failed to scan user role")
		}
		roles = append(roles, &r)
	}
	return roles, rows.Err()
}

func (g *PgUserRepository) Create(ctx context.Context, data *user.User) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	dbUser, dbRoles := toDBUser(data)
	if _, err := tx.Exec(
		ctx,
		userInsertQuery,
		dbUser.ID,
		dbUser.Email,
		dbUser.FirstName,
		dbUser.LastName,
		dbUser.SuperAdmin,
		dbUser.ActiveCompanyID,
		dbUser.CreatedAt,
		dbUser.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}
	if err := g.replaceRoles(ctx, dbUser.ID, dbRoles); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgUserRepository) Update(ctx context.Context, data *user.User) (*user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	dbUser, dbRoles := toDBUser(data)
	if _, err := tx.Exec(
		ctx,
		userUpdateQuery,
		dbUser.ID,
		dbUser.Email,
		dbUser.FirstName,
		dbUser.LastName,
		dbUser.SuperAdmin,
		dbUser.ActiveCompanyID,
		dbUser.UpdatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}
	if err := g.replaceRoles(ctx, dbUser.ID, dbRoles); err != nil {
		return nil, err
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgUserRepository) replaceRoles(ctx context.Context, userID string, dbRoles []*models.UserCompanyRole) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, userRolesDeleteQuery, userID); err != nil {
		return errors.Wrap(err, "failed to delete user roles")
	}
	for _, r := range dbRoles {
		if _, err := tx.Exec(ctx, userRolesInsertQuery, r.UserID, r.CompanyID, r.Role, r.SupervisorID); err != nil {
			return errors.Wrap(err, "failed to insert user role")
		}
	}
	return nil
}

func (g *PgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, userDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}
