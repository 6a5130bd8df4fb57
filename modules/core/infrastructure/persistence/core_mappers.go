package persistence

import (
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/company"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/core/infrastructure/persistence/models"
)

func toDomainUser(dbUser *models.User, dbRoles []*models.UserCompanyRole) (*user.User, error) {
	id, err := uuid.Parse(dbUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id")
	}

	assignments := make([]user.CompanyAssignment, 0, len(dbRoles))
	for _, r := range dbRoles {
		companyID, err := uuid.Parse(r.CompanyID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid company id")
		}
		role, err := user.ParseRole(r.Role)
		if err != nil {
			return nil, err
		}
		a := user.CompanyAssignment{CompanyID: companyID, Role: role}
		if r.SupervisorID.Valid {
			supervisorID, err := uuid.Parse(r.SupervisorID.String)
			if err != nil {
				return nil, errors.Wrap(err, "invalid supervisor id")
			}
			a.SupervisorID = &supervisorID
		}
		assignments = append(assignments, a)
	}

	opts := []user.Option{
		user.WithID(id),
		user.WithName(dbUser.FirstName, dbUser.LastName),
		user.WithSuperAdmin(dbUser.SuperAdmin),
		user.WithAssignments(assignments),
		user.WithCreatedAt(dbUser.CreatedAt),
		user.WithUpdatedAt(dbUser.UpdatedAt),
	}
	if dbUser.ActiveCompanyID.Valid {
		activeID, err := uuid.Parse(dbUser.ActiveCompanyID.String)
		if err != nil {
			return nil, errors.Wrap(err, "invalid active company id")
		}
		opts = append(opts, user.WithActiveCompanyID(&activeID))
	}

	return user.New(dbUser.Email, opts...), nil
}

func toDBUser(data *user.User) (*models.User, []*models.UserCompanyRole) {
	dbUser := &models.User{
		ID:         data.ID().String(),
		Email:      data.Email(),
		FirstName:  data.FirstName(),
		LastName:   data.LastName(),
		SuperAdmin: data.IsSuperAdmin(),
		CreatedAt:  data.CreatedAt(),
		UpdatedAt:  data.UpdatedAt(),
	}
	if active := data.ActiveCompanyID(); active != nil {
		dbUser.ActiveCompanyID = sql.NullString{String: active.String(), Valid: true}
	}

	dbRoles := make([]*models.UserCompanyRole, 0, len(data.Assignments()))
	for _, a := range data.Assignments() {
		r := &models.UserCompanyRole{
			UserID:    dbUser.ID,
			CompanyID: a.CompanyID.String(),
			Role:      a.Role.String(),
		}
		if a.SupervisorID != nil {
			r.SupervisorID = sql.NullString{String: a.SupervisorID.String(), Valid: true}
		}
		dbRoles = append(dbRoles, r)
	}
	return dbUser, dbRoles
}

func toDomainCompany(dbCompany *models.Company) (*company.Company, error) {
	id, err := uuid.Parse(dbCompany.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid company id")
	}
	return company.New(
		dbCompany.Name,
		company.WithID(id),
		company.WithIsActive(dbCompany.IsActive),
		company.WithCreatedAt(dbCompany.CreatedAt),
		company.WithUpdatedAt(dbCompany.UpdatedAt),
	), nil
}

func toDomainAssignment(dbAssignment *models.SupervisorAssignment) (*supervision.Assignment, error) {
	id, err := uuid.Parse(dbAssignment.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid assignment id")
	}
	companyID, err := uuid.Parse(dbAssignment.CompanyID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid company id")
	}
	subordinateID, err := uuid.Parse(dbAssignment.SubordinateID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid subordinate id")
	}
	supervisorID, err := uuid.Parse(dbAssignment.SupervisorID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid supervisor id")
	}
	return supervision.New(
		companyID,
		subordinateID,
		supervisorID,
		supervision.WithID(id),
		supervision.WithCreatedAt(dbAssignment.CreatedAt),
	), nil
}
