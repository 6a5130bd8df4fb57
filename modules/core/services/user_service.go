package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var (
	ErrRoleChangeForbidden = serrors.NewError(
		"USER_ROLE_CHANGE_FORBIDDEN",
		"only a company admin or super admin may change roles in a company",
		"Users.RoleChangeForbidden",
	)
	ErrCompanyNotAssigned = serrors.NewError(
		"USER_COMPANY_NOT_ASSIGNED",
		"the user holds no assignment in the selected company",
		"Users.CompanyNotAssigned",
	)
)

// UserService manages accounts, role assignments and company selection.
type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]*user.User, error) {
	return s.repo.GetPaginated(ctx, params)
}

// AssignRole grants or replaces the target's role in a company. Allowed for a
// super admin and for a company admin of that same company.
func (s *UserService) AssignRole(ctx context.Context, targetID, companyID uuid.UUID, role user.Role, actor *user.User) (*user.User, error) {
	if !s.mayManageRoles(actor, companyID) {
		return nil, ErrRoleChangeForbidden
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*user.User, error) {
		target, err := s.repo.GetByID(txCtx, targetID)
		if err != nil {
			return nil, err
		}
		target.AssignTo(companyID, role)
		return s.repo.Update(txCtx, target)
	})
}

// SelectCompany switches the company u acts in. Regular users may only select
// a company they are assigned to; super admins may also clear the selection
// to get cross-company read scope.
func (s *UserService) SelectCompany(ctx context.Context, u *user.User, companyID *uuid.UUID) (*user.User, error) {
	if companyID == nil && !u.IsSuperAdmin() {
		return nil, ErrCompanyNotAssigned
	}
	if companyID != nil && !u.IsSuperAdmin() {
		if _, ok := u.AssignmentFor(*companyID); !ok {
			return nil, ErrCompanyNotAssigned
		}
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*user.User, error) {
		u.SelectCompany(companyID)
		return s.repo.Update(txCtx, u)
	})
}

func (s *UserService) mayManageRoles(actor *user.User, companyID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperAdmin() {
		return true
	}
	role, ok := actor.RoleIn(companyID)
	return ok && role == user.RoleCompanyAdmin
}
