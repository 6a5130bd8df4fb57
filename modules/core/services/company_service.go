package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/company"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var ErrCompanyAdminOnly = serrors.NewError(
	"COMPANY_SUPERADMIN_ONLY",
	"managing companies is a super admin operation",
	"Companies.SuperAdminOnly",
)

// CompanyService manages tenants. Creating or deactivating a company is a
// platform-level operation reserved to super admins; reading is open to any
// authenticated user since company ids appear throughout the planning API.
type CompanyService struct {
	repo company.Repository
}

func NewCompanyService(repo company.Repository) *CompanyService {
	return &CompanyService{repo: repo}
}

func (s *CompanyService) GetAll(ctx context.Context) ([]*company.Company, error) {
	return s.repo.GetAll(ctx)
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, name string, actor *user.User) (*company.Company, error) {
	if actor == nil || !actor.IsSuperAdmin() {
		return nil, ErrCompanyAdminOnly
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*company.Company, error) {
		return s.repo.Create(txCtx, company.New(name))
	})
}

func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID, actor *user.User) error {
	if actor == nil || !actor.IsSuperAdmin() {
		return ErrCompanyAdminOnly
	}
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
