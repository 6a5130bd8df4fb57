package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
)

type inMemoryUserRepo struct {
	rows map[uuid.UUID]*user.User
}

func newInMemoryUserRepo(users ...*user.User) *inMemoryUserRepo {
	r := &inMemoryUserRepo{rows: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		r.rows[u.ID()] = u
	}
	return r
}

func (r *inMemoryUserRepo) Count(_ context.Context, _ *user.FindParams) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *inMemoryUserRepo) GetPaginated(_ context.Context, _ *user.FindParams) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, u)
	}
	return out, nil
}

func (r *inMemoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *inMemoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.rows {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *inMemoryUserRepo) Create(_ context.Context, data *user.User) (*user.User, error) {
	r.rows[data.ID()] = data
	return data, nil
}

func (r *inMemoryUserRepo) Update(_ context.Context, data *user.User) (*user.User, error) {
	r.rows[data.ID()] = data
	return data, nil
}

func (r *inMemoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func TestUserService_AssignRole(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()

	target := user.New("bob@acme.test", user.WithAssignments([]user.CompanyAssignment{
		{CompanyID: companyID, Role: user.RoleMember},
	}))
	admin := user.New("alice@acme.test", user.WithAssignments([]user.CompanyAssignment{
		{CompanyID: companyID, Role: user.RoleCompanyAdmin},
	}))
	root := user.New("root@platform.test", user.WithSuperAdmin(true))

	t.Run("company admin promotes within own company", func(t *testing.T) {
		svc := services.NewUserService(newInMemoryUserRepo(target, admin))
		updated, err := svc.AssignRole(txContext(), target.ID(), companyID, user.RoleSupervisor, admin)
		require.NoError(t, err)
		role, ok := updated.RoleIn(companyID)
		require.True(t, ok)
		assert.Equal(t, user.RoleSupervisor, role)
	})

	t.Run("company admin cannot reach into another company", func(t *testing.T) {
		svc := services.NewUserService(newInMemoryUserRepo(target, admin))
		_, err := svc.AssignRole(txContext(), target.ID(), otherCompanyID, user.RoleMember, admin)
		assert.ErrorIs(t, err, services.ErrRoleChangeForbidden)
	})

	t.Run("member cannot change roles", func(t *testing.T) {
		svc := services.NewUserService(newInMemoryUserRepo(target, admin))
		_, err := svc.AssignRole(txContext(), admin.ID(), companyID, user.RoleMember, target)
		assert.ErrorIs(t, err, services.ErrRoleChangeForbidden)
	})

	t.Run("super admin assigns anywhere", func(t *testing.T) {
		svc := services.NewUserService(newInMemoryUserRepo(target, root))
		updated, err := svc.AssignRole(txContext(), target.ID(), otherCompanyID, user.RoleCompanyAdmin, root)
		require.NoError(t, err)
		role, ok := updated.RoleIn(otherCompanyID)
		require.True(t, ok)
		assert.Equal(t, user.RoleCompanyAdmin, role)
	})
}

func TestUserService_SelectCompany(t *testing.T) {
	companyID := uuid.New()
	strangerCompanyID := uuid.New()

	t.Run("regular user selects an assigned company", func(t *testing.T) {
		u := user.New("bob@acme.test", user.WithAssignments([]user.CompanyAssignment{
			{CompanyID: companyID, Role: user.RoleMember},
		}))
		svc := services.NewUserService(newInMemoryUserRepo(u))
		updated, err := svc.SelectCompany(txContext(), u, &companyID)
		require.NoError(t, err)
		require.NotNil(t, updated.ActiveCompanyID())
		assert.Equal(t, companyID, *updated.ActiveCompanyID())
	})

	t.Run("regular user cannot select an unassigned company", func(t *testing.T) {
		u := user.New("bob@acme.test", user.WithAssignments([]user.CompanyAssignment{
			{CompanyID: companyID, Role: user.RoleMember},
		}))
		svc := services.NewUserService(newInMemoryUserRepo(u))
		_, err := svc.SelectCompany(txContext(), u, &strangerCompanyID)
		assert.ErrorIs(t, err, services.ErrCompanyNotAssigned)
	})

	t.Run("only super admins clear the selection", func(t *testing.T) {
		u := user.New("bob@acme.test")
		svc := services.NewUserService(newInMemoryUserRepo(u))
		_, err := svc.SelectCompany(txContext(), u, nil)
		assert.ErrorIs(t, err, services.ErrCompanyNotAssigned)

		root := user.New("root@platform.test", user.WithSuperAdmin(true))
		rootSvc := services.NewUserService(newInMemoryUserRepo(root))
		updated, err := rootSvc.SelectCompany(txContext(), root, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.ActiveCompanyID())
	})
}
