package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
)

func TestContextService_Resolve(t *testing.T) {
	svc := services.NewContextService()
	companyID := uuid.New()
	otherCompanyID := uuid.New()

	t.Run("nil user fails closed", func(t *testing.T) {
		cc := svc.Resolve(nil)
		assert.Nil(t, cc.CompanyID)
		assert.False(t, cc.SuperAdmin)
		assert.False(t, cc.CanMutate())
	})

	t.Run("super admin without selection gets cross-company scope", func(t *testing.T) {
		u := user.New("root@example.com", user.WithSuperAdmin(true))
		cc := svc.Resolve(u)
		assert.True(t, cc.SuperAdmin)
		assert.Nil(t, cc.CompanyID)
		assert.False(t, cc.CanMutate())
	})

	t.Run("super admin with selection can mutate", func(t *testing.T) {
		u := user.New("root@example.com",
			user.WithSuperAdmin(true),
			user.WithActiveCompanyID(&companyID),
		)
		cc := svc.Resolve(u)
		require.NotNil(t, cc.CompanyID)
		assert.Equal(t, companyID, *cc.CompanyID)
		assert.True(t, cc.CanMutate())
	})

	t.Run("member resolves to assigned active company", func(t *testing.T) {
		u := user.New("m@example.com",
			user.WithActiveCompanyID(&companyID),
			user.WithAssignments([]user.CompanyAssignment{
				{CompanyID: companyID, Role: user.RoleMember},
			}),
		)
		cc := svc.Resolve(u)
		require.NotNil(t, cc.CompanyID)
		assert.Equal(t, companyID, *cc.CompanyID)
		assert.False(t, cc.SuperAdmin)
	})

	t.Run("selection without assignment fails closed", func(t *testing.T) {
		u := user.New("m@example.com",
			user.WithActiveCompanyID(&otherCompanyID),
			user.WithAssignments([]user.CompanyAssignment{
				{CompanyID: companyID, Role: user.RoleMember},
			}),
		)
		cc := svc.Resolve(u)
		assert.Nil(t, cc.CompanyID)
		assert.False(t, cc.CanMutate())
	})
}

func TestContextService_ActorFor(t *testing.T) {
	svc := services.NewContextService()
	companyID := uuid.New()

	u := user.New("s@example.com",
		user.WithActiveCompanyID(&companyID),
		user.WithAssignments([]user.CompanyAssignment{
			{CompanyID: companyID, Role: user.RoleSupervisor},
		}),
	)
	actor := svc.ActorFor(u)
	assert.Equal(t, u.ID(), actor.ID)
	assert.False(t, actor.SuperAdmin)
	require.NotNil(t, actor.CompanyID)
	assert.Equal(t, companyID, *actor.CompanyID)
	assert.Equal(t, user.RoleSupervisor, actor.Role)
	assert.True(t, actor.ActingIn(companyID))
	assert.False(t, actor.ActingIn(uuid.New()))
}
