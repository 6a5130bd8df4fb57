package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

type fakeResolver struct {
	objects map[uuid.UUID]access.Ownership
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{objects: map[uuid.UUID]access.Ownership{}}
}

func (r *fakeResolver) add(own access.Ownership) uuid.UUID {
	id := uuid.New()
	r.objects[id] = own
	return id
}

func (r *fakeResolver) resolve(_ context.Context, id uuid.UUID) (access.Ownership, error) {
	own, ok := r.objects[id]
	if !ok {
		return access.Ownership{}, access.ErrOwnershipNotFound
	}
	return own, nil
}

func (r *fakeResolver) ResolveObjective(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

func (r *fakeResolver) ResolveSubTask(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

func (r *fakeResolver) ResolveActivity(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

func (r *fakeResolver) ResolveMeeting(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

func (r *fakeResolver) ResolvePerson(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

func (r *fakeResolver) ResolveFeedback(ctx context.Context, id uuid.UUID) (access.Ownership, error) {
	return r.resolve(ctx, id)
}

type supervisionEdge struct {
	companyID     uuid.UUID
	subordinateID uuid.UUID
	supervisorID  uuid.UUID
}

type fakeSupervisionRepo struct {
	edges []supervisionEdge
}

func (r *fakeSupervisionRepo) GetBySubordinate(_ context.Context, companyID, subordinateID uuid.UUID) (*supervision.Assignment, error) {
	for _, e := range r.edges {
		if e.companyID == companyID && e.subordinateID == subordinateID {
			return supervision.New(e.companyID, e.subordinateID, e.supervisorID), nil
		}
	}
	return nil, supervision.ErrAssignmentNotFound
}

func (r *fakeSupervisionRepo) Exists(_ context.Context, companyID, subordinateID, supervisorID uuid.UUID) (bool, error) {
	for _, e := range r.edges {
		if e == (supervisionEdge{companyID, subordinateID, supervisorID}) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSupervisionRepo) Save(_ context.Context, data *supervision.Assignment) (*supervision.Assignment, error) {
	r.edges = append(r.edges, supervisionEdge{data.CompanyID(), data.SubordinateID(), data.SupervisorID()})
	return data, nil
}

func (r *fakeSupervisionRepo) Delete(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

// accessFixture is one company with an owner, their supervisor, a company
// admin, an unrelated member and a super admin, plus an objective per month
// status. The clock is pinned to January 2026.
type accessFixture struct {
	svc             *AccessService
	resolver        *fakeResolver
	supervisionRepo *fakeSupervisionRepo
	openRepo        *inMemoryOpenMonthRepo
	companyID       uuid.UUID

	owner      access.Actor
	supervisor access.Actor
	admin      access.Actor
	member     access.Actor
	root       access.Actor
	rootNoCo   access.Actor

	currentObj uuid.UUID
	pastObj    uuid.UUID
	futureObj  uuid.UUID
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()
	companyID := uuid.New()
	ownerID := uuid.New()
	supervisorID := uuid.New()
	adminID := uuid.New()
	memberID := uuid.New()
	rootID := uuid.New()

	resolver := newFakeResolver()
	supervisionRepo := &fakeSupervisionRepo{edges: []supervisionEdge{
		{companyID, ownerID, supervisorID},
	}}
	openRepo := newInMemoryOpenMonthRepo()
	months := &MonthService{repo: openRepo, now: fixedClock()}

	f := &accessFixture{
		svc:             NewAccessService(resolver, supervisionRepo, months),
		resolver:        resolver,
		supervisionRepo: supervisionRepo,
		openRepo:        openRepo,
		companyID:       companyID,
		owner:     access.Actor{ID: ownerID, CompanyID: &companyID, Role: user.RoleMember},
		supervisor: access.Actor{
			ID: supervisorID, CompanyID: &companyID, Role: user.RoleSupervisor,
		},
		admin:    access.Actor{ID: adminID, CompanyID: &companyID, Role: user.RoleCompanyAdmin},
		member:   access.Actor{ID: memberID, CompanyID: &companyID, Role: user.RoleMember},
		root:     access.Actor{ID: rootID, SuperAdmin: true, CompanyID: &companyID},
		rootNoCo: access.Actor{ID: rootID, SuperAdmin: true},
	}
	f.currentObj = resolver.add(access.Ownership{
		OwnerID: ownerID, CompanyID: companyID, Month: planmonth.MustParse("2026-01"),
	})
	f.pastObj = resolver.add(access.Ownership{
		OwnerID: ownerID, CompanyID: companyID, Month: planmonth.MustParse("2025-12"),
	})
	f.futureObj = resolver.add(access.Ownership{
		OwnerID: ownerID, CompanyID: companyID, Month: planmonth.MustParse("2026-02"),
	})
	return f
}

func TestAccessService_Read(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		actor   access.Actor
		allowed bool
	}{
		{"owner reads own objective", f.owner, true},
		{"supervisor reads subordinate objective", f.supervisor, true},
		{"company admin reads company objective", f.admin, true},
		{"unrelated member is denied", f.member, false},
		{"super admin reads in company", f.root, true},
		{"super admin reads across companies", f.rootNoCo, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := f.svc.CanAccessObjective(ctx, f.currentObj, tc.actor)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}

	t.Run("reads ignore the temporal freeze", func(t *testing.T) {
		for _, actor := range []access.Actor{f.owner, f.supervisor, f.admin, f.root} {
			allowed, err := f.svc.CanAccessObjective(ctx, f.pastObj, actor)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})

	t.Run("missing object denies instead of erroring", func(t *testing.T) {
		allowed, err := f.svc.CanAccessObjective(ctx, uuid.New(), f.root)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("supervision does not cross companies", func(t *testing.T) {
		otherCompany := uuid.New()
		foreign := access.Actor{ID: f.supervisor.ID, CompanyID: &otherCompany, Role: user.RoleSupervisor}
		allowed, err := f.svc.CanAccessObjective(ctx, f.currentObj, foreign)
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestAccessService_Modify(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()

	t.Run("owner writes current month", func(t *testing.T) {
		allowed, err := f.svc.CanModifyObjective(ctx, f.currentObj, f.owner)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("supervisor never writes", func(t *testing.T) {
		allowed, err := f.svc.CanModifyObjective(ctx, f.currentObj, f.supervisor)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("company admin writes current month", func(t *testing.T) {
		allowed, err := f.svc.CanModifyObjective(ctx, f.currentObj, f.admin)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("past month freezes every role", func(t *testing.T) {
		for _, actor := range []access.Actor{f.owner, f.admin, f.root} {
			allowed, err := f.svc.CanModifyObjective(ctx, f.pastObj, actor)
			require.NoError(t, err)
			assert.False(t, allowed)
		}
	})

	t.Run("future month locked until the owner opens it", func(t *testing.T) {
		allowed, err := f.svc.CanModifyObjective(ctx, f.futureObj, f.owner)
		require.NoError(t, err)
		assert.False(t, allowed)

		f.openRepo.seed(f.owner.ID, planmonth.MustParse("2026-02"))

		allowed, err = f.svc.CanModifyObjective(ctx, f.futureObj, f.owner)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("super admin without company cannot mutate", func(t *testing.T) {
		allowed, err := f.svc.CanModifyObjective(ctx, f.currentObj, f.rootNoCo)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("super admin bypasses the owner's future lock but not the freeze", func(t *testing.T) {
		f2 := newAccessFixture(t)
		allowed, err := f2.svc.CanModifyObjective(ctx, f2.futureObj, f2.root)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = f2.svc.CanModifyObjective(ctx, f2.pastObj, f2.root)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("deny reasons are distinguishable", func(t *testing.T) {
		d, err := f.svc.DecideModifyObjective(ctx, f.pastObj, f.owner)
		require.NoError(t, err)
		assert.Equal(t, access.DenyMonthFrozen, d.Reason)

		d, err = f.svc.DecideModifyObjective(ctx, f.currentObj, f.member)
		require.NoError(t, err)
		assert.Equal(t, access.DenyForbidden, d.Reason)

		d, err = f.svc.DecideModifyObjective(ctx, uuid.New(), f.owner)
		require.NoError(t, err)
		assert.Equal(t, access.DenyNotFound, d.Reason)

		d, err = f.svc.DecideModifyObjective(ctx, f.currentObj, f.rootNoCo)
		require.NoError(t, err)
		assert.Equal(t, access.DenyNoCompany, d.Reason)
	})
}

func TestAccessService_CanCreateObjective(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()

	t.Run("owner creates in current month", func(t *testing.T) {
		allowed, err := f.svc.CanCreateObjective(ctx, f.owner, f.owner.ID, f.companyID, planmonth.MustParse("2026-01"))
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("owner cannot create in a locked future month", func(t *testing.T) {
		allowed, err := f.svc.CanCreateObjective(ctx, f.owner, f.owner.ID, f.companyID, planmonth.MustParse("2026-03"))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("nobody creates in a past month", func(t *testing.T) {
		allowed, err := f.svc.CanCreateObjective(ctx, f.root, f.owner.ID, f.companyID, planmonth.MustParse("2025-11"))
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("member cannot create for someone else", func(t *testing.T) {
		allowed, err := f.svc.CanCreateObjective(ctx, f.member, f.owner.ID, f.companyID, planmonth.MustParse("2026-01"))
		require.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestAccessService_ChildObjectsFollowOwningObjective(t *testing.T) {
	f := newAccessFixture(t)
	ctx := context.Background()

	// The resolver is the only type-specific part; children share the rule
	// composition with the objective they hang off.
	allowed, err := f.svc.CanAccessSubTask(ctx, f.currentObj, f.supervisor)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = f.svc.CanModifyActivity(ctx, f.pastObj, f.owner)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = f.svc.CanAccessMeeting(ctx, f.currentObj, f.member)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = f.svc.CanModifyPerson(ctx, f.currentObj, f.admin)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = f.svc.CanAccessFeedback(ctx, f.currentObj, f.owner)
	require.NoError(t, err)
	assert.True(t, allowed)
}
