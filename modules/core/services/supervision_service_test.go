package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
)

// fakeTx satisfies pgx.Tx for InTx reuse; the in-memory repositories never
// touch the underlying connection.
type fakeTx struct {
	pgx.Tx
}

func txContext() context.Context {
	return composables.WithTx(context.Background(), fakeTx{})
}

type edgeKey struct {
	companyID     uuid.UUID
	subordinateID uuid.UUID
}

type inMemorySupervisionRepo struct {
	edges map[edgeKey]*supervision.Assignment
}

func newInMemorySupervisionRepo() *inMemorySupervisionRepo {
	return &inMemorySupervisionRepo{edges: map[edgeKey]*supervision.Assignment{}}
}

func (r *inMemorySupervisionRepo) seed(companyID, subordinateID, supervisorID uuid.UUID) {
	r.edges[edgeKey{companyID, subordinateID}] = supervision.New(companyID, subordinateID, supervisorID)
}

func (r *inMemorySupervisionRepo) GetBySubordinate(_ context.Context, companyID, subordinateID uuid.UUID) (*supervision.Assignment, error) {
	a, ok := r.edges[edgeKey{companyID, subordinateID}]
	if !ok {
		return nil, supervision.ErrAssignmentNotFound
	}
	return a, nil
}

func (r *inMemorySupervisionRepo) Exists(_ context.Context, companyID, subordinateID, supervisorID uuid.UUID) (bool, error) {
	a, ok := r.edges[edgeKey{companyID, subordinateID}]
	return ok && a.SupervisorID() == supervisorID, nil
}

func (r *inMemorySupervisionRepo) Save(_ context.Context, data *supervision.Assignment) (*supervision.Assignment, error) {
	r.edges[edgeKey{data.CompanyID(), data.SubordinateID()}] = data
	return data, nil
}

func (r *inMemorySupervisionRepo) Delete(_ context.Context, companyID, subordinateID uuid.UUID) error {
	delete(r.edges, edgeKey{companyID, subordinateID})
	return nil
}

func newSupervisionService(repo supervision.Repository) *services.SupervisionService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return services.NewSupervisionService(repo, log)
}

func TestSupervisionService_Assign(t *testing.T) {
	companyID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	t.Run("self assignment is rejected", func(t *testing.T) {
		svc := newSupervisionService(newInMemorySupervisionRepo())
		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID:     companyID,
			SubordinateID: alice,
			SupervisorID:  alice,
		})
		assert.ErrorIs(t, err, services.ErrSelfAssignment)
	})

	t.Run("valid chain is accepted", func(t *testing.T) {
		repo := newInMemorySupervisionRepo()
		svc := newSupervisionService(repo)

		// alice -> bob, then bob -> carol: no cycle.
		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: companyID, SubordinateID: alice, SupervisorID: bob,
		})
		require.NoError(t, err)
		_, err = svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: companyID, SubordinateID: bob, SupervisorID: carol,
		})
		require.NoError(t, err)
	})

	t.Run("two node cycle is rejected", func(t *testing.T) {
		repo := newInMemorySupervisionRepo()
		repo.seed(companyID, alice, bob)
		svc := newSupervisionService(repo)

		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: companyID, SubordinateID: bob, SupervisorID: alice,
		})
		assert.ErrorIs(t, err, services.ErrCycleDetected)
	})

	t.Run("deep cycle is rejected", func(t *testing.T) {
		repo := newInMemorySupervisionRepo()
		repo.seed(companyID, alice, bob)
		repo.seed(companyID, bob, carol)
		svc := newSupervisionService(repo)

		// carol -> alice closes alice -> bob -> carol -> alice.
		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: companyID, SubordinateID: carol, SupervisorID: alice,
		})
		assert.ErrorIs(t, err, services.ErrCycleDetected)
	})

	t.Run("same edge in another company is independent", func(t *testing.T) {
		repo := newInMemorySupervisionRepo()
		repo.seed(companyID, alice, bob)
		svc := newSupervisionService(repo)

		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: uuid.New(), SubordinateID: bob, SupervisorID: alice,
		})
		assert.NoError(t, err)
	})

	t.Run("pre-existing cycle elsewhere does not block a disjoint edge", func(t *testing.T) {
		repo := newInMemorySupervisionRepo()
		looping1 := uuid.New()
		looping2 := uuid.New()
		repo.edges[edgeKey{companyID, looping1}] = supervision.New(companyID, looping1, looping2)
		repo.edges[edgeKey{companyID, looping2}] = supervision.New(companyID, looping2, looping1)
		svc := newSupervisionService(repo)

		// alice joining under the corrupted chain is allowed; the walk
		// terminates on the revisit instead of blaming the new edge.
		_, err := svc.Assign(txContext(), services.AssignSupervisorParams{
			CompanyID: companyID, SubordinateID: alice, SupervisorID: looping1,
		})
		assert.NoError(t, err)
	})
}

func TestSupervisionService_Remove(t *testing.T) {
	companyID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	repo := newInMemorySupervisionRepo()
	repo.seed(companyID, alice, bob)
	svc := newSupervisionService(repo)

	require.NoError(t, svc.Remove(txContext(), companyID, alice))
	_, err := repo.GetBySubordinate(context.Background(), companyID, alice)
	assert.ErrorIs(t, err, supervision.ErrAssignmentNotFound)
}
