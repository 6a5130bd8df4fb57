package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var (
	ErrSelfAssignment = serrors.NewError(
		"SUPERVISION_SELF_ASSIGNMENT",
		"a user cannot supervise themselves",
		"Supervision.SelfAssignment",
	)
	ErrCycleDetected = serrors.NewError(
		"SUPERVISION_CYCLE",
		"assignment would create a supervision cycle",
		"Supervision.CycleDetected",
	)
)

// maxChainDepth caps the upward walk. Chains are unbounded in principle but
// a walk this deep only happens on corrupted data; the visited set already
// breaks loops, the cap is the hard termination guarantee.
const maxChainDepth = 512

type AssignSupervisorParams struct {
	CompanyID     uuid.UUID
	SubordinateID uuid.UUID
	SupervisorID  uuid.UUID
}

// SupervisionService validates and writes supervision edges. The cycle walk
// and the write run inside one transaction so a concurrent rewiring of the
// chain cannot slip a cycle past the check.
type SupervisionService struct {
	repo supervision.Repository
	log  *logrus.Logger
}

func NewSupervisionService(repo supervision.Repository, log *logrus.Logger) *SupervisionService {
	return &SupervisionService{repo: repo, log: log}
}

// WouldCreateCycle walks the supervisor chain upward from the proposed
// supervisor. Reaching the subordinate means the new edge would close a
// cycle. Revisiting a node without reaching the subordinate indicates a
// pre-existing cycle elsewhere in the data; the walk breaks instead of
// looping and the new edge is not blamed for it.
func (s *SupervisionService) WouldCreateCycle(ctx context.Context, proposedSupervisorID, subordinateID, companyID uuid.UUID) (bool, error) {
	visited := map[uuid.UUID]struct{}{}
	current := proposedSupervisorID
	for i := 0; i < maxChainDepth; i++ {
		if current == subordinateID {
			return true, nil
		}
		if _, seen := visited[current]; seen {
			if s.log != nil {
				s.log.WithFields(logrus.Fields{
					"company_id": companyID,
					"user_id":    current,
				}).Warn("supervision chain already contains a cycle")
			}
			return false, nil
		}
		visited[current] = struct{}{}

		edge, err := s.repo.GetBySubordinate(ctx, companyID, current)
		if err != nil {
			if errors.Is(err, supervision.ErrAssignmentNotFound) {
				return false, nil
			}
			return false, err
		}
		current = edge.SupervisorID()
	}
	if s.log != nil {
		s.log.WithField("company_id", companyID).Warn("supervision chain walk hit depth cap")
	}
	return false, nil
}

// Assign validates and stores the edge subordinate -> supervisor. The
// validation re-runs on every change; there is no persisted chain depth to
// short-circuit it.
func (s *SupervisionService) Assign(ctx context.Context, params AssignSupervisorParams) (*supervision.Assignment, error) {
	if params.SubordinateID == params.SupervisorID {
		return nil, ErrSelfAssignment
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*supervision.Assignment, error) {
		cycle, err := s.WouldCreateCycle(txCtx, params.SupervisorID, params.SubordinateID, params.CompanyID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, ErrCycleDetected
		}
		return s.repo.Save(txCtx, supervision.New(params.CompanyID, params.SubordinateID, params.SupervisorID))
	})
}

// Remove drops the subordinate's supervision edge in the company.
func (s *SupervisionService) Remove(ctx context.Context, companyID, subordinateID uuid.UUID) error {
	return s.repo.Delete(ctx, companyID, subordinateID)
}
