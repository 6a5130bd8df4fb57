package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/aggregates/objective"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/eventbus"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var (
	ErrForbidden = serrors.NewError(
		"ACCESS_FORBIDDEN",
		"permission denied",
		"Access.PermissionDenied",
	)
	ErrUnconfirmReserved = serrors.NewError(
		"OBJECTIVE_UNCONFIRM_RESERVED",
		"unconfirming a completed plan is a super admin operation",
		"Objectives.UnconfirmReserved",
	)
)

// timeNow is a seam for tests.
var timeNow = time.Now

type CreateObjectiveParams struct {
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	Month       planmonth.Month
	Title       string
	Description string
}

// ObjectiveService guards objective mutations with the access engine and
// publishes gamification/audit events after permitted ones. Event delivery
// is best-effort: a failing subscriber is logged by the bus and never rolls
// back the mutation it followed.
type ObjectiveService struct {
	repo      objective.Repository
	accessSvc *AccessService
	publisher eventbus.EventBus
}

func NewObjectiveService(repo objective.Repository, accessSvc *AccessService, publisher eventbus.EventBus) *ObjectiveService {
	return &ObjectiveService{
		repo:      repo,
		accessSvc: accessSvc,
		publisher: publisher,
	}
}

func (s *ObjectiveService) GetByID(ctx context.Context, id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
	allowed, err := s.accessSvc.CanAccessObjective(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ObjectiveService) GetPaginated(ctx context.Context, params *objective.FindParams, actor access.Actor) ([]*objective.Objective, error) {
	if actor.CompanyID == nil && !actor.SuperAdmin {
		return nil, ErrForbidden
	}
	if params == nil {
		params = &objective.FindParams{}
	}
	// A super admin with no acting company lists across companies; everyone
	// else is pinned to their own. Members only see their own plans; the
	// finer supervisor scope is enforced when an objective is opened.
	if actor.CompanyID != nil {
		params.CompanyID = actor.CompanyID
	}
	if !actor.SuperAdmin && actor.Role == user.RoleMember {
		ownerID := actor.ID
		params.OwnerID = &ownerID
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *ObjectiveService) Create(ctx context.Context, params CreateObjectiveParams, actor access.Actor) (*objective.Objective, error) {
	allowed, err := s.accessSvc.CanCreateObjective(ctx, actor, params.OwnerID, params.CompanyID, params.Month)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (*objective.Objective, error) {
		data := objective.New(
			params.CompanyID,
			params.OwnerID,
			params.Month,
			params.Title,
			objective.WithDescription(params.Description),
		)
		return s.repo.Create(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(objective.CreatedEvent{
		ObjectiveID: created.ID(),
		OwnerID:     created.OwnerID(),
		CompanyID:   created.CompanyID(),
		Month:       created.Month(),
	})
	return created, nil
}

func (s *ObjectiveService) Update(ctx context.Context, id uuid.UUID, title, description string, actor access.Actor) (*objective.Objective, error) {
	allowed, err := s.accessSvc.CanModifyObjective(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (*objective.Objective, error) {
		data, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.SetTitle(title)
		data.SetDescription(description)
		return s.repo.Update(txCtx, data)
	})
}

func (s *ObjectiveService) Delete(ctx context.Context, id uuid.UUID, actor access.Actor) error {
	allowed, err := s.accessSvc.CanModifyObjective(ctx, id, actor)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}

	data, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	}); err != nil {
		return err
	}

	s.publisher.Publish(objective.DeletedEvent{
		ObjectiveID: data.ID(),
		OwnerID:     data.OwnerID(),
		CompanyID:   data.CompanyID(),
	})
	return nil
}

// Confirm marks the objective's month plan as completed and awards
// gamification points through the published event.
func (s *ObjectiveService) Confirm(ctx context.Context, id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
	allowed, err := s.accessSvc.CanModifyObjective(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}

	confirmed, err := composables.InTxResult(ctx, func(txCtx context.Context) (*objective.Objective, error) {
		data, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.Confirm(timeNow())
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(objective.ConfirmedEvent{
		ObjectiveID: confirmed.ID(),
		OwnerID:     confirmed.OwnerID(),
		CompanyID:   confirmed.CompanyID(),
		Month:       confirmed.Month(),
	})
	return confirmed, nil
}

// Unconfirm reverts a confirmed plan. It is the single designated override
// of the temporal freeze: it works on past months, but only for a super
// admin acting in a concrete company.
func (s *ObjectiveService) Unconfirm(ctx context.Context, id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
	if !actor.SuperAdmin || actor.CompanyID == nil {
		return nil, ErrUnconfirmReserved
	}

	unconfirmed, err := composables.InTxResult(ctx, func(txCtx context.Context) (*objective.Objective, error) {
		data, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		data.Unconfirm()
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(objective.UnconfirmedEvent{
		ObjectiveID: unconfirmed.ID(),
		OwnerID:     unconfirmed.OwnerID(),
		CompanyID:   unconfirmed.CompanyID(),
		Month:       unconfirmed.Month(),
		ActorID:     actor.ID,
	})
	return unconfirmed, nil
}
