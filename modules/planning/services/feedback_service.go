package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/feedback"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
)

var ErrNotSupervisor = serrors.NewError(
	"FEEDBACK_NOT_SUPERVISOR",
	"feedback requires a supervision relationship with the target's owner",
	"Feedback.NotSupervisor",
)

type CreateFeedbackParams struct {
	Target       feedback.TargetType
	ObjectiveID  *uuid.UUID
	TargetUserID *uuid.UUID
	Month        *planmonth.Month
	Body         string
}

// FeedbackService creates supervisor annotations. Authoring requires a
// supervision edge to the target's owner within the target's company;
// reading follows the target's owner through the access engine.
type FeedbackService struct {
	repo        feedback.Repository
	resolver    access.Resolver
	supervision supervision.Repository
	accessSvc   *AccessService
}

func NewFeedbackService(repo feedback.Repository, resolver access.Resolver, supervisionRepo supervision.Repository, accessSvc *AccessService) *FeedbackService {
	return &FeedbackService{
		repo:        repo,
		resolver:    resolver,
		supervision: supervisionRepo,
		accessSvc:   accessSvc,
	}
}

func (s *FeedbackService) GetByID(ctx context.Context, id uuid.UUID, actor access.Actor) (*feedback.Feedback, error) {
	allowed, err := s.accessSvc.CanAccessFeedback(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *FeedbackService) Create(ctx context.Context, params CreateFeedbackParams, actor access.Actor) (*feedback.Feedback, error) {
	own, err := s.targetOwnership(ctx, params, actor)
	if err != nil {
		return nil, err
	}

	// Supervisors annotate; admins and super admins may too, within the
	// target's company. Members never author feedback on others.
	authorized, err := s.mayAnnotate(ctx, actor, own)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, ErrNotSupervisor
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (*feedback.Feedback, error) {
		data := &feedback.Feedback{
			ID:           uuid.New(),
			CompanyID:    own.CompanyID,
			AuthorID:     actor.ID,
			Target:       params.Target,
			ObjectiveID:  params.ObjectiveID,
			TargetUserID: params.TargetUserID,
			Month:        params.Month,
			Body:         params.Body,
			CreatedAt:    timeNow(),
		}
		return s.repo.Create(txCtx, data)
	})
}

func (s *FeedbackService) targetOwnership(ctx context.Context, params CreateFeedbackParams, actor access.Actor) (access.Ownership, error) {
	switch params.Target {
	case feedback.TargetObjective:
		if params.ObjectiveID == nil {
			return access.Ownership{}, access.ErrOwnershipNotFound
		}
		return s.resolver.ResolveObjective(ctx, *params.ObjectiveID)
	case feedback.TargetMonthPlan:
		if params.TargetUserID == nil || params.Month == nil || actor.CompanyID == nil {
			return access.Ownership{}, access.ErrOwnershipNotFound
		}
		return access.Ownership{
			OwnerID:   *params.TargetUserID,
			CompanyID: *actor.CompanyID,
			Month:     *params.Month,
		}, nil
	default:
		return access.Ownership{}, access.ErrOwnershipNotFound
	}
}

func (s *FeedbackService) mayAnnotate(ctx context.Context, actor access.Actor, own access.Ownership) (bool, error) {
	if actor.SuperAdmin {
		return actor.CompanyID != nil, nil
	}
	if !actor.ActingIn(own.CompanyID) {
		return false, nil
	}
	switch actor.Role {
	case user.RoleCompanyAdmin:
		return true, nil
	case user.RoleSupervisor:
		return s.supervision.Exists(ctx, own.CompanyID, own.OwnerID, actor.ID)
	default:
		return false, nil
	}
}
