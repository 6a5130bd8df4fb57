package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/supervision"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

// AccessService is the access decision engine. Every restricted read and
// every mutation of the planning tree goes through its predicates. The
// predicates are pure authorization queries: they never mutate state and are
// safe to call speculatively, e.g. to decide whether to render a button.
//
// An ordinary deny is a false return, never an error; errors are reserved
// for storage failures.
type AccessService struct {
	resolver    access.Resolver
	supervision supervision.Repository
	months      *MonthService
}

func NewAccessService(resolver access.Resolver, supervisionRepo supervision.Repository, months *MonthService) *AccessService {
	return &AccessService{
		resolver:    resolver,
		supervision: supervisionRepo,
		months:      months,
	}
}

type resolveFn func(ctx context.Context, id uuid.UUID) (access.Ownership, error)

func (s *AccessService) canAccess(ctx context.Context, object string, resolve resolveFn, id uuid.UUID, actor access.Actor) (bool, error) {
	d, err := s.decideAccess(ctx, resolve, id, actor)
	if err != nil {
		return false, err
	}
	recordDecision(object, "access", d)
	return d.Allowed, nil
}

func (s *AccessService) canModify(ctx context.Context, object string, resolve resolveFn, id uuid.UUID, actor access.Actor) (bool, error) {
	d, err := s.decideModify(ctx, resolve, id, actor)
	if err != nil {
		return false, err
	}
	recordDecision(object, "modify", d)
	return d.Allowed, nil
}

func (s *AccessService) decideAccess(ctx context.Context, resolve resolveFn, id uuid.UUID, actor access.Actor) (access.Decision, error) {
	own, err := resolve(ctx, id)
	if err != nil {
		if errors.Is(err, access.ErrOwnershipNotFound) {
			return access.Deny(access.DenyNotFound), nil
		}
		return access.Decision{}, err
	}
	return s.accessRules(ctx, actor, own)
}

func (s *AccessService) decideModify(ctx context.Context, resolve resolveFn, id uuid.UUID, actor access.Actor) (access.Decision, error) {
	own, err := resolve(ctx, id)
	if err != nil {
		if errors.Is(err, access.ErrOwnershipNotFound) {
			return access.Deny(access.DenyNotFound), nil
		}
		return access.Decision{}, err
	}
	return s.modifyRules(ctx, actor, own)
}

// accessRules applies the composition order for reads: super admin, owner,
// company admin within the company, then supervisor of the owner within the
// object's own company. Cross-company supervision is never inferred.
func (s *AccessService) accessRules(ctx context.Context, actor access.Actor, own access.Ownership) (access.Decision, error) {
	if actor.SuperAdmin {
		return access.Allow(), nil
	}
	if actor.ID == own.OwnerID {
		return access.Allow(), nil
	}
	if !actor.ActingIn(own.CompanyID) {
		return access.Deny(access.DenyForbidden), nil
	}
	switch actor.Role {
	case user.RoleCompanyAdmin:
		return access.Allow(), nil
	case user.RoleSupervisor:
		supervises, err := s.supervision.Exists(ctx, own.CompanyID, own.OwnerID, actor.ID)
		if err != nil {
			return access.Decision{}, err
		}
		if supervises {
			return access.Allow(), nil
		}
	}
	return access.Deny(access.DenyForbidden), nil
}

// modifyRules applies the composition order for writes. Privilege never
// overrides the temporal freeze: a past month denies modification for every
// role, super admin included; the only way around it is the designated
// unconfirm operation. Supervisors never modify a subordinate's objects —
// supervision is observational plus feedback, not proxy-editing.
func (s *AccessService) modifyRules(ctx context.Context, actor access.Actor, own access.Ownership) (access.Decision, error) {
	if actor.SuperAdmin {
		if actor.CompanyID == nil {
			return access.Deny(access.DenyNoCompany), nil
		}
		if s.months.IsReadOnly(own.Month) {
			return access.Deny(access.DenyMonthFrozen), nil
		}
		return access.Allow(), nil
	}

	if actor.ID == own.OwnerID {
		return s.temporalGate(ctx, own)
	}
	if actor.ActingIn(own.CompanyID) && actor.Role == user.RoleCompanyAdmin {
		return s.temporalGate(ctx, own)
	}
	return access.Deny(access.DenyForbidden), nil
}

// temporalGate checks write-eligibility of the governing month against the
// owning user: current is always writable, future only once the owner opened
// it, past never.
func (s *AccessService) temporalGate(ctx context.Context, own access.Ownership) (access.Decision, error) {
	if s.months.IsReadOnly(own.Month) {
		return access.Deny(access.DenyMonthFrozen), nil
	}
	writable, err := s.months.IsWritable(ctx, own.OwnerID, own.Month)
	if err != nil {
		return access.Decision{}, err
	}
	if !writable {
		return access.Deny(access.DenyMonthFrozen), nil
	}
	return access.Allow(), nil
}

// CanCreateObjective authorizes creating a new objective for ownerID in
// companyID and month. Creation has no object to resolve yet, so the
// ownership triple is supplied by the caller.
func (s *AccessService) CanCreateObjective(ctx context.Context, actor access.Actor, ownerID, companyID uuid.UUID, month planmonth.Month) (bool, error) {
	d, err := s.modifyRules(ctx, actor, access.Ownership{
		OwnerID:   ownerID,
		CompanyID: companyID,
		Month:     month,
	})
	if err != nil {
		return false, err
	}
	recordDecision("objective", "create", d)
	return d.Allowed, nil
}

func (s *AccessService) CanAccessObjective(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "objective", s.resolver.ResolveObjective, id, actor)
}

func (s *AccessService) CanModifyObjective(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "objective", s.resolver.ResolveObjective, id, actor)
}

func (s *AccessService) CanAccessSubTask(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "subtask", s.resolver.ResolveSubTask, id, actor)
}

func (s *AccessService) CanModifySubTask(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "subtask", s.resolver.ResolveSubTask, id, actor)
}

func (s *AccessService) CanAccessActivity(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "activity", s.resolver.ResolveActivity, id, actor)
}

func (s *AccessService) CanModifyActivity(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "activity", s.resolver.ResolveActivity, id, actor)
}

func (s *AccessService) CanAccessMeeting(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "meeting", s.resolver.ResolveMeeting, id, actor)
}

func (s *AccessService) CanModifyMeeting(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "meeting", s.resolver.ResolveMeeting, id, actor)
}

func (s *AccessService) CanAccessPerson(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "person", s.resolver.ResolvePerson, id, actor)
}

func (s *AccessService) CanModifyPerson(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "person", s.resolver.ResolvePerson, id, actor)
}

func (s *AccessService) CanAccessFeedback(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canAccess(ctx, "feedback", s.resolver.ResolveFeedback, id, actor)
}

func (s *AccessService) CanModifyFeedback(ctx context.Context, id uuid.UUID, actor access.Actor) (bool, error) {
	return s.canModify(ctx, "feedback", s.resolver.ResolveFeedback, id, actor)
}

// DecideModifyObjective exposes the full decision (with deny reason) for
// callers that render different messages for "no permission" versus "this
// period is read-only".
func (s *AccessService) DecideModifyObjective(ctx context.Context, id uuid.UUID, actor access.Actor) (access.Decision, error) {
	return s.decideModify(ctx, s.resolver.ResolveObjective, id, actor)
}
