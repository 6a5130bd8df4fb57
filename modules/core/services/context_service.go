package services

import (
	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
)

// CompanyContext is the acting company resolved for one request. A nil
// CompanyID is only meaningful for a super admin and means "operate across
// all companies", which is a read-only scope: no domain object can be
// mutated without a concrete company.
type CompanyContext struct {
	CompanyID  *uuid.UUID
	SuperAdmin bool
}

// CanMutate reports whether mutations are possible in this context.
func (c CompanyContext) CanMutate() bool {
	return c.CompanyID != nil
}

// ContextService resolves the acting company and role for a user. It is a
// pure lookup over the user aggregate; switching the selected company is a
// separate, separately-authorized operation.
type ContextService struct{}

func NewContextService() *ContextService {
	return &ContextService{}
}

// Resolve determines the acting company for u. A super admin without an
// explicit selection gets a nil company. A regular user gets their selected
// company only if they actually hold an assignment there; otherwise the
// context fails closed with no company, which denies every downstream check.
func (s *ContextService) Resolve(u *user.User) CompanyContext {
	if u == nil {
		return CompanyContext{}
	}
	if u.IsSuperAdmin() {
		return CompanyContext{CompanyID: u.ActiveCompanyID(), SuperAdmin: true}
	}
	active := u.ActiveCompanyID()
	if active == nil {
		return CompanyContext{}
	}
	if _, ok := u.AssignmentFor(*active); !ok {
		return CompanyContext{}
	}
	return CompanyContext{CompanyID: active}
}

// ActorFor builds the access engine's actor from the resolved context. The
// role is the user's role in the acting company; empty when there is none.
func (s *ContextService) ActorFor(u *user.User) access.Actor {
	if u == nil {
		return access.Actor{}
	}
	cc := s.Resolve(u)
	actor := access.Actor{
		ID:         u.ID(),
		SuperAdmin: cc.SuperAdmin,
		CompanyID:  cc.CompanyID,
	}
	if cc.CompanyID != nil {
		if role, ok := u.RoleIn(*cc.CompanyID); ok {
			actor.Role = role
		}
	}
	return actor
}
