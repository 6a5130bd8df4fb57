package access

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

// ErrOwnershipNotFound is returned when an object or any ancestor in its
// chain is missing. Callers must treat it as deny, never as allow.
var ErrOwnershipNotFound = errors.New("ownership not found")

// Ownership is the resolved governing context of a planning object: the user
// who owns it, the company it belongs to and the month that gates writes.
// None of these are stored on child objects; they are derived from the
// owning objective.
type Ownership struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	Month     planmonth.Month
}

// Resolver resolves ownership for every object type in the planning tree.
// Each method performs a single consistent read joining through the parent
// chain, so a concurrent delete of an intermediate ancestor surfaces as
// ErrOwnershipNotFound rather than a torn result.
type Resolver interface {
	ResolveObjective(ctx context.Context, id uuid.UUID) (Ownership, error)
	ResolveSubTask(ctx context.Context, id uuid.UUID) (Ownership, error)
	ResolveActivity(ctx context.Context, id uuid.UUID) (Ownership, error)
	ResolveMeeting(ctx context.Context, id uuid.UUID) (Ownership, error)
	ResolvePerson(ctx context.Context, id uuid.UUID) (Ownership, error)
	ResolveFeedback(ctx context.Context, id uuid.UUID) (Ownership, error)
}

// Actor is the resolved acting identity for one request: who is asking, with
// which role, in which company context. It is built once per request from
// the authenticated user and passed explicitly so the engine stays free of
// ambient session state.
type Actor struct {
	ID         uuid.UUID
	SuperAdmin bool
	// CompanyID is the company the actor currently acts in. Nil for a super
	// admin operating across all companies; mutations always require a
	// concrete company.
	CompanyID *uuid.UUID
	// Role is the actor's role in CompanyID. Empty when CompanyID is nil or
	// the actor has no assignment there.
	Role user.Role
}

// ActingIn reports whether the actor's current company is companyID.
func (a Actor) ActingIn(companyID uuid.UUID) bool {
	return a.CompanyID != nil && *a.CompanyID == companyID
}

// DenyReason distinguishes deny outcomes for callers that render different
// messages; the boolean predicates themselves never expose it.
type DenyReason string

const (
	DenyNone        DenyReason = ""
	DenyNotFound    DenyReason = "not_found"
	DenyForbidden   DenyReason = "forbidden"
	DenyMonthFrozen DenyReason = "month_frozen"
	DenyNoCompany   DenyReason = "no_company"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}
