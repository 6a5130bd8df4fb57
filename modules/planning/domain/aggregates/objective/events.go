package objective

import (
	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

// Events published on the in-process bus after a permitted mutation. They
// feed gamification and audit subscribers; delivery is best-effort and never
// blocks the mutation that produced them.

type CreatedEvent struct {
	ObjectiveID uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	Month       planmonth.Month
}

type ConfirmedEvent struct {
	ObjectiveID uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	Month       planmonth.Month
}

type UnconfirmedEvent struct {
	ObjectiveID uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
	Month       planmonth.Month
	// ActorID is the super admin who exercised the override.
	ActorID uuid.UUID
}

type DeletedEvent struct {
	ObjectiveID uuid.UUID
	OwnerID     uuid.UUID
	CompanyID   uuid.UUID
}
