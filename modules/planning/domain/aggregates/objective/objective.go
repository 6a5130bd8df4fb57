package objective

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
)

// Objective is the root of the planning tree for one user and one month.
// Sub-tasks, activities, meetings and people all derive their owner, company
// and governing month from it.
type Objective struct {
	id          uuid.UUID
	companyID   uuid.UUID
	ownerID     uuid.UUID
	month       planmonth.Month
	title       string
	description string
	confirmedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type Option func(*Objective)

func WithID(id uuid.UUID) Option {
	return func(o *Objective) {
		o.id = id
	}
}

func WithDescription(description string) Option {
	return func(o *Objective) {
		o.description = description
	}
}

func WithConfirmedAt(confirmedAt *time.Time) Option {
	return func(o *Objective) {
		o.confirmedAt = confirmedAt
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(o *Objective) {
		o.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(o *Objective) {
		o.updatedAt = updatedAt
	}
}

func New(companyID, ownerID uuid.UUID, month planmonth.Month, title string, opts ...Option) *Objective {
	o := &Objective{
		id:        uuid.New(),
		companyID: companyID,
		ownerID:   ownerID,
		month:     month,
		title:     title,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Objective) ID() uuid.UUID {
	return o.id
}

func (o *Objective) CompanyID() uuid.UUID {
	return o.companyID
}

func (o *Objective) OwnerID() uuid.UUID {
	return o.ownerID
}

func (o *Objective) Month() planmonth.Month {
	return o.month
}

func (o *Objective) Title() string {
	return o.title
}

func (o *Objective) Description() string {
	return o.description
}

func (o *Objective) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

func (o *Objective) IsConfirmed() bool {
	return o.confirmedAt != nil
}

func (o *Objective) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Objective) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Objective) SetTitle(title string) {
	o.title = title
	o.updatedAt = time.Now()
}

func (o *Objective) SetDescription(description string) {
	o.description = description
	o.updatedAt = time.Now()
}

// Confirm marks the month plan rooted at this objective as completed.
func (o *Objective) Confirm(at time.Time) {
	o.confirmedAt = &at
	o.updatedAt = at
}

// Unconfirm reverts a completed plan. This is the single designated override
// that may touch a frozen month; the service layer restricts it to super
// admins.
func (o *Objective) Unconfirm() {
	o.confirmedAt = nil
	o.updatedAt = time.Now()
}
