package user

import (
	"time"

	"github.com/google/uuid"
)

// CompanyAssignment binds a user to one company with a role and an optional
// supervisor within that company. A user holds at most one assignment per
// company.
type CompanyAssignment struct {
	CompanyID    uuid.UUID
	Role         Role
	SupervisorID *uuid.UUID
}

type User struct {
	id              uuid.UUID
	email           string
	firstName       string
	lastName        string
	superAdmin      bool
	activeCompanyID *uuid.UUID
	assignments     []CompanyAssignment
	createdAt       time.Time
	updatedAt       time.Time
}

type Option func(*User)

func WithID(id uuid.UUID) Option {
	return func(u *User) {
		u.id = id
	}
}

func WithName(firstName, lastName string) Option {
	return func(u *User) {
		u.firstName = firstName
		u.lastName = lastName
	}
}

func WithSuperAdmin(superAdmin bool) Option {
	return func(u *User) {
		u.superAdmin = superAdmin
	}
}

// WithActiveCompanyID sets the company the user currently acts in. For super
// admins nil means "operate across all companies".
func WithActiveCompanyID(companyID *uuid.UUID) Option {
	return func(u *User) {
		u.activeCompanyID = companyID
	}
}

func WithAssignments(assignments []CompanyAssignment) Option {
	return func(u *User) {
		u.assignments = assignments
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(u *User) {
		u.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(u *User) {
		u.updatedAt = updatedAt
	}
}

func New(email string, opts ...Option) *User {
	u := &User{
		id:        uuid.New(),
		email:     email,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *User) ID() uuid.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) IsSuperAdmin() bool {
	return u.superAdmin
}

func (u *User) ActiveCompanyID() *uuid.UUID {
	return u.activeCompanyID
}

func (u *User) Assignments() []CompanyAssignment {
	return u.assignments
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// AssignmentFor returns the user's assignment in the given company.
func (u *User) AssignmentFor(companyID uuid.UUID) (CompanyAssignment, bool) {
	for _, a := range u.assignments {
		if a.CompanyID == companyID {
			return a, true
		}
	}
	return CompanyAssignment{}, false
}

// RoleIn returns the user's role in the given company.
func (u *User) RoleIn(companyID uuid.UUID) (Role, bool) {
	a, ok := u.AssignmentFor(companyID)
	if !ok {
		return "", false
	}
	return a.Role, true
}

// AssignTo grants or replaces the user's role in the given company. A user
// holds at most one assignment per company.
func (u *User) AssignTo(companyID uuid.UUID, role Role) {
	for i, a := range u.assignments {
		if a.CompanyID == companyID {
			u.assignments[i].Role = role
			u.updatedAt = time.Now()
			return
		}
	}
	u.assignments = append(u.assignments, CompanyAssignment{CompanyID: companyID, Role: role})
	u.updatedAt = time.Now()
}

// SelectCompany changes the company the user acts in. nil clears the
// selection, which for super admins means cross-company scope.
func (u *User) SelectCompany(companyID *uuid.UUID) {
	u.activeCompanyID = companyID
	u.updatedAt = time.Now()
}
