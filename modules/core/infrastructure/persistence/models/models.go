package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	SuperAdmin      bool
	ActiveCompanyID sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type UserCompanyRole struct {
	UserID       string
	CompanyID    string
	Role         string
	SupervisorID sql.NullString
}

type Company struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SupervisorAssignment struct {
	ID            string
	CompanyID     string
	SubordinateID string
	SupervisorID  string
	CreatedAt     time.Time
}
