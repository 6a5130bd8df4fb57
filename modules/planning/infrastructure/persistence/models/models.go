package models

import (
	"database/sql"
	"time"
)

type Objective struct {
	ID          string
	CompanyID   string
	OwnerID     string
	Month       string
	Title       string
	Description string
	ConfirmedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SubTask struct {
	ID          string
	ObjectiveID string
	Title       string
	Description string
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Activity struct {
	ID        string
	SubTaskID string
	Title     string
	Cadence   string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meeting struct {
	ID          string
	SubTaskID   string
	Title       string
	ScheduledAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Person struct {
	ID        string
	SubTaskID string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OpenMonth struct {
	ID        string
	UserID    string
	Month     string
	CreatedAt time.Time
}

type Feedback struct {
	ID           string
	CompanyID    string
	AuthorID     string
	Target       string
	ObjectiveID  sql.NullString
	TargetUserID sql.NullString
	Month        sql.NullString
	Body         string
	CreatedAt    time.Time
}
