package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/dsalvat/fase-platform-sub001/pkg/constants"
)

type OpenMonthDTO struct {
	Month string `json:"month" validate:"required,len=7"`
}

type CreateObjectiveDTO struct {
	OwnerID     string `json:"ownerId" validate:"required,uuid"`
	CompanyID   string `json:"companyId" validate:"required,uuid"`
	Month       string `json:"month" validate:"required,len=7"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

type UpdateObjectiveDTO struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

type CreateFeedbackDTO struct {
	Target       string  `json:"target" validate:"required,oneof=objective month_plan"`
	ObjectiveID  *string `json:"objectiveId" validate:"omitempty,uuid"`
	TargetUserID *string `json:"targetUserId" validate:"omitempty,uuid"`
	Month        *string `json:"month" validate:"omitempty,len=7"`
	Body         string  `json:"body" validate:"required,max=4000"`
}

type CreateSubTaskDTO struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

type UpdateSubTaskDTO struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	Done        bool   `json:"done"`
}

type CreateActivityDTO struct {
	Title   string `json:"title" validate:"required,max=255"`
	Cadence string `json:"cadence" validate:"omitempty,oneof=daily weekly"`
}

type UpdateActivityDTO struct {
	Title   string `json:"title" validate:"required,max=255"`
	Cadence string `json:"cadence" validate:"omitempty,oneof=daily weekly"`
	Done    bool   `json:"done"`
}

type CreateMeetingDTO struct {
	Title       string  `json:"title" validate:"required,max=255"`
	ScheduledAt *string `json:"scheduledAt" validate:"omitempty"`
}

type CreatePersonDTO struct {
	Name  string `json:"name" validate:"required,max=255"`
	Notes string `json:"notes" validate:"omitempty,max=4000"`
}

func validate(dto any) (validator.ValidationErrors, bool) {
	err := constants.Validate.Struct(dto)
	if err == nil {
		return nil, true
	}
	return err.(validator.ValidationErrors), false
}

func (dto *OpenMonthDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreateObjectiveDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *UpdateObjectiveDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreateFeedbackDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreateSubTaskDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *UpdateSubTaskDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreateActivityDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *UpdateActivityDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreateMeetingDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }

func (dto *CreatePersonDTO) Ok() (validator.ValidationErrors, bool) { return validate(dto) }
