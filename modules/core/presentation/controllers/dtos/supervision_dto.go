package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/dsalvat/fase-platform-sub001/pkg/constants"
)

type AssignSupervisorDTO struct {
	CompanyID     string `json:"companyId" validate:"required,uuid"`
	SubordinateID string `json:"subordinateId" validate:"required,uuid"`
	SupervisorID  string `json:"supervisorId" validate:"required,uuid"`
}

func (dto *AssignSupervisorDTO) Ok() (validator.ValidationErrors, bool) {
	err := constants.Validate.Struct(dto)
	if err == nil {
		return nil, true
	}
	return err.(validator.ValidationErrors), false
}
