package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/dsalvat/fase-platform-sub001/pkg/constants"
)

type AssignRoleDTO struct {
	CompanyID string `json:"companyId" validate:"required,uuid"`
	Role      string `json:"role" validate:"required,oneof=member supervisor company_admin"`
}

type SelectCompanyDTO struct {
	CompanyID *string `json:"companyId" validate:"omitempty,uuid"`
}

type CreateCompanyDTO struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (dto *AssignRoleDTO) Ok() (validator.ValidationErrors, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return err.(validator.ValidationErrors), false
	}
	return nil, true
}

func (dto *SelectCompanyDTO) Ok() (validator.ValidationErrors, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return err.(validator.ValidationErrors), false
	}
	return nil, true
}

func (dto *CreateCompanyDTO) Ok() (validator.ValidationErrors, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return err.(validator.ValidationErrors), false
	}
	return nil, true
}
