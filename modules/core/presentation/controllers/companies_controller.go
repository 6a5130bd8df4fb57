package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/entities/company"
	"github.com/dsalvat/fase-platform-sub001/modules/core/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type CompaniesController struct {
	companySvc *services.CompanyService
	apiPrefix  string
}

func NewCompaniesController(companySvc *services.CompanyService) server.Controller {
	return &CompaniesController{
		companySvc: companySvc,
		apiPrefix:  "/core/api/companies",
	}
}

func (c *CompaniesController) Key() string {
	return c.apiPrefix
}

func (c *CompaniesController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

type companyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func toCompanyResponse(data *company.Company) *companyResponse {
	return &companyResponse{
		ID:       data.ID().String(),
		Name:     data.Name(),
		IsActive: data.IsActive(),
	}
}

func (c *CompaniesController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.companySvc.GetAll(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	out := make([]*companyResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCompanyResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *CompaniesController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateCompanyDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	created, err := c.companySvc.Create(r.Context(), dto.Name, u)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toCompanyResponse(created))
}

func (c *CompaniesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_COMPANY_ID", "id must be a uuid", nil)
		return
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	if err := c.companySvc.Delete(r.Context(), id, u); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CompaniesController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrCompanyAdminOnly):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrCompanyAdminOnly.Code, services.ErrCompanyAdminOnly.Message, nil)
	case errors.Is(err, company.ErrCompanyNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("company operation failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}
