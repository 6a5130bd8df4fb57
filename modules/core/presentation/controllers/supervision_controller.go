package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/serrors"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type SupervisionController struct {
	supervisionSvc *services.SupervisionService
	contextSvc     *services.ContextService
	apiPrefix      string
}

func NewSupervisionController(supervisionSvc *services.SupervisionService, contextSvc *services.ContextService) server.Controller {
	return &SupervisionController{
		supervisionSvc: supervisionSvc,
		contextSvc:     contextSvc,
		apiPrefix:      "/core/api",
	}
}

func (c *SupervisionController) Key() string {
	return c.apiPrefix
}

func (c *SupervisionController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/supervision", c.Assign).Methods(http.MethodPost)
	api.HandleFunc("/supervision/{companyId}/{subordinateId}", c.Remove).Methods(http.MethodDelete)
}

// Assign wires a supervisor to a subordinate. Only a company admin of the
// target company or a super admin may rewire the chain.
func (c *SupervisionController) Assign(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.AssignSupervisorDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}

	companyID := uuid.MustParse(dto.CompanyID)
	if !c.mayManage(w, r, companyID) {
		return
	}

	_, err := c.supervisionSvc.Assign(r.Context(), services.AssignSupervisorParams{
		CompanyID:     companyID,
		SubordinateID: uuid.MustParse(dto.SubordinateID),
		SupervisorID:  uuid.MustParse(dto.SupervisorID),
	})
	if err != nil {
		var base *serrors.BaseError
		if errors.As(err, &base) {
			_ = httpapi.WriteError(w, http.StatusConflict, base.Code, base.Message, nil)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to assign supervisor")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *SupervisionController) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	companyID, err := uuid.Parse(vars["companyId"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_COMPANY_ID", "companyId must be a uuid", nil)
		return
	}
	subordinateID, err := uuid.Parse(vars["subordinateId"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "subordinateId must be a uuid", nil)
		return
	}
	if !c.mayManage(w, r, companyID) {
		return
	}
	if err := c.supervisionSvc.Remove(r.Context(), companyID, subordinateID); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to remove supervisor")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *SupervisionController) mayManage(w http.ResponseWriter, r *http.Request, companyID uuid.UUID) bool {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return false
	}
	actor := c.contextSvc.ActorFor(u)
	if actor.SuperAdmin {
		return true
	}
	if role, ok := u.RoleIn(companyID); ok && role == user.RoleCompanyAdmin && actor.ActingIn(companyID) {
		return true
	}
	_ = httpapi.WriteError(w, http.StatusForbidden, "ACCESS_FORBIDDEN", "permission denied", nil)
	return false
}
