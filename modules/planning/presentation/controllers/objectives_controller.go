package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreservices "github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/aggregates/objective"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type ObjectivesController struct {
	objectiveSvc *services.ObjectiveService
	contextSvc   *coreservices.ContextService
	apiPrefix    string
}

func NewObjectivesController(objectiveSvc *services.ObjectiveService, contextSvc *coreservices.ContextService) server.Controller {
	return &ObjectivesController{
		objectiveSvc: objectiveSvc,
		contextSvc:   contextSvc,
		apiPrefix:    "/planning/api/objectives",
	}
}

func (c *ObjectivesController) Key() string {
	return c.apiPrefix
}

func (c *ObjectivesController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	api.HandleFunc("/{id}", c.Update).Methods(http.MethodPatch)
	api.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/{id}:confirm", c.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/{id}:unconfirm", c.Unconfirm).Methods(http.MethodPost)
}

type objectiveResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"companyId"`
	OwnerID     string  `json:"ownerId"`
	Month       string  `json:"month"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ConfirmedAt *string `json:"confirmedAt"`
}

func toObjectiveResponse(data *objective.Objective) *objectiveResponse {
	resp := &objectiveResponse{
		ID:          data.ID().String(),
		CompanyID:   data.CompanyID().String(),
		OwnerID:     data.OwnerID().String(),
		Month:       data.Month().String(),
		Title:       data.Title(),
		Description: data.Description(),
	}
	if confirmedAt := data.ConfirmedAt(); confirmedAt != nil {
		formatted := confirmedAt.UTC().Format(time.RFC3339)
		resp.ConfirmedAt = &formatted
	}
	return resp
}

func (c *ObjectivesController) List(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}

	params := &objective.FindParams{Limit: 50}
	query := r.URL.Query()
	if raw := query.Get("ownerId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_OWNER_ID", "ownerId must be a uuid", nil)
			return
		}
		params.OwnerID = &ownerID
	}
	if raw := query.Get("month"); raw != "" {
		month, err := planmonth.Parse(raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_MONTH", "month must be formatted YYYY-MM", nil)
			return
		}
		params.Month = &month
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 200 {
			params.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	items, err := c.objectiveSvc.GetPaginated(r.Context(), params, c.contextSvc.ActorFor(u))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	out := make([]*objectiveResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toObjectiveResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *ObjectivesController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateObjectiveDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	month, err := planmonth.Parse(dto.Month)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_MONTH", "month must be formatted YYYY-MM", nil)
		return
	}

	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}

	created, err := c.objectiveSvc.Create(r.Context(), services.CreateObjectiveParams{
		OwnerID:     uuid.MustParse(dto.OwnerID),
		CompanyID:   uuid.MustParse(dto.CompanyID),
		Month:       month,
		Title:       dto.Title,
		Description: dto.Description,
	}, c.contextSvc.ActorFor(u))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toObjectiveResponse(created))
}

func (c *ObjectivesController) Get(w http.ResponseWriter, r *http.Request) {
	c.withObjective(w, r, func(id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
		return c.objectiveSvc.GetByID(r.Context(), id, actor)
	}, http.StatusOK)
}

func (c *ObjectivesController) Update(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.UpdateObjectiveDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	c.withObjective(w, r, func(id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
		return c.objectiveSvc.Update(r.Context(), id, dto.Title, dto.Description, actor)
	}, http.StatusOK)
}

func (c *ObjectivesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireObjectiveActor(w, r)
	if !ok {
		return
	}
	if err := c.objectiveSvc.Delete(r.Context(), id, actor); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ObjectivesController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.withObjective(w, r, func(id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
		return c.objectiveSvc.Confirm(r.Context(), id, actor)
	}, http.StatusOK)
}

func (c *ObjectivesController) Unconfirm(w http.ResponseWriter, r *http.Request) {
	c.withObjective(w, r, func(id uuid.UUID, actor access.Actor) (*objective.Objective, error) {
		return c.objectiveSvc.Unconfirm(r.Context(), id, actor)
	}, http.StatusOK)
}

func (c *ObjectivesController) requireObjectiveActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, access.Actor, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_OBJECTIVE_ID", "id must be a uuid", nil)
		return uuid.Nil, access.Actor{}, false
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return uuid.Nil, access.Actor{}, false
	}
	return id, c.contextSvc.ActorFor(u), true
}

func (c *ObjectivesController) withObjective(
	w http.ResponseWriter,
	r *http.Request,
	op func(id uuid.UUID, actor access.Actor) (*objective.Objective, error),
	status int,
) {
	id, actor, ok := c.requireObjectiveActor(w, r)
	if !ok {
		return
	}
	data, err := op(id, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, status, toObjectiveResponse(data))
}

func (c *ObjectivesController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrForbidden.Code, services.ErrForbidden.Message, nil)
	case errors.Is(err, services.ErrUnconfirmReserved):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrUnconfirmReserved.Code, services.ErrUnconfirmReserved.Message, nil)
	case errors.Is(err, objective.ErrObjectiveNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "OBJECTIVE_NOT_FOUND", "objective not found", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("objective operation failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}
