package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreservices "github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/activity"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/meeting"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/person"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/subtask"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

// TreeController serves the objective's children: sub-tasks and their
// activities, meetings and people.
type TreeController struct {
	treeSvc    *services.TreeService
	contextSvc *coreservices.ContextService
	apiPrefix  string
}

func NewTreeController(treeSvc *services.TreeService, contextSvc *coreservices.ContextService) server.Controller {
	return &TreeController{
		treeSvc:    treeSvc,
		contextSvc: contextSvc,
		apiPrefix:  "/planning/api",
	}
}

func (c *TreeController) Key() string {
	return c.apiPrefix + "/sub-tasks"
}

func (c *TreeController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/objectives/{id}/sub-tasks", c.ListSubTasks).Methods(http.MethodGet)
	api.HandleFunc("/objectives/{id}/sub-tasks", c.CreateSubTask).Methods(http.MethodPost)
	api.HandleFunc("/sub-tasks/{id}", c.UpdateSubTask).Methods(http.MethodPatch)
	api.HandleFunc("/sub-tasks/{id}", c.DeleteSubTask).Methods(http.MethodDelete)
	api.HandleFunc("/sub-tasks/{id}/activities", c.ListActivities).Methods(http.MethodGet)
	api.HandleFunc("/sub-tasks/{id}/activities", c.CreateActivity).Methods(http.MethodPost)
	api.HandleFunc("/activities/{id}", c.UpdateActivity).Methods(http.MethodPatch)
	api.HandleFunc("/activities/{id}", c.DeleteActivity).Methods(http.MethodDelete)
	api.HandleFunc("/sub-tasks/{id}/meetings", c.CreateMeeting).Methods(http.MethodPost)
	api.HandleFunc("/meetings/{id}", c.DeleteMeeting).Methods(http.MethodDelete)
	api.HandleFunc("/sub-tasks/{id}/persons", c.CreatePerson).Methods(http.MethodPost)
	api.HandleFunc("/persons/{id}", c.DeletePerson).Methods(http.MethodDelete)
}

type subTaskResponse struct {
	ID          string `json:"id"`
	ObjectiveID string `json:"objectiveId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

func toSubTaskResponse(data *subtask.SubTask) *subTaskResponse {
	return &subTaskResponse{
		ID:          data.ID.String(),
		ObjectiveID: data.ObjectiveID.String(),
		Title:       data.Title,
		Description: data.Description,
		Done:        data.Done,
	}
}

type activityResponse struct {
	ID        string `json:"id"`
	SubTaskID string `json:"subTaskId"`
	Title     string `json:"title"`
	Cadence   string `json:"cadence"`
	Done      bool   `json:"done"`
}

func toActivityResponse(data *activity.Activity) *activityResponse {
	return &activityResponse{
		ID:        data.ID.String(),
		SubTaskID: data.SubTaskID.String(),
		Title:     data.Title,
		Cadence:   data.Cadence,
		Done:      data.Done,
	}
}

type meetingResponse struct {
	ID          string  `json:"id"`
	SubTaskID   string  `json:"subTaskId"`
	Title       string  `json:"title"`
	ScheduledAt *string `json:"scheduledAt"`
}

func toMeetingResponse(data *meeting.Meeting) *meetingResponse {
	resp := &meetingResponse{
		ID:        data.ID.String(),
		SubTaskID: data.SubTaskID.String(),
		Title:     data.Title,
	}
	if data.ScheduledAt != nil {
		formatted := data.ScheduledAt.UTC().Format(time.RFC3339)
		resp.ScheduledAt = &formatted
	}
	return resp
}

type personResponse struct {
	ID        string `json:"id"`
	SubTaskID string `json:"subTaskId"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
}

func toPersonResponse(data *person.Person) *personResponse {
	return &personResponse{
		ID:        data.ID.String(),
		SubTaskID: data.SubTaskID.String(),
		Name:      data.Name,
		Notes:     data.Notes,
	}
}

func (c *TreeController) ListSubTasks(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	items, err := c.treeSvc.ListSubTasks(r.Context(), id, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	out := make([]*subTaskResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSubTaskResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *TreeController) CreateSubTask(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.CreateSubTaskDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	created, err := c.treeSvc.CreateSubTask(r.Context(), services.CreateSubTaskParams{
		ObjectiveID: id,
		Title:       dto.Title,
		Description: dto.Description,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toSubTaskResponse(created))
}

func (c *TreeController) UpdateSubTask(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.UpdateSubTaskDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	updated, err := c.treeSvc.UpdateSubTask(r.Context(), id, dto.Title, dto.Description, dto.Done, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toSubTaskResponse(updated))
}

func (c *TreeController) DeleteSubTask(w http.ResponseWriter, r *http.Request) {
	c.delete(w, r, c.treeSvc.DeleteSubTask)
}

func (c *TreeController) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	items, err := c.treeSvc.ListActivities(r.Context(), id, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	out := make([]*activityResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toActivityResponse(item))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *TreeController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.CreateActivityDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	created, err := c.treeSvc.CreateActivity(r.Context(), services.CreateActivityParams{
		SubTaskID: id,
		Title:     dto.Title,
		Cadence:   dto.Cadence,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toActivityResponse(created))
}

func (c *TreeController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.UpdateActivityDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	updated, err := c.treeSvc.UpdateActivity(r.Context(), id, dto.Title, dto.Cadence, dto.Done, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toActivityResponse(updated))
}

func (c *TreeController) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	c.delete(w, r, c.treeSvc.DeleteActivity)
}

func (c *TreeController) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.CreateMeetingDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	var scheduledAt *time.Time
	if dto.ScheduledAt != nil {
		parsed, err := time.Parse(time.RFC3339, *dto.ScheduledAt)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_SCHEDULED_AT", "scheduledAt must be RFC 3339", nil)
			return
		}
		scheduledAt = &parsed
	}
	created, err := c.treeSvc.CreateMeeting(r.Context(), services.CreateMeetingParams{
		SubTaskID:   id,
		Title:       dto.Title,
		ScheduledAt: scheduledAt,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toMeetingResponse(created))
}

func (c *TreeController) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	c.delete(w, r, c.treeSvc.DeleteMeeting)
}

func (c *TreeController) CreatePerson(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	dto := &dtos.CreatePersonDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, valid := dto.Ok(); !valid {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	created, err := c.treeSvc.CreatePerson(r.Context(), services.CreatePersonParams{
		SubTaskID: id,
		Name:      dto.Name,
		Notes:     dto.Notes,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toPersonResponse(created))
}

func (c *TreeController) DeletePerson(w http.ResponseWriter, r *http.Request) {
	c.delete(w, r, c.treeSvc.DeletePerson)
}

func (c *TreeController) delete(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID, actor access.Actor) error,
) {
	id, actor, ok := c.requireActor(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), id, actor); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *TreeController) requireActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, access.Actor, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a uuid", nil)
		return uuid.Nil, access.Actor{}, false
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return uuid.Nil, access.Actor{}, false
	}
	return id, c.contextSvc.ActorFor(u), true
}

func (c *TreeController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrForbidden.Code, services.ErrForbidden.Message, nil)
	case errors.Is(err, subtask.ErrSubTaskNotFound),
		errors.Is(err, activity.ErrActivityNotFound),
		errors.Is(err, meeting.ErrMeetingNotFound),
		errors.Is(err, person.ErrPersonNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "PLAN_ITEM_NOT_FOUND", "plan item not found", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("plan tree operation failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}
