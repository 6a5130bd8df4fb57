package controllers

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreservices "github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/access"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/entities/feedback"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type FeedbackController struct {
	feedbackSvc *services.FeedbackService
	contextSvc  *coreservices.ContextService
	apiPrefix   string
}

func NewFeedbackController(feedbackSvc *services.FeedbackService, contextSvc *coreservices.ContextService) server.Controller {
	return &FeedbackController{
		feedbackSvc: feedbackSvc,
		contextSvc:  contextSvc,
		apiPrefix:   "/planning/api/feedback",
	}
}

func (c *FeedbackController) Key() string {
	return c.apiPrefix
}

func (c *FeedbackController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("", c.Create).Methods(http.MethodPost)
	api.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

type feedbackResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"companyId"`
	AuthorID     string  `json:"authorId"`
	Target       string  `json:"target"`
	ObjectiveID  *string `json:"objectiveId,omitempty"`
	TargetUserID *string `json:"targetUserId,omitempty"`
	Month        *string `json:"month,omitempty"`
	Body         string  `json:"body"`
	CreatedAt    string  `json:"createdAt"`
}

func toFeedbackResponse(data *feedback.Feedback) *feedbackResponse {
	resp := &feedbackResponse{
		ID:        data.ID.String(),
		CompanyID: data.CompanyID.String(),
		AuthorID:  data.AuthorID.String(),
		Target:    string(data.Target),
		Body:      data.Body,
		CreatedAt: data.CreatedAt.UTC().Format(time.RFC3339),
	}
	if data.ObjectiveID != nil {
		s := data.ObjectiveID.String()
		resp.ObjectiveID = &s
	}
	if data.TargetUserID != nil {
		s := data.TargetUserID.String()
		resp.TargetUserID = &s
	}
	if data.Month != nil {
		s := data.Month.String()
		resp.Month = &s
	}
	return resp
}

func (c *FeedbackController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateFeedbackDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}

	params := services.CreateFeedbackParams{
		Target: feedback.TargetType(dto.Target),
		Body:   dto.Body,
	}
	if dto.ObjectiveID != nil {
		objectiveID := uuid.MustParse(*dto.ObjectiveID)
		params.ObjectiveID = &objectiveID
	}
	if dto.TargetUserID != nil {
		targetUserID := uuid.MustParse(*dto.TargetUserID)
		params.TargetUserID = &targetUserID
	}
	if dto.Month != nil {
		month, err := planmonth.Parse(*dto.Month)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_MONTH", "month must be formatted YYYY-MM", nil)
			return
		}
		params.Month = &month
	}

	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}

	created, err := c.feedbackSvc.Create(r.Context(), params, c.contextSvc.ActorFor(u))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, toFeedbackResponse(created))
}

func (c *FeedbackController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FEEDBACK_ID", "id must be a uuid", nil)
		return
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	data, err := c.feedbackSvc.GetByID(r.Context(), id, c.contextSvc.ActorFor(u))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toFeedbackResponse(data))
}

func (c *FeedbackController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotSupervisor):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrNotSupervisor.Code, services.ErrNotSupervisor.Message, nil)
	case errors.Is(err, services.ErrForbidden):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrForbidden.Code, services.ErrForbidden.Message, nil)
	case errors.Is(err, access.ErrOwnershipNotFound), errors.Is(err, feedback.ErrFeedbackNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "FEEDBACK_TARGET_NOT_FOUND", "feedback target not found", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("feedback operation failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}
