package controllers

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dsalvat/fase-platform-sub001/modules/core/domain/aggregates/user"
	"github.com/dsalvat/fase-platform-sub001/modules/core/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/core/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type UsersController struct {
	userSvc   *services.UserService
	apiPrefix string
}

func NewUsersController(userSvc *services.UserService) server.Controller {
	return &UsersController{
		userSvc:   userSvc,
		apiPrefix: "/core/api/users",
	}
}

func (c *UsersController) Key() string {
	return c.apiPrefix
}

func (c *UsersController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/me", c.Me).Methods(http.MethodGet)
	api.HandleFunc("/{id}/roles", c.AssignRole).Methods(http.MethodPost)
	api.HandleFunc("/select-company", c.SelectCompany).Methods(http.MethodPost)
}

type assignmentResponse struct {
	CompanyID string `json:"companyId"`
	Role      string `json:"role"`
}

type userResponse struct {
	ID              string               `json:"id"`
	Email           string               `json:"email"`
	FirstName       string               `json:"firstName"`
	LastName        string               `json:"lastName"`
	SuperAdmin      bool                 `json:"superAdmin"`
	ActiveCompanyID *string              `json:"activeCompanyId"`
	Assignments     []assignmentResponse `json:"assignments"`
	CreatedAt       string               `json:"createdAt"`
}

func toUserResponse(u *user.User) *userResponse {
	resp := &userResponse{
		ID:         u.ID().String(),
		Email:      u.Email(),
		FirstName:  u.FirstName(),
		LastName:   u.LastName(),
		SuperAdmin: u.IsSuperAdmin(),
		CreatedAt:  u.CreatedAt().UTC().Format(time.RFC3339),
	}
	if active := u.ActiveCompanyID(); active != nil {
		formatted := active.String()
		resp.ActiveCompanyID = &formatted
	}
	for _, a := range u.Assignments() {
		resp.Assignments = append(resp.Assignments, assignmentResponse{
			CompanyID: a.CompanyID.String(),
			Role:      a.Role.String(),
		})
	}
	return resp
}

func (c *UsersController) Me(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

func (c *UsersController) AssignRole(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_USER_ID", "id must be a uuid", nil)
		return
	}
	dto := &dtos.AssignRoleDTO{}
	if !httpapi.DecodeJSON(w, r, dto) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteValidationError(w, errs)
		return
	}
	actor, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_ROLE", err.Error(), nil)
		return
	}
	updated, err := c.userSvc.AssignRole(r.Context(), targetID, uuid.MustParse(dto.CompanyID), role, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

func (c *UsersController) SelectCompany(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.SelectCompanyDTO{}
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

	var companyID *uuid.UUID
	if dto.CompanyID != nil {
		parsed := uuid.MustParse(*dto.CompanyID)
		companyID = &parsed
	}
	updated, err := c.userSvc.SelectCompany(r.Context(), u, companyID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

func (c *UsersController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrRoleChangeForbidden):
		_ = httpapi.WriteError(w, http.StatusForbidden, services.ErrRoleChangeForbidden.Code, services.ErrRoleChangeForbidden.Message, nil)
	case errors.Is(err, services.ErrCompanyNotAssigned):
		_ = httpapi.WriteError(w, http.StatusConflict, services.ErrCompanyNotAssigned.Code, services.ErrCompanyNotAssigned.Message, nil)
	case errors.Is(err, user.ErrUserNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("user operation failed")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
	}
}
