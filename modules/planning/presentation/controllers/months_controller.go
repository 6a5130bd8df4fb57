package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/dsalvat/fase-platform-sub001/modules/planning/domain/planmonth"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/presentation/controllers/dtos"
	"github.com/dsalvat/fase-platform-sub001/modules/planning/services"
	"github.com/dsalvat/fase-platform-sub001/pkg/composables"
	"github.com/dsalvat/fase-platform-sub001/pkg/httpapi"
	"github.com/dsalvat/fase-platform-sub001/pkg/server"
)

type MonthsController struct {
	monthSvc  *services.MonthService
	apiPrefix string
}

func NewMonthsController(monthSvc *services.MonthService) server.Controller {
	return &MonthsController{
		monthSvc:  monthSvc,
		apiPrefix: "/planning/api/months",
	}
}

func (c *MonthsController) Key() string {
	return c.apiPrefix
}

func (c *MonthsController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/open", c.Open).Methods(http.MethodPost)
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("/{month}/writable", c.Writable).Methods(http.MethodGet)
}

type openMonthResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Month     string `json:"month"`
	CreatedAt string `json:"createdAt"`
}

func (c *MonthsController) Open(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.OpenMonthDTO{}
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

	record, err := c.monthSvc.Open(r.Context(), u.ID(), month)
	if err != nil {
		var gap *services.SequenceGapError
		switch {
		case errors.As(err, &gap):
			_ = httpapi.WriteError(w, http.StatusConflict, "MONTH_SEQUENCE_GAP", gap.Error(), map[string]string{
				"missing": gap.Missing.String(),
			})
		case errors.Is(err, services.ErrMonthFrozen):
			_ = httpapi.WriteError(w, http.StatusConflict, services.ErrMonthFrozen.Code, services.ErrMonthFrozen.Message, nil)
		case errors.Is(err, services.ErrMonthImplicitlyOpen):
			_ = httpapi.WriteError(w, http.StatusConflict, services.ErrMonthImplicitlyOpen.Code, services.ErrMonthImplicitlyOpen.Message, nil)
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("failed to open month")
			_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		}
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusCreated, &openMonthResponse{
		ID:        record.ID.String(),
		UserID:    record.UserID.String(),
		Month:     record.Month.String(),
		CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (c *MonthsController) List(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	records, err := c.monthSvc.OpenedMonths(r.Context(), u.ID())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list open months")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		return
	}
	out := make([]*openMonthResponse, 0, len(records))
	for _, record := range records {
		out = append(out, &openMonthResponse{
			ID:        record.ID.String(),
			UserID:    record.UserID.String(),
			Month:     record.Month.String(),
			CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *MonthsController) Writable(w http.ResponseWriter, r *http.Request) {
	month, err := planmonth.Parse(mux.Vars(r)["month"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "INVALID_MONTH", "month must be formatted YYYY-MM", nil)
		return
	}
	u, err := composables.UseUser(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "no acting user", nil)
		return
	}
	writable, err := c.monthSvc.IsWritable(r.Context(), u.ID(), month)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to check month writability")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]bool{
		"writable": writable,
		"readOnly": c.monthSvc.IsReadOnly(month),
	})
}
