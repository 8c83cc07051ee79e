// Copyright (c) 2026 HostelHQ. All rights reserved.

package booking

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Handler implements the booking HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a booking [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /bookings router. All endpoints need authentication;
// full edits are admin-only while cancel is owner-or-admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Post("/{id}/cancel", handler.cancel)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/{id}", handler.update)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := Filter{}
	if raw := query.Get("userId"); raw != "" {
		filter.UserID = &raw
	}
	if raw := query.Get("roomId"); raw != "" {
		filter.RoomID = &raw
	}
	if raw := query.Get("status"); raw != "" {
		filter.Status = &raw
	}

	page := pagination.FromRequest(request)
	bookings, meta, err := handler.service.List(request.Context(), identity, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, bookings, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type createRequest struct {
	UserID    string `json:"user_id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("room_id", input.RoomID).
		UUID("room_id", input.RoomID).
		Required("start_date", input.StartDate).
		Date("start_date", input.StartDate)
	if input.EndDate != "" {
		v.Date("end_date", input.EndDate)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	startDate, _ := time.Parse("2006-01-02", input.StartDate)
	var endDate *time.Time
	if input.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", input.EndDate)
		endDate = &parsed
	}

	created, err := handler.service.Create(request.Context(), identity, CreateInput{
		UserID:    input.UserID,
		RoomID:    input.RoomID,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateRequest struct {
	Status    *string `json:"status"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.StartDate != nil {
		v.Date("start_date", *input.StartDate)
	}
	if input.EndDate != nil {
		v.Date("end_date", *input.EndDate)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateInput{Status: input.Status, Notes: input.Notes}
	if input.StartDate != nil {
		parsed, _ := time.Parse("2006-01-02", *input.StartDate)
		serviceInput.StartDate = &parsed
	}
	if input.EndDate != nil {
		parsed, _ := time.Parse("2006-01-02", *input.EndDate)
		serviceInput.EndDate = &parsed
	}

	updated, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cancelled, err := handler.service.Cancel(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cancelled)
}
