// Copyright (c) 2026 HostelHQ. All rights reserved.

package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Handler implements the room inventory HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a room [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /rooms router. Reads need authentication; mutation is
// admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := Filter{}
	if raw := query.Get("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := query.Get("block"); raw != "" {
		filter.Block = &raw
	}
	if raw := query.Get("type"); raw != "" {
		filter.Type = &raw
	}

	page := pagination.FromRequest(request)
	rooms, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, rooms, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type createRequest struct {
	Number      string `json:"number"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Floor       int    `json:"floor"`
	Block       string `json:"block"`
	MonthlyRent int64  `json:"monthly_rent"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		Required("number", input.Number).
		Required("type", input.Type).
		Range("capacity", input.Capacity, 1, 12).
		Positive("monthly_rent", input.MonthlyRent).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Number:      input.Number,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Floor:       input.Floor,
		Block:       input.Block,
		MonthlyRent: input.MonthlyRent,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateRequest struct {
	Number      *string `json:"number"`
	Type        *string `json:"type"`
	Capacity    *int    `json:"capacity"`
	Floor       *int    `json:"floor"`
	Block       *string `json:"block"`
	MonthlyRent *int64  `json:"monthly_rent"`
	Status      *string `json:"status"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Status != nil {
		v := &validate.Validator{}
		err := v.OneOf("status", *input.Status,
			string(StatusAvailable), string(StatusOccupied), string(StatusMaintenance)).Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	updated, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Number:      input.Number,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Floor:       input.Floor,
		Block:       input.Block,
		MonthlyRent: input.MonthlyRent,
		Status:      input.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
