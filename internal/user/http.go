// Copyright (c) 2026 HostelHQ. All rights reserved.

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/auth"
	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Handler implements the account directory HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a directory [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /users router.
//
// Listing, creation, and deletion are admin-only. Reads and profile edits of
// a single account allow self-or-admin, checked in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/", handler.list)
		admin.Post("/", handler.create)
		admin.Delete("/{id}", handler.delete)
	})

	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)

	return router
}

// list handles GET /users with optional role, room, and search filters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := auth.UserFilter{}
	if raw := query.Get("role"); raw != "" {
		role := string(sec.NormalizeRole(raw))
		filter.Role = &role
	}
	if raw := query.Get("room"); raw != "" {
		filter.RoomNumber = &raw
	}
	if raw := query.Get("q"); raw != "" {
		filter.Search = &raw
	}

	page := pagination.FromRequest(request)
	users, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

// createRequest is the JSON payload for admin account creation.
type createRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Phone         string `json:"phone"`
	StudentNumber string `json:"student_number"`
	RoomNumber    string `json:"room_number"`
	Course        string `json:"course"`
	Year          int    `json:"year"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Address       string `json:"address"`
}

// create handles POST /users. The response carries the single-use setup
// token; it is never shown again.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		Required("email", input.Email).
		Email("email", input.Email).
		Required("name", input.Name).
		Required("role", input.Role).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Email:         input.Email,
		Name:          input.Name,
		Role:          input.Role,
		Phone:         input.Phone,
		StudentNumber: input.StudentNumber,
		RoomNumber:    input.RoomNumber,
		Course:        input.Course,
		Year:          input.Year,
		GuardianName:  input.GuardianName,
		GuardianPhone: input.GuardianPhone,
		Address:       input.Address,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// get handles GET /users/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Get(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// updateRequest carries optional profile edits; absent fields are untouched.
type updateRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	StudentNumber *string `json:"student_number"`
	RoomNumber    *string `json:"room_number"`
	Course        *string `json:"course"`
	Year          *int    `json:"year"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	Address       *string `json:"address"`
}

// update handles PUT /users/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Year != nil {
		v := &validate.Validator{}
		if err := v.Range("year", *input.Year, 1, 6).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	account, err := handler.service.Update(request.Context(), identity, requestutil.ID(request, "id"), UpdateInput{
		Name:          input.Name,
		Phone:         input.Phone,
		StudentNumber: input.StudentNumber,
		RoomNumber:    input.RoomNumber,
		Course:        input.Course,
		Year:          input.Year,
		GuardianName:  input.GuardianName,
		GuardianPhone: input.GuardianPhone,
		Address:       input.Address,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// delete handles DELETE /users/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
