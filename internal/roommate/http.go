package roommate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Handler implements the roommate request HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a roommate [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /roommate-requests router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.open)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{}
	if raw := request.URL.Query().Get("status"); raw != "" {
		filter.Status = &raw
	}

	page := pagination.FromRequest(request)
	requests, meta, err := handler.service.List(request.Context(), identity, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, requests, meta)
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

type openRequest struct {
	PreferredRoom string `json:"preferred_room"`
	Notes         string `json:"notes"`
}

func (handler *Handler) open(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input openRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	opened, err := handler.service.Open(request.Context(), identity, OpenInput{
		PreferredRoom: input.PreferredRoom,
		Notes:         input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, opened)
}

type updateRequest struct {
	PreferredRoom *string `json:"preferred_room"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
	MatchedWith   *string `json:"matched_with"`
}

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

	serviceInput := UpdateInput{
		PreferredRoom: input.PreferredRoom,
		Notes:         input.Notes,
		MatchedWith:   input.MatchedWith,
	}
	if input.Status != nil {
		v := &validate.Validator{}
		err := v.OneOf("status", *input.Status,
			string(StatusPending), string(StatusMatched), string(StatusClosed)).Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		status := Status(*input.Status)
		serviceInput.Status = &status
	}

	updated, err := handler.service.Update(request.Context(), identity, requestutil.ID(request, "id"), serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
