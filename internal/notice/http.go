package notice

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// Handler implements the notice and event HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a notice [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// NoticeRoutes returns the /notices router.
func (handler *Handler) NoticeRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listNotices)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.postNotice)
		admin.Delete("/{id}", handler.deleteNotice)
	})

	return router
}

// EventRoutes returns the /events router.
func (handler *Handler) EventRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listEvents)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.postEvent)
		admin.Delete("/{id}", handler.deleteEvent)
	})

	return router
}

func (handler *Handler) listNotices(writer http.ResponseWriter, request *http.Request) {
	var audience *string
	if raw := request.URL.Query().Get("audience"); raw != "" {
		audience = &raw
	}

	page := pagination.FromRequest(request)
	notices, meta, err := handler.service.ListNotices(request.Context(), audience, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, notices, meta)
}

type noticeRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience"`
}

func (handler *Handler) postNotice(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input noticeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Audience == "" {
		input.Audience = string(AudienceAll)
	}

	v := &validate.Validator{}
	err = v.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("body", input.Body).
		OneOf("audience", input.Audience, Audiences()...).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posted, err := handler.service.PostNotice(request.Context(), NoticeInput{
		Title:    input.Title,
		Body:     input.Body,
		Audience: Audience(input.Audience),
		AuthorID: identity.ID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, posted)
}

func (handler *Handler) deleteNotice(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteNotice(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	events, meta, err := handler.service.ListEvents(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, meta)
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartsAt    string `json:"starts_at"`
}

func (handler *Handler) postEvent(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input eventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err = v.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("starts_at", input.StartsAt).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("starts_at must be an RFC 3339 timestamp"))
		return
	}

	posted, err := handler.service.PostEvent(request.Context(), EventInput{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		StartsAt:    startsAt,
		AuthorID:    identity.ID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, posted)
}

func (handler *Handler) deleteEvent(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteEvent(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
