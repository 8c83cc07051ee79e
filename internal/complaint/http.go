package complaint

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

// Handler implements the complaint and feedback HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a complaint [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ComplaintRoutes returns the /complaints router.
func (handler *Handler) ComplaintRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.file)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/{id}", handler.resolve)
	})

	return router
}

// FeedbackRoutes returns the /feedback router.
func (handler *Handler) FeedbackRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFeedback)
	router.Post("/", handler.leaveFeedback)

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
	if raw := query.Get("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := query.Get("category"); raw != "" {
		filter.Category = &raw
	}

	page := pagination.FromRequest(request)
	complaints, meta, err := handler.service.ListComplaints(request.Context(), identity, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, complaints, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetComplaint(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

type complaintRequest struct {
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

func (handler *Handler) file(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input complaintRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err = v.
		Required("category", input.Category).
		Required("subject", input.Subject).
		MaxLen("subject", input.Subject, 200).
		Required("description", input.Description).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filed, err := handler.service.FileComplaint(request.Context(), identity, ComplaintInput{
		Category:    input.Category,
		Subject:     input.Subject,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, filed)
}

type resolveRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	var input resolveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if err := v.OneOf("status", input.Status, Statuses()...).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolved, err := handler.service.Resolve(request.Context(), requestutil.ID(request, "id"), Status(input.Status), input.Resolution)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

func (handler *Handler) listFeedback(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	entries, meta, err := handler.service.ListFeedback(request.Context(), identity, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (handler *Handler) leaveFeedback(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input feedbackRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if err := v.Range("rating", input.Rating, 1, 5).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.LeaveFeedback(request.Context(), identity, FeedbackInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}
