package leave

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

// Handler implements the leave application HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a leave [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /leave-applications router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.apply)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/{id}", handler.decide)
	})

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
	applications, meta, err := handler.service.List(request.Context(), identity, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, applications, meta)
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

type applyRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

func (handler *Handler) apply(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input applyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err = v.
		Required("from_date", input.FromDate).
		Date("from_date", input.FromDate).
		Required("to_date", input.ToDate).
		Date("to_date", input.ToDate).
		Required("reason", input.Reason).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	fromDate, _ := time.Parse("2006-01-02", input.FromDate)
	toDate, _ := time.Parse("2006-01-02", input.ToDate)

	application, err := handler.service.Apply(request.Context(), identity, ApplyInput{
		FromDate: fromDate,
		ToDate:   toDate,
		Reason:   input.Reason,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, application)
}

type decideRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request) {
	var input decideRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.OneOf("status", input.Status, string(StatusApproved), string(StatusRejected)).Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	decided, err := handler.service.Decide(request.Context(), requestutil.ID(request, "id"), Status(input.Status), input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, decided)
}
