package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

// Handler implements the report HTTP endpoints. Admin only.
type Handler struct {
	repo Repository
}

// NewHandler constructs a report [Handler].
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns the /reports router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/summary", handler.summary)

	return router
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.repo.Summarize(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
