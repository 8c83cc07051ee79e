// Copyright (c) 2026 HostelHQ. All rights reserved.

package payment

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

// Handler implements the payment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /payments router. All endpoints need authentication.
// Listing and reads are student-scoped; creating charges, editing, deleting,
// deciding refunds, and reminders are admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/installments", handler.createPlan)
	router.Get("/installments", handler.listPlans)
	router.Get("/installments/{id}", handler.getPlan)
	router.Post("/refunds", handler.requestRefund)
	router.Get("/refunds", handler.listRefunds)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
		admin.Put("/refunds/{id}", handler.decideRefund)
		admin.Get("/reminders", handler.listReminders)
		admin.Post("/reminders", handler.scheduleReminder)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	payments, meta, err := handler.service.List(request.Context(), identity, filterFromQuery(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, payments, meta)
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
	UserID    string  `json:"user_id"`
	BookingID *string `json:"booking_id"`
	Amount    int64   `json:"amount"`
	Type      string  `json:"type"`
	DueDate   string  `json:"due_date"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		Required("user_id", input.UserID).
		UUID("user_id", input.UserID).
		Positive("amount", input.Amount).
		OneOf("type", input.Type, Types()...).
		Required("due_date", input.DueDate).
		Date("due_date", input.DueDate).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dueDate, _ := time.Parse("2006-01-02", input.DueDate)
	created, err := handler.service.Create(request.Context(), CreateInput{
		UserID:    input.UserID,
		BookingID: input.BookingID,
		Amount:    input.Amount,
		Type:      Type(input.Type),
		DueDate:   dueDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

type updateRequest struct {
	Amount    *int64  `json:"amount"`
	Type      *string `json:"type"`
	Status    *string `json:"status"`
	DueDate   *string `json:"due_date"`
	PaidAt    *string `json:"paid_at"`
	Method    *string `json:"method"`
	Reference *string `json:"reference"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Type != nil {
		v.OneOf("type", *input.Type, Types()...)
	}
	if input.DueDate != nil {
		v.Date("due_date", *input.DueDate)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateInput{
		Amount:    input.Amount,
		Type:      input.Type,
		Status:    input.Status,
		Method:    input.Method,
		Reference: input.Reference,
	}
	if input.DueDate != nil {
		parsed, _ := time.Parse("2006-01-02", *input.DueDate)
		serviceInput.DueDate = &parsed
	}
	if input.PaidAt != nil {
		parsed, err := time.Parse(time.RFC3339, *input.PaidAt)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("paid_at must be an RFC 3339 timestamp"))
			return
		}
		serviceInput.PaidAt = &parsed
	}

	updated, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), serviceInput)
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

type planRequest struct {
	PaymentID        string `json:"payment_id"`
	TotalAmount      int64  `json:"total_amount"`
	InstallmentCount int    `json:"installment_count"`
}

func (handler *Handler) createPlan(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input planRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err = v.
		Required("payment_id", input.PaymentID).
		UUID("payment_id", input.PaymentID).
		Positive("total_amount", input.TotalAmount).
		Range("installment_count", input.InstallmentCount, 2, 24).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.service.CreatePlan(request.Context(), identity, PlanInput{
		PaymentID:   input.PaymentID,
		TotalAmount: input.TotalAmount,
		Count:       input.InstallmentCount,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, plan)
}

func (handler *Handler) listPlans(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	plans, meta, err := handler.service.ListPlans(request.Context(), identity, request.URL.Query().Get("userId"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, plans, meta)
}

func (handler *Handler) getPlan(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, err := handler.service.GetPlan(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plan)
}

type refundRequest struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
}

func (handler *Handler) requestRefund(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input refundRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err = v.
		Required("payment_id", input.PaymentID).
		UUID("payment_id", input.PaymentID).
		Positive("amount", input.Amount).
		Required("reason", input.Reason).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	refund, err := handler.service.RequestRefund(request.Context(), identity, RefundInput{
		PaymentID: input.PaymentID,
		Amount:    input.Amount,
		Reason:    input.Reason,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, refund)
}

func (handler *Handler) listRefunds(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	refunds, meta, err := handler.service.ListRefunds(request.Context(), identity, filterFromQuery(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, refunds, meta)
}

type refundDecisionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (handler *Handler) decideRefund(writer http.ResponseWriter, request *http.Request) {
	var input refundDecisionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.OneOf("status", input.Status,
		string(RefundApproved), string(RefundRejected), string(RefundCompleted)).Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	refund, err := handler.service.DecideRefund(request.Context(), requestutil.ID(request, "id"), RefundStatus(input.Status), input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, refund)
}

type reminderRequest struct {
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
	SendAt    string `json:"send_at"`
}

func (handler *Handler) scheduleReminder(writer http.ResponseWriter, request *http.Request) {
	var input reminderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		Required("payment_id", input.PaymentID).
		UUID("payment_id", input.PaymentID).
		Required("message", input.Message).
		Required("send_at", input.SendAt).
		Date("send_at", input.SendAt).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sendAt, _ := time.Parse("2006-01-02", input.SendAt)
	reminder, err := handler.service.ScheduleReminder(request.Context(), ReminderInput{
		PaymentID: input.PaymentID,
		Message:   input.Message,
		SendAt:    sendAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reminder)
}

func (handler *Handler) listReminders(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	reminders, meta, err := handler.service.ListReminders(request.Context(), filterFromQuery(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reminders, meta)
}

func filterFromQuery(request *http.Request) Filter {
	query := request.URL.Query()

	filter := Filter{}
	if raw := query.Get("userId"); raw != "" {
		filter.UserID = &raw
	}
	if raw := query.Get("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := query.Get("type"); raw != "" {
		filter.Type = &raw
	}
	return filter
}
