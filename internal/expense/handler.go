package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/marcelchiarello/Meepot/internal/auth"
	"github.com/marcelchiarello/Meepot/internal/transport"
	"github.com/marcelchiarello/Meepot/pkg/logger"
)

type ServiceAPI interface {
	SubmitExpense(eventID, actorID string, dto SubmitExpenseDTO) (*Expense, error)
	GetExpense(id string) (*Expense, error)
	ListExpenses(eventID string, limit, offset int) ([]*Expense, error)
	ApproveExpense(expenseID, actorID string) (*Expense, error)
	RejectExpense(expenseID, actorID, reason string) (*Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.Default()),
		Service:     service,
	}
}

func (h *Handler) SubmitExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	eventID := chi.URLParam(r, "id")

	var dto SubmitExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.SubmitExpense(eventID, user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitExpense: service error", "error", err, "event_id", eventID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseID")

	exp, err := h.Service.GetExpense(expenseID)
	if err != nil {
		h.Logger.Error("GetExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	expenses, err := h.Service.ListExpenses(eventID, limit, offset)
	if err != nil {
		h.Logger.Error("ListExpenses: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) ApproveExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID := chi.URLParam(r, "expenseID")

	exp, err := h.Service.ApproveExpense(expenseID, user.ID)
	if err != nil {
		h.Logger.Error("ApproveExpense: service error", "error", err, "expense_id", expenseID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) RejectExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID := chi.URLParam(r, "expenseID")

	var dto RejectExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RejectExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	exp, err := h.Service.RejectExpense(expenseID, user.ID, dto.Reason)
	if err != nil {
		h.Logger.Error("RejectExpense: service error", "error", err, "expense_id", expenseID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}
