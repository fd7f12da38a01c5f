package balance

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/marcelchiarello/Meepot/internal/transport"
	"github.com/marcelchiarello/Meepot/pkg/logger"
)

type ServiceAPI interface {
	NetBalances(eventID string) ([]NetBalance, error)
	SettlementSuggestions(eventID string) ([]Transfer, error)
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

func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	balances, err := h.Service.NetBalances(eventID)
	if err != nil {
		h.Logger.Error("GetBalances: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"balances": balances,
	})
}

func (h *Handler) GetSettlementSuggestions(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	transfers, err := h.Service.SettlementSuggestions(eventID)
	if err != nil {
		h.Logger.Error("GetSettlementSuggestions: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transfers": transfers,
	})
}
