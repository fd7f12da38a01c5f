package event

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
	CreateEvent(organizerID string, dto CreateEventDTO) (*Event, error)
	GetEvent(id string) (*Event, error)
	ListEvents(limit, offset int) ([]*Event, error)
	AddParticipant(eventID, actorID string, dto AddParticipantDTO) (*Participant, error)
	GetParticipants(eventID string) ([]*Participant, error)
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

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEvent: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, err := h.Service.CreateEvent(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateEvent: service error", "error", err, "organizer_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	ev, err := h.Service.GetEvent(eventID)
	if err != nil {
		h.Logger.Error("GetEvent: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ev)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 20
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

	events, err := h.Service.ListEvents(limit, offset)
	if err != nil {
		h.Logger.Error("ListEvents: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	eventID := chi.URLParam(r, "id")

	var dto AddParticipantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddParticipant: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participant, err := h.Service.AddParticipant(eventID, user.ID, dto)
	if err != nil {
		h.Logger.Error("AddParticipant: service error", "error", err, "event_id", eventID, "actor_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, participant)
}

func (h *Handler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	participants, err := h.Service.GetParticipants(eventID)
	if err != nil {
		h.Logger.Error("GetParticipants: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"participants": participants,
	})
}
