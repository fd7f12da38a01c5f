package event

import (
	"time"

	"github.com/google/uuid"

	eventDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/event"
)

// Event is the aggregate that owns a participant roster and, through it, the
// set of identifiers an expense may reference. Aggregation assumes a single
// currency per event; expenses inherit it.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OrganizerID string    `json:"organizer_id"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Participant struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Event) IsOrganizer(userID string) bool {
	return e.OrganizerID == userID
}

func NewEvent(organizerID string, dto CreateEventDTO) *Event {
	now := time.Now()
	currency := dto.Currency
	if currency == "" {
		currency = "EUR"
	}
	return &Event{
		ID:          uuid.NewString(),
		Name:        dto.Name,
		Description: dto.Description,
		OrganizerID: organizerID,
		Currency:    currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func NewParticipant(eventID, displayName string) *Participant {
	return &Participant{
		ID:          uuid.NewString(),
		EventID:     eventID,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
}

func ToDataModel(e *Event) *eventDatamodel.Event {
	return &eventDatamodel.Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		Currency:    e.Currency,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *eventDatamodel.Event) *Event {
	return &Event{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		Currency:    e.Currency,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ParticipantToDataModel(p *Participant) *eventDatamodel.Participant {
	return &eventDatamodel.Participant{
		ID:          p.ID,
		EventID:     p.EventID,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

func ParticipantFromDataModel(p *eventDatamodel.Participant) *Participant {
	return &Participant{
		ID:          p.ID,
		EventID:     p.EventID,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}
