package postgres

import (
	"time"

	"gorm.io/gorm"

	errors "github.com/marcelchiarello/Meepot/internal"
	eventDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/event"
	"github.com/marcelchiarello/Meepot/internal/event"
)

// EventRepository implements event.RepositoryAPI using GORM.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) event.RepositoryAPI {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ev *eventDatamodel.Event) error {
	return r.db.Create(ev).Error
}

func (r *EventRepository) GetByID(id string) (*eventDatamodel.Event, error) {
	var ev eventDatamodel.Event
	err := r.db.Where("id = ?", id).First(&ev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepository) GetAll(limit, offset int) ([]*eventDatamodel.Event, error) {
	var events []*eventDatamodel.Event
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) AddParticipant(p *eventDatamodel.Participant) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return r.db.Create(p).Error
}

// GetParticipants returns roster rows in insertion order so derived balances
// stay deterministic for a fixed input.
func (r *EventRepository) GetParticipants(eventID string) ([]*eventDatamodel.Participant, error) {
	var participants []*eventDatamodel.Participant
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&participants).Error
	return participants, err
}
