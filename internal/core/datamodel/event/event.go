package event

import "time"

// Event is the persistence model for an event and the root that owns
// participants and expenses.
type Event struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	OrganizerID string    `json:"organizer_id" gorm:"column:organizer_id;not null"`
	Currency    string    `json:"currency" gorm:"not null;default:EUR"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Event) TableName() string {
	return "events"
}

// Participant is one roster row. The expense core only ever sees the ID as an
// opaque string; the display name exists for rendering collaborators.
type Participant struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	EventID     string    `json:"event_id" gorm:"column:event_id;not null;index"`
	DisplayName string    `json:"display_name" gorm:"column:display_name;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Participant) TableName() string {
	return "event_participants"
}
