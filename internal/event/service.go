package event

import (
	"log/slog"

	errors "github.com/marcelchiarello/Meepot/internal"
	eventDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/event"
	"github.com/marcelchiarello/Meepot/internal/expense"
)

type RepositoryAPI interface {
	Create(event *eventDatamodel.Event) error
	GetByID(id string) (*eventDatamodel.Event, error)
	GetAll(limit, offset int) ([]*eventDatamodel.Event, error)
	AddParticipant(participant *eventDatamodel.Participant) error
	GetParticipants(eventID string) ([]*eventDatamodel.Participant, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateEvent(organizerID string, dto CreateEventDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("event validation failed", "error", err, "organizer_id", organizerID)
		return nil, err
	}

	ev := NewEvent(organizerID, dto)
	if err := s.repo.Create(ToDataModel(ev)); err != nil {
		s.logger.Error("failed to create event", "error", err, "organizer_id", organizerID)
		return nil, err
	}

	// the organizer is always part of their own roster
	organizer := NewParticipant(ev.ID, "Organizer")
	organizer.ID = organizerID
	if err := s.repo.AddParticipant(ParticipantToDataModel(organizer)); err != nil {
		s.logger.Error("failed to add organizer to roster", "error", err, "event_id", ev.ID)
		return nil, err
	}

	s.logger.Info("event created", "event_id", ev.ID, "organizer_id", organizerID)
	return ev, nil
}

func (s *Service) GetEvent(id string) (*Event, error) {
	data, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get event", "error", err, "event_id", id)
		return nil, errors.ErrEventNotFound
	}
	return FromDataModel(data), nil
}

func (s *Service) ListEvents(limit, offset int) ([]*Event, error) {
	data, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list events", "error", err)
		return nil, err
	}
	events := make([]*Event, len(data))
	for i, d := range data {
		events[i] = FromDataModel(d)
	}
	return events, nil
}

func (s *Service) AddParticipant(eventID, actorID string, dto AddParticipantDTO) (*Participant, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("participant validation failed", "error", err, "event_id", eventID)
		return nil, err
	}

	ev, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsOrganizer(actorID) {
		s.logger.Warn("add participant denied: not organizer", "event_id", eventID, "actor_id", actorID)
		return nil, errors.ErrNotOrganizer
	}

	existing, err := s.repo.GetParticipants(eventID)
	if err != nil {
		s.logger.Error("failed to load roster", "error", err, "event_id", eventID)
		return nil, err
	}
	for _, p := range existing {
		if p.DisplayName == dto.DisplayName {
			return nil, errors.NewConflictError("participant name already on roster", errors.ErrCodeDuplicateRosterName)
		}
	}

	participant := NewParticipant(eventID, dto.DisplayName)
	if err := s.repo.AddParticipant(ParticipantToDataModel(participant)); err != nil {
		s.logger.Error("failed to add participant", "error", err, "event_id", eventID)
		return nil, err
	}

	s.logger.Info("participant added", "event_id", eventID, "participant_id", participant.ID)
	return participant, nil
}

func (s *Service) GetParticipants(eventID string) ([]*Participant, error) {
	if _, err := s.GetEvent(eventID); err != nil {
		return nil, err
	}
	data, err := s.repo.GetParticipants(eventID)
	if err != nil {
		s.logger.Error("failed to get participants", "error", err, "event_id", eventID)
		return nil, err
	}
	participants := make([]*Participant, len(data))
	for i, d := range data {
		participants[i] = ParticipantFromDataModel(d)
	}
	return participants, nil
}

// GetEventInfo satisfies the expense domain's gateway: organizer, currency
// and roster in one lookup.
func (s *Service) GetEventInfo(eventID string) (*expense.EventInfo, error) {
	ev, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	roster, err := s.Roster(eventID)
	if err != nil {
		return nil, err
	}
	return &expense.EventInfo{
		ID:          ev.ID,
		OrganizerID: ev.OrganizerID,
		Currency:    ev.Currency,
		Roster:      roster,
	}, nil
}

// Roster returns the participant identifiers valid for an event, in stable
// insertion order. Both the expense validator and the balance aggregator
// depend on this list.
func (s *Service) Roster(eventID string) ([]string, error) {
	participants, err := s.GetParticipants(eventID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids, nil
}
