package expense

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/marcelchiarello/Meepot/internal"
	expenseDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/expense"
	"github.com/marcelchiarello/Meepot/internal/core/events"
)

// EventInfo is what the expense core needs to know about an event: who may
// approve, which currency balances are reported in, and which participant
// identifiers are valid.
type EventInfo struct {
	ID          string
	OrganizerID string
	Currency    string
	Roster      []string
}

// EventGateway is implemented by the event service; it keeps this package
// decoupled from the event domain's internals.
type EventGateway interface {
	GetEventInfo(eventID string) (*EventInfo, error)
}

// RepositoryAPI defines the data access methods for expenses. Expenses are
// never deleted; UpdateStatus is the only mutation after creation.
type RepositoryAPI interface {
	Create(expense *expenseDatamodel.Expense) error
	GetByID(id string) (*expenseDatamodel.Expense, error)
	GetByEventID(eventID string, limit, offset int) ([]*expenseDatamodel.Expense, error)
	GetByEventIDAndStatus(eventID, status string) ([]*expenseDatamodel.Expense, error)
	UpdateStatus(id, status string, processedAt time.Time) error
}

type Service struct {
	repo    RepositoryAPI
	gateway EventGateway
	bus     *events.EventBus
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, gateway EventGateway, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		bus:     bus,
		logger:  logger,
	}
}

// SubmitExpense validates a candidate expense against the event's roster and
// stores it pending. Either every rule passes and the expense is accepted
// whole, or it is rejected whole with the full violation list.
func (s *Service) SubmitExpense(eventID, actorID string, dto SubmitExpenseDTO) (*Expense, error) {
	info, err := s.gateway.GetEventInfo(eventID)
	if err != nil {
		s.logger.Error("event lookup failed", "error", err, "event_id", eventID)
		return nil, err
	}

	if err := dto.Validate(info.Roster); err != nil {
		s.logger.Warn("expense validation failed",
			"event_id", eventID,
			"actor_id", actorID,
			"error", err.GetDetailedMessage())
		return nil, err
	}

	exp := NewExpense(eventID, info.Currency, dto)
	if err := s.repo.Create(ToDataModel(exp)); err != nil {
		s.logger.Error("failed to create expense", "error", err, "event_id", eventID)
		return nil, err
	}

	s.publish(events.NewExpenseSubmittedEvent(exp.ID, eventID, exp.PaidBy, exp.Amount))

	s.logger.Info("expense submitted",
		"expense_id", exp.ID,
		"event_id", eventID,
		"amount", exp.Amount,
		"split_method", exp.SplitMethod)

	return exp, nil
}

func (s *Service) GetExpense(id string) (*Expense, error) {
	data, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, errors.ErrExpenseNotFound
	}
	return FromDataModel(data), nil
}

func (s *Service) ListExpenses(eventID string, limit, offset int) ([]*Expense, error) {
	data, err := s.repo.GetByEventID(eventID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "event_id", eventID)
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

// ApprovedExpenses returns the expenses that count toward balances, in
// submission order. Consumed by the balance aggregator.
func (s *Service) ApprovedExpenses(eventID string) ([]*Expense, error) {
	data, err := s.repo.GetByEventIDAndStatus(eventID, ApprovalStatusApproved)
	if err != nil {
		s.logger.Error("failed to load approved expenses", "error", err, "event_id", eventID)
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

// ApproveExpense moves a pending expense to approved. Approval is reserved to
// the event organizer and the pending state: approving an already approved or
// rejected expense is an invalid transition, not a silent reapply.
func (s *Service) ApproveExpense(expenseID, actorID string) (*Expense, error) {
	exp, info, err := s.loadForTransition(expenseID, actorID)
	if err != nil {
		return nil, err
	}

	if !exp.CanBeApproved() {
		s.logger.Warn("cannot approve expense in current status",
			"expense_id", expenseID,
			"current_status", exp.ApprovalStatus)
		return nil, errors.ErrInvalidTransition
	}

	exp.Approve()
	if err := s.repo.UpdateStatus(expenseID, ApprovalStatusApproved, *exp.ProcessedAt); err != nil {
		s.logger.Error("failed to mark expense approved", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.publishOrdered(events.NewExpenseApprovedEvent(expenseID, info.ID, actorID))

	s.logger.Info("expense approved",
		"expense_id", expenseID,
		"approver_id", actorID,
		"amount", exp.Amount)

	return exp, nil
}

// RejectExpense moves a pending expense to rejected, with the same terminal
// state guard as approval.
func (s *Service) RejectExpense(expenseID, actorID, reason string) (*Expense, error) {
	exp, info, err := s.loadForTransition(expenseID, actorID)
	if err != nil {
		return nil, err
	}

	if !exp.CanBeRejected() {
		s.logger.Warn("cannot reject expense in current status",
			"expense_id", expenseID,
			"current_status", exp.ApprovalStatus)
		return nil, errors.ErrInvalidTransition
	}

	exp.Reject()
	if err := s.repo.UpdateStatus(expenseID, ApprovalStatusRejected, *exp.ProcessedAt); err != nil {
		s.logger.Error("failed to mark expense rejected", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.publishOrdered(events.NewExpenseRejectedEvent(expenseID, info.ID, actorID, reason))

	s.logger.Info("expense rejected",
		"expense_id", expenseID,
		"approver_id", actorID,
		"reason", reason)

	return exp, nil
}

func (s *Service) loadForTransition(expenseID, actorID string) (*Expense, *EventInfo, error) {
	data, err := s.repo.GetByID(expenseID)
	if err != nil {
		s.logger.Error("expense not found for transition", "error", err, "expense_id", expenseID)
		return nil, nil, errors.ErrExpenseNotFound
	}
	exp := FromDataModel(data)

	info, err := s.gateway.GetEventInfo(exp.EventID)
	if err != nil {
		s.logger.Error("event lookup failed", "error", err, "event_id", exp.EventID)
		return nil, nil, err
	}

	if info.OrganizerID != actorID {
		s.logger.Warn("approval action denied: not organizer",
			"expense_id", expenseID,
			"actor_id", actorID,
			"organizer_id", info.OrganizerID)
		return nil, nil, errors.ErrNotOrganizer
	}

	return exp, info, nil
}

func (s *Service) publish(event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

// publishOrdered delivers on the caller's goroutine so the activity feed sees
// approval outcomes in the order the transitions happened. Submissions stay
// async; the expense is already persisted either way, so a failing subscriber
// is logged, not surfaced to the caller.
func (s *Service) publishOrdered(event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishSync(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}
