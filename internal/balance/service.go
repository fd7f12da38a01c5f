package balance

import (
	"log/slog"

	"github.com/marcelchiarello/Meepot/internal/expense"
)

// ExpenseSource supplies the expenses that count toward balances. The
// expense service implements it.
type ExpenseSource interface {
	ApprovedExpenses(eventID string) ([]*expense.Expense, error)
}

// EventGateway supplies roster and currency; the event service implements it
// through the expense domain's gateway shape.
type EventGateway interface {
	GetEventInfo(eventID string) (*expense.EventInfo, error)
}

type Service struct {
	source  ExpenseSource
	gateway EventGateway
	logger  *slog.Logger
}

func NewService(source ExpenseSource, gateway EventGateway, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		gateway: gateway,
		logger:  logger,
	}
}

// NetBalances recomputes the event's balances from scratch. Expense counts
// per event are small, so a full recompute per call beats maintaining an
// incremental view.
func (s *Service) NetBalances(eventID string) ([]NetBalance, error) {
	info, err := s.gateway.GetEventInfo(eventID)
	if err != nil {
		s.logger.Error("event lookup failed", "error", err, "event_id", eventID)
		return nil, err
	}

	expenses, err := s.source.ApprovedExpenses(eventID)
	if err != nil {
		s.logger.Error("failed to load approved expenses", "error", err, "event_id", eventID)
		return nil, err
	}

	balances := Aggregate(expenses, info.Roster, info.Currency)

	s.logger.Debug("balances recomputed",
		"event_id", eventID,
		"approved_expenses", len(expenses),
		"unsettled_participants", len(balances))

	return balances, nil
}

// SettlementSuggestions derives the minimum-transfer plan from the current
// net balances.
func (s *Service) SettlementSuggestions(eventID string) ([]Transfer, error) {
	balances, err := s.NetBalances(eventID)
	if err != nil {
		return nil, err
	}
	return SuggestTransfers(balances), nil
}
