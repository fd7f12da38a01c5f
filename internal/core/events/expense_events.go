package events

import (
	"time"

	"github.com/google/uuid"
)

// Expense lifecycle event types consumed by the activity feed and by anything
// that caches derived balances.
const (
	ExpenseSubmitted = "expense.submitted"
	ExpenseApproved  = "expense.approved"
	ExpenseRejected  = "expense.rejected"
)

func NewExpenseSubmittedEvent(expenseID, eventID, paidBy string, amount float64) BaseEvent {
	return newExpenseEvent(ExpenseSubmitted, expenseID, eventID, map[string]interface{}{
		"paid_by": paidBy,
		"amount":  amount,
	})
}

func NewExpenseApprovedEvent(expenseID, eventID, approverID string) BaseEvent {
	return newExpenseEvent(ExpenseApproved, expenseID, eventID, map[string]interface{}{
		"approver_id": approverID,
	})
}

func NewExpenseRejectedEvent(expenseID, eventID, approverID, reason string) BaseEvent {
	return newExpenseEvent(ExpenseRejected, expenseID, eventID, map[string]interface{}{
		"approver_id": approverID,
		"reason":      reason,
	})
}

func newExpenseEvent(eventType, expenseID, eventID string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"expense_id": expenseID,
		"event_id":   eventID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
