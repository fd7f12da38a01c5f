package expense

import (
	"time"

	"github.com/google/uuid"

	expenseDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/expense"
	"github.com/marcelchiarello/Meepot/internal/split"
)

// Approval statuses. Approved and rejected are terminal: once an expense
// leaves pending it can never transition again, and only approved expenses
// count toward balances.
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

type Expense struct {
	ID             string        `json:"id"`
	EventID        string        `json:"event_id"`
	Description    string        `json:"description"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	PaidBy         string        `json:"paid_by"`
	SplitMethod    split.Method  `json:"split_method"`
	SplitDetails   []SplitDetail `json:"split_details"`
	ApprovalStatus string        `json:"approval_status"`
	SubmittedAt    time.Time     `json:"submitted_at"`
	ProcessedAt    *time.Time    `json:"processed_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// SplitDetail mirrors the submitted split entry. Which optional field is
// populated depends on the split method.
type SplitDetail struct {
	ParticipantID string   `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
}

func (e *Expense) IsPending() bool {
	return e.ApprovalStatus == ApprovalStatusPending
}

func (e *Expense) CanBeApproved() bool {
	return e.IsPending()
}

func (e *Expense) CanBeRejected() bool {
	return e.IsPending()
}

func (e *Expense) Approve() {
	e.ApprovalStatus = ApprovalStatusApproved
	now := time.Now()
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

func (e *Expense) Reject() {
	e.ApprovalStatus = ApprovalStatusRejected
	now := time.Now()
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// AllocationDetails renders the stored split entries in the allocator's input
// shape, preserving submission order.
func (e *Expense) AllocationDetails() []split.Detail {
	details := make([]split.Detail, len(e.SplitDetails))
	for i, d := range e.SplitDetails {
		details[i] = split.Detail{
			ParticipantID: d.ParticipantID,
			Amount:        d.Amount,
			Percentage:    d.Percentage,
		}
	}
	return details
}

// NewExpense builds a pending expense from a validated submission. Every
// expense enters the world pending; there is no automatic approval rule.
func NewExpense(eventID, currency string, dto SubmitExpenseDTO) *Expense {
	now := time.Now()

	details := make([]SplitDetail, len(dto.SplitDetails))
	for i, d := range dto.SplitDetails {
		details[i] = SplitDetail{
			ParticipantID: d.ParticipantID,
			Amount:        d.Amount,
			Percentage:    d.Percentage,
		}
	}

	return &Expense{
		ID:             uuid.NewString(),
		EventID:        eventID,
		Description:    dto.Description,
		Amount:         dto.Amount,
		Currency:       currency,
		PaidBy:         dto.PaidBy,
		SplitMethod:    split.Method(dto.SplitMethod),
		SplitDetails:   details,
		ApprovalStatus: ApprovalStatusPending,
		SubmittedAt:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	details := make([]expenseDatamodel.SplitDetail, len(e.SplitDetails))
	for i, d := range e.SplitDetails {
		details[i] = expenseDatamodel.SplitDetail{
			ExpenseID:     e.ID,
			ParticipantID: d.ParticipantID,
			Amount:        d.Amount,
			Percentage:    d.Percentage,
			Position:      i,
		}
	}
	return &expenseDatamodel.Expense{
		ID:             e.ID,
		EventID:        e.EventID,
		Description:    e.Description,
		Amount:         e.Amount,
		Currency:       e.Currency,
		PaidBy:         e.PaidBy,
		SplitMethod:    string(e.SplitMethod),
		SplitDetails:   details,
		ApprovalStatus: e.ApprovalStatus,
		SubmittedAt:    e.SubmittedAt,
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	details := make([]SplitDetail, len(e.SplitDetails))
	for i, d := range e.SplitDetails {
		details[i] = SplitDetail{
			ParticipantID: d.ParticipantID,
			Amount:        d.Amount,
			Percentage:    d.Percentage,
		}
	}
	return &Expense{
		ID:             e.ID,
		EventID:        e.EventID,
		Description:    e.Description,
		Amount:         e.Amount,
		Currency:       e.Currency,
		PaidBy:         e.PaidBy,
		SplitMethod:    split.Method(e.SplitMethod),
		SplitDetails:   details,
		ApprovalStatus: e.ApprovalStatus,
		SubmittedAt:    e.SubmittedAt,
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
