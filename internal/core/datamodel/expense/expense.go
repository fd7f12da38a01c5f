package expense

import "time"

// Expense is the persistence model for a shared expense. Rows are never
// deleted in the modeled flows; the approval status and its timestamps are the
// only fields that change after creation.
type Expense struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	EventID        string        `json:"event_id" gorm:"column:event_id;not null;index"`
	Description    string        `json:"description" gorm:"not null"`
	Amount         float64       `json:"amount" gorm:"not null"`
	Currency       string        `json:"currency" gorm:"not null"`
	PaidBy         string        `json:"paid_by" gorm:"column:paid_by;not null"`
	SplitMethod    string        `json:"split_method" gorm:"column:split_method;not null"`
	SplitDetails   []SplitDetail `json:"split_details" gorm:"foreignKey:ExpenseID;references:ID"`
	ApprovalStatus string        `json:"approval_status" gorm:"column:approval_status;default:pending"`
	SubmittedAt    time.Time     `json:"submitted_at" gorm:"column:submitted_at;default:now()"`
	ProcessedAt    *time.Time    `json:"processed_at,omitempty" gorm:"column:processed_at"`
	CreatedAt      time.Time     `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Expense) TableName() string {
	return "expenses"
}

// SplitDetail is one participant entry of an expense's split. Amount carries
// absolute values for itemized/exact splits, Percentage carries the share for
// percentage splits; equal splits use neither. Position preserves submission
// order so allocation output stays deterministic.
type SplitDetail struct {
	ID            int64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ExpenseID     string   `json:"-" gorm:"column:expense_id;not null;index"`
	ParticipantID string   `json:"participant_id" gorm:"column:participant_id;not null"`
	Amount        *float64 `json:"amount,omitempty" gorm:"column:amount"`
	Percentage    *float64 `json:"percentage,omitempty" gorm:"column:percentage"`
	Position      int      `json:"-" gorm:"column:position;not null;default:0"`
}

func (SplitDetail) TableName() string {
	return "expense_split_details"
}
