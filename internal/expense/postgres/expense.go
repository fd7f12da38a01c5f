package postgres

import (
	"time"

	"gorm.io/gorm"

	errors "github.com/marcelchiarello/Meepot/internal"
	expenseDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/expense"
	"github.com/marcelchiarello/Meepot/internal/expense"
)

// ExpenseRepository implements expense.RepositoryAPI using GORM. Split detail
// rows live in their own table and are written and loaded with the expense.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(exp *expenseDatamodel.Expense) error {
	return r.db.Create(exp).Error
}

func (r *ExpenseRepository) GetByID(id string) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.Preload("SplitDetails", orderDetails).
		Where("id = ?", id).
		First(&exp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepository) GetByEventID(eventID string, limit, offset int) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Preload("SplitDetails", orderDetails).
		Where("event_id = ?", eventID).
		Order("submitted_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByEventIDAndStatus(eventID, status string) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Preload("SplitDetails", orderDetails).
		Where("event_id = ? AND approval_status = ?", eventID, status).
		Order("submitted_at ASC, id ASC").
		Find(&expenses).Error
	return expenses, err
}

// UpdateStatus touches only the approval fields; split details and amounts
// are immutable after creation. The WHERE clause requires the row to still be
// pending, so two concurrent approvals cannot both succeed: the loser matches
// zero rows and gets an invalid transition.
func (r *ExpenseRepository) UpdateStatus(id, status string, processedAt time.Time) error {
	result := r.db.Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND approval_status = ?", id, expense.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"approval_status": status,
			"processed_at":    processedAt,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&expenseDatamodel.Expense{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.ErrExpenseNotFound
		}
		return errors.ErrInvalidTransition
	}
	return nil
}

func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
