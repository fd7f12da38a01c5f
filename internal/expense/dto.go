package expense

import (
	"fmt"

	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/core/common/validation"
	"github.com/marcelchiarello/Meepot/internal/split"
)

type SplitDetailDTO struct {
	ParticipantID string   `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
}

type SubmitExpenseDTO struct {
	Description  string           `json:"description"`
	Amount       float64          `json:"amount"`
	PaidBy       string           `json:"paid_by"`
	SplitMethod  string           `json:"split_method"`
	SplitDetails []SplitDetailDTO `json:"split_details"`
}

// Validate gatekeeps acceptance of a submitted expense. Every rule is checked
// and every violation is reported together, each tagged with the offending
// field path, so the caller can route messages back to individual form
// inputs. An expense is accepted whole or rejected whole.
//
// Percentage sums must equal exactly 100 and itemized/exact_amounts sums must
// equal the expense amount exactly. No tolerance band: 99.999 and 100.001
// both fail.
func (dto SubmitExpenseDTO) Validate(roster []string) *errors.AppError {
	v := validation.NewValidator()

	v.Field("description", dto.Description).Required().MaxLength(500)
	v.Field("amount", dto.Amount).Positive(errors.ErrCodeInvalidAmount)
	v.Field("split_method", dto.SplitMethod).
		Required().
		OneOf(split.Methods(), errors.ErrCodeInvalidSplitMethod)

	rosterSet := make(map[string]struct{}, len(roster))
	for _, id := range roster {
		rosterSet[id] = struct{}{}
	}

	v.Field("paid_by", dto.PaidBy).Required().Custom(func(value interface{}) *errors.AppError {
		id, ok := value.(string)
		if !ok || id == "" {
			return nil
		}
		if _, known := rosterSet[id]; !known {
			return errors.NewValidationFieldError("paid_by", "payer is not on the event roster", errors.ErrCodeUnknownParticipant)
		}
		return nil
	})

	method := split.Method(dto.SplitMethod)
	if method.Valid() {
		dto.validateSplitDetails(v, method, rosterSet)
	}

	return v.Validate()
}

func (dto SubmitExpenseDTO) validateSplitDetails(v *validation.ValidationBuilder, method split.Method, rosterSet map[string]struct{}) {
	v.Field("split_details", dto.SplitDetails).Custom(func(interface{}) *errors.AppError {
		if method.RequiresDetails() && len(dto.SplitDetails) == 0 {
			return errors.NewValidationFieldError("split_details",
				fmt.Sprintf("split_details must not be empty for %s splits", method),
				errors.ErrCodeEmptySplitDetails)
		}
		return nil
	})

	for i, d := range dto.SplitDetails {
		path := fmt.Sprintf("split_details[%d]", i)
		v.Field(path+".participant_id", d.ParticipantID).Required().Custom(func(value interface{}) *errors.AppError {
			id, ok := value.(string)
			if !ok || id == "" {
				return nil
			}
			if _, known := rosterSet[id]; !known {
				return errors.NewValidationFieldError(path+".participant_id",
					"participant is not on the event roster", errors.ErrCodeUnknownParticipant)
			}
			return nil
		})
	}

	switch method {
	case split.MethodPercentage:
		dto.validatePercentages(v)
	case split.MethodItemized, split.MethodExactAmounts:
		dto.validateExactAmounts(v)
	}
}

func (dto SubmitExpenseDTO) validatePercentages(v *validation.ValidationBuilder) {
	for i, d := range dto.SplitDetails {
		path := fmt.Sprintf("split_details[%d].percentage", i)
		detail := d
		v.Field(path, detail).Custom(func(interface{}) *errors.AppError {
			if detail.Percentage == nil {
				return errors.NewValidationFieldError(path, "percentage is required for percentage splits", errors.ErrCodeValidationFailed)
			}
			if *detail.Percentage < 0 || *detail.Percentage > 100 {
				return errors.NewValidationFieldError(path, "percentage must be between 0 and 100", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}

	v.Field("split_details", dto.SplitDetails).Custom(func(interface{}) *errors.AppError {
		if len(dto.SplitDetails) == 0 {
			return nil
		}
		var sum float64
		for _, d := range dto.SplitDetails {
			if d.Percentage == nil {
				return nil // reported per entry above
			}
			sum += *d.Percentage
		}
		// exact equality, observed behavior: 99.99 and 100.01 both fail
		if sum != 100 {
			return errors.NewValidationFieldError("split_details",
				fmt.Sprintf("percentages must sum to exactly 100, got %v", sum),
				errors.ErrCodePercentageSum)
		}
		return nil
	})
}

func (dto SubmitExpenseDTO) validateExactAmounts(v *validation.ValidationBuilder) {
	for i, d := range dto.SplitDetails {
		path := fmt.Sprintf("split_details[%d].amount", i)
		detail := d
		v.Field(path, detail).Custom(func(interface{}) *errors.AppError {
			if detail.Amount == nil {
				return errors.NewValidationFieldError(path, "amount is required for this split method", errors.ErrCodeValidationFailed)
			}
			if *detail.Amount < 0 {
				return errors.NewValidationFieldError(path, "amount must not be negative", errors.ErrCodeInvalidAmount)
			}
			return nil
		})
	}

	v.Field("split_details", dto.SplitDetails).Custom(func(interface{}) *errors.AppError {
		if len(dto.SplitDetails) == 0 {
			return nil
		}
		var sum float64
		for _, d := range dto.SplitDetails {
			if d.Amount == nil {
				return nil // reported per entry above
			}
			sum += *d.Amount
		}
		if sum != dto.Amount {
			return errors.NewValidationFieldError("split_details",
				fmt.Sprintf("split amounts must sum to the expense amount %v, got %v", dto.Amount, sum),
				errors.ErrCodeSplitAmountSum)
		}
		return nil
	})
}

type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectExpenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("reason", dto.Reason).Required().MaxLength(500)
	return v.Validate()
}
