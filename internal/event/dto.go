package event

import (
	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/core/common/validation"
)

type CreateEventDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

func (dto CreateEventDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("description", dto.Description).MaxLength(2000)
	if dto.Currency != "" {
		v.Field("currency", dto.Currency).Custom(func(value interface{}) *errors.AppError {
			if s, ok := value.(string); ok && len(s) != 3 {
				return errors.NewValidationFieldError("currency", "currency must be a 3-letter code", errors.ErrCodeValidationFailed)
			}
			return nil
		})
	}
	return v.Validate()
}

type AddParticipantDTO struct {
	DisplayName string `json:"display_name"`
}

func (dto AddParticipantDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("display_name", dto.DisplayName).Required().MaxLength(100)
	return v.Validate()
}
