package auth

import (
	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required()
	v.Field("password", dto.Password).Required()
	return v.Validate()
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
