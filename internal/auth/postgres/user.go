package postgres

import (
	"gorm.io/gorm"

	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/auth"
	userDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	return &u, nil
}
