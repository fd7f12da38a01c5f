package auth

import (
	"context"
	"time"

	"github.com/marcelchiarello/Meepot/internal"
	userDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/user"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type userCtxKey string

const userKey userCtxKey = "authenticated_user"

// ContextWithUser stores the full user for handlers and the bare id for
// cross-cutting concerns (request logging) that must not import this package.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	ctx = internal.ContextWithUserID(ctx, user.ID)
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
