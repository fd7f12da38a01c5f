package auth

import (
	"encoding/json"
	"net/http"

	"github.com/marcelchiarello/Meepot/internal/transport"
	"github.com/marcelchiarello/Meepot/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*LoginResponse, error)
	ValidateToken(tokenString string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.Default()),
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// AuthMiddleware resolves the bearer token and stores the user in the request
// context for downstream handlers.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := h.Service.ValidateToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
