package auth

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	errors "github.com/marcelchiarello/Meepot/internal"
	userDatamodel "github.com/marcelchiarello/Meepot/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	repo          RepositoryAPI
	tokenSecret   []byte
	tokenDuration time.Duration
	logger        *slog.Logger
}

func NewService(repo RepositoryAPI, tokenSecret string, tokenDuration time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		tokenSecret:   []byte(tokenSecret),
		tokenDuration: tokenDuration,
		logger:        logger,
	}
}

func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	data, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "email", dto.Email)
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(data.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "user_id", data.ID)
		return nil, errors.ErrInvalidCredentials
	}

	if !data.IsActive {
		return nil, errors.ErrUnauthorizedAccess
	}

	token, expiresAt, err := s.issueToken(data)
	if err != nil {
		s.logger.Error("failed to issue token", "error", err, "user_id", data.ID)
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user logged in", "user_id", data.ID)

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        FromDataModel(data),
	}, nil
}

func (s *Service) issueToken(data *userDatamodel.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenDuration)

	claims := Claims{
		Email: data.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   data.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.tokenSecret)
	return signed, expiresAt, err
}

// ValidateToken parses and verifies a bearer token and resolves its user.
func (s *Service) ValidateToken(tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.tokenSecret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrInvalidToken
	}
	if !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	data, err := s.repo.GetByID(claims.Subject)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	if !data.IsActive {
		return nil, errors.ErrUnauthorizedAccess
	}

	return FromDataModel(data), nil
}
