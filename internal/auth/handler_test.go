package auth_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/auth"
)

type mockAuthService struct {
	userByToken map[string]*auth.User
	err         error
}

func (m *mockAuthService) Login(dto auth.LoginDTO) (*auth.LoginResponse, error) {
	return nil, m.err
}

func (m *mockAuthService) ValidateToken(tokenString string) (*auth.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, exists := m.userByToken[tokenString]
	if !exists {
		return nil, internal.ErrInvalidToken
	}
	return user, nil
}

var _ = Describe("AuthMiddleware", func() {
	var (
		handler *auth.Handler
		service *mockAuthService
	)

	BeforeEach(func() {
		service = &mockAuthService{
			userByToken: map[string]*auth.User{
				"valid-token": {ID: "user-1", Email: "alice@mail.com", Name: "Alice", IsActive: true},
			},
		}
		handler = auth.NewHandler(service)
	})

	It("stores the user and the bare user id in the request context", func() {
		var (
			seenUser   *auth.User
			seenUserID string
		)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenUser, _ = auth.UserFromContext(r.Context())
			seenUserID = internal.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(next).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(seenUser).ToNot(BeNil())
		Expect(seenUser.ID).To(Equal("user-1"))
		Expect(seenUserID).To(Equal("user-1"))
	})

	It("rejects a request without a bearer token", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Fail("next handler must not run")
		})).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects an invalid token", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()

		handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Fail("next handler must not run")
		})).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
