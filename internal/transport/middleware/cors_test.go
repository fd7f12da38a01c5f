package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marcelchiarello/Meepot/internal/transport/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Middleware Suite")
}

var _ = Describe("CORS", func() {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(allowedOrigins, origin, method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/ping", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		middleware.CORS(allowedOrigins)(ok).ServeHTTP(rec, req)
		return rec
	}

	It("allows any origin when configured with a wildcard", func() {
		rec := serve("*", "https://app.example.com", http.MethodGet)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("falls back to a wildcard when no origins are configured", func() {
		rec := serve("", "https://app.example.com", http.MethodGet)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})

	It("echoes an origin from the configured list", func() {
		rec := serve("https://app.example.com, https://admin.example.com", "https://admin.example.com", http.MethodGet)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://admin.example.com"))
		Expect(rec.Header().Values("Vary")).To(ContainElement("Origin"))
	})

	It("omits the allow-origin header for an origin outside the list", func() {
		rec := serve("https://app.example.com", "https://evil.example.com", http.MethodGet)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("answers preflight requests with 204 and no body", func() {
		rec := serve("https://app.example.com", "https://app.example.com", http.MethodOptions)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Body.Len()).To(BeZero())
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("PATCH"))
	})
})
