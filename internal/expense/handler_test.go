package expense_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/auth"
	"github.com/marcelchiarello/Meepot/internal/expense"
)

var _ = Describe("Expense Handler", func() {
	var (
		handler *expense.Handler
		router  *chi.Mux
	)

	const eventID = "event-1"

	withUser := func(userID string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user := &auth.User{ID: userID, Email: userID + "@mail.com", IsActive: true}
				next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), user)))
			})
		}
	}

	BeforeEach(func() {
		mockRepo := newMockExpenseRepository()
		gateway := &mockEventGateway{
			info: &expense.EventInfo{
				ID:          eventID,
				OrganizerID: "alice",
				Currency:    "EUR",
				Roster:      []string{"alice", "bob", "charlie"},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := expense.NewService(mockRepo, gateway, nil, logger)
		handler = expense.NewHandler(service)

		router = chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(withUser("alice"))
			r.Post("/events/{id}/expenses", handler.SubmitExpense)
			r.Get("/expenses/{expenseID}", handler.GetExpense)
			r.Patch("/expenses/{expenseID}/approve", handler.ApproveExpense)
		})
	})

	It("accepts a valid submission and returns the pending expense", func() {
		body := `{
			"description": "Groceries",
			"amount": 120,
			"paid_by": "alice",
			"split_method": "equal"
		}`
		req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/expenses", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp expense.Expense
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.ApprovalStatus).To(Equal(expense.ApprovalStatusPending))
		Expect(resp.EventID).To(Equal(eventID))
	})

	It("returns 400 with field-tagged details for an invalid submission", func() {
		body := `{
			"description": "Dinner",
			"amount": 75,
			"paid_by": "bob",
			"split_method": "percentage",
			"split_details": [
				{"participant_id": "alice", "percentage": 40},
				{"participant_id": "bob", "percentage": 30}
			]
		}`
		req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/expenses", strings.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp struct {
			Error struct {
				Type    string `json:"type"`
				Details struct {
					Errors []errors.ValidationError `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Error.Type).To(Equal(string(errors.ErrorTypeValidation)))
		Expect(resp.Error.Details.Errors).ToNot(BeEmpty())
	})

	It("returns 409 when approving an already approved expense", func() {
		body := `{"description": "Fuel", "amount": 60, "paid_by": "bob", "split_method": "equal"}`
		req := httptest.NewRequest(http.MethodPost, "/events/"+eventID+"/expenses", strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created expense.Expense
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		approve := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPatch, "/expenses/"+created.ID+"/approve", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		Expect(approve().Code).To(Equal(http.StatusOK))
		Expect(approve().Code).To(Equal(http.StatusConflict))
	})

	It("returns 404 for an unknown expense", func() {
		req := httptest.NewRequest(http.MethodGet, "/expenses/missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
