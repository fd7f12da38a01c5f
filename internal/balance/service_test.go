package balance_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/balance"
	"github.com/marcelchiarello/Meepot/internal/expense"
)

type mockExpenseSource struct {
	expenses []*expense.Expense
	err      error
}

func (m *mockExpenseSource) ApprovedExpenses(eventID string) ([]*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expenses, nil
}

type mockGateway struct {
	info *expense.EventInfo
	err  error
}

func (m *mockGateway) GetEventInfo(eventID string) (*expense.EventInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

var _ = Describe("BalanceService", func() {
	var (
		service *balance.Service
		source  *mockExpenseSource
		gateway *mockGateway
	)

	BeforeEach(func() {
		source = &mockExpenseSource{}
		gateway = &mockGateway{
			info: &expense.EventInfo{
				ID:          "event-1",
				OrganizerID: "alice",
				Currency:    "EUR",
				Roster:      []string{"alice", "bob", "charlie"},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = balance.NewService(source, gateway, logger)
	})

	Describe("NetBalances", func() {
		It("aggregates the approved expenses over the event roster", func() {
			source.expenses = []*expense.Expense{
				approvedExpense("alice", 120, "equal", nil),
			}

			balances, err := service.NetBalances("event-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(balances).To(HaveLen(3))
			Expect(balances[0].Currency).To(Equal("EUR"))
			Expect(balances[0].NetAmount).To(BeNumerically("~", 80, 1e-9))
		})

		It("propagates an unknown event", func() {
			gateway.err = errors.ErrEventNotFound

			_, err := service.NetBalances("missing")

			Expect(err).To(Equal(errors.ErrEventNotFound))
		})
	})

	Describe("SettlementSuggestions", func() {
		It("turns the balances into transfers", func() {
			source.expenses = []*expense.Expense{
				approvedExpense("alice", 120, "equal", nil),
			}

			transfers, err := service.SettlementSuggestions("event-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(transfers).To(HaveLen(2))
			Expect(transfers[0].ToParticipantID).To(Equal("alice"))
		})
	})
})
