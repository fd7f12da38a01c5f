package events_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marcelchiarello/Meepot/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Module Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	Describe("PublishSync", func() {
		It("delivers to handlers in registration order before returning", func() {
			var order []string
			bus.Subscribe(events.ExpenseApproved, func(ctx context.Context, e events.Event) error {
				order = append(order, "first")
				return nil
			})
			bus.Subscribe(events.ExpenseApproved, func(ctx context.Context, e events.Event) error {
				order = append(order, "second")
				return nil
			})

			err := bus.PublishSync(context.Background(), events.NewExpenseApprovedEvent("exp-1", "evt-1", "user-1"))

			Expect(err).ToNot(HaveOccurred())
			Expect(order).To(Equal([]string{"first", "second"}))
		})

		It("stops at the first handler error", func() {
			var reached bool
			bus.Subscribe(events.ExpenseRejected, func(ctx context.Context, e events.Event) error {
				return fmt.Errorf("feed unavailable")
			})
			bus.Subscribe(events.ExpenseRejected, func(ctx context.Context, e events.Event) error {
				reached = true
				return nil
			})

			err := bus.PublishSync(context.Background(), events.NewExpenseRejectedEvent("exp-1", "evt-1", "user-1", "duplicate"))

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(events.ExpenseRejected))
			Expect(reached).To(BeFalse())
		})

		It("is a no-op without subscribers", func() {
			err := bus.PublishSync(context.Background(), events.NewExpenseApprovedEvent("exp-1", "evt-1", "user-1"))
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Publish", func() {
		It("delivers asynchronously to every handler", func() {
			delivered := make(chan string, 2)
			bus.Subscribe(events.ExpenseSubmitted, func(ctx context.Context, e events.Event) error {
				delivered <- e.EventID()
				return nil
			})
			bus.Subscribe(events.ExpenseSubmitted, func(ctx context.Context, e events.Event) error {
				delivered <- e.EventID()
				return nil
			})

			event := events.NewExpenseSubmittedEvent("exp-1", "evt-1", "alice", 42.5)
			err := bus.Publish(context.Background(), event)

			Expect(err).ToNot(HaveOccurred())
			Eventually(delivered).Should(Receive(Equal(event.EventID())))
			Eventually(delivered).Should(Receive(Equal(event.EventID())))
		})

		It("is a no-op without subscribers", func() {
			err := bus.Publish(context.Background(), events.NewExpenseSubmittedEvent("exp-1", "evt-1", "alice", 10))
			Expect(err).ToNot(HaveOccurred())
		})
	})
})
