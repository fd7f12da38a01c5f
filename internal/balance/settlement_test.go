package balance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marcelchiarello/Meepot/internal/balance"
)

func nb(id string, net float64) balance.NetBalance {
	return balance.NetBalance{ParticipantID: id, NetAmount: net, Currency: "EUR"}
}

var _ = Describe("SuggestTransfers", func() {
	It("settles a single debtor-creditor pair with one transfer", func() {
		transfers := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", 40),
			nb("bob", -40),
		})

		Expect(transfers).To(HaveLen(1))
		Expect(transfers[0].FromParticipantID).To(Equal("bob"))
		Expect(transfers[0].ToParticipantID).To(Equal("alice"))
		Expect(transfers[0].Amount).To(BeNumerically("~", 40, 1e-9))
		Expect(transfers[0].Currency).To(Equal("EUR"))
	})

	It("settles the equal split scenario with two transfers", func() {
		transfers := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", 80),
			nb("bob", -40),
			nb("charlie", -40),
		})

		Expect(transfers).To(HaveLen(2))
		for _, tr := range transfers {
			Expect(tr.ToParticipantID).To(Equal("alice"))
			Expect(tr.Amount).To(BeNumerically("~", 40, 1e-9))
		}
	})

	It("emits at most n-1 transfers", func() {
		transfers := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", 30),
			nb("bob", 20),
			nb("charlie", -25),
			nb("dave", -15),
			nb("erin", -10),
		})

		Expect(len(transfers)).To(BeNumerically("<=", 4))

		var moved float64
		for _, tr := range transfers {
			moved += tr.Amount
		}
		Expect(moved).To(BeNumerically("~", 50, 1e-9))
	})

	It("matches the largest debtor against the largest creditor first", func() {
		transfers := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", 50),
			nb("bob", 10),
			nb("charlie", -35),
			nb("dave", -25),
		})

		Expect(transfers[0].FromParticipantID).To(Equal("charlie"))
		Expect(transfers[0].ToParticipantID).To(Equal("alice"))
		Expect(transfers[0].Amount).To(BeNumerically("~", 35, 1e-9))
	})

	It("breaks amount ties by participant id for stable output", func() {
		first := balance.SuggestTransfers([]balance.NetBalance{
			nb("bob", -20), nb("alice", -20), nb("carol", 40),
		})
		second := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", -20), nb("bob", -20), nb("carol", 40),
		})

		Expect(second).To(Equal(first))
		Expect(first[0].FromParticipantID).To(Equal("alice"))
	})

	It("ignores residue below the settle threshold", func() {
		transfers := balance.SuggestTransfers([]balance.NetBalance{
			nb("alice", 0.003),
			nb("bob", -0.003),
		})

		Expect(transfers).To(BeEmpty())
	})

	It("returns nothing when everyone is settled", func() {
		Expect(balance.SuggestTransfers(nil)).To(BeEmpty())
	})
})
