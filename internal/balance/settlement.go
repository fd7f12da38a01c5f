package balance

import (
	"math"
	"sort"
)

// Transfer is one suggested payment that moves the group toward settlement.
type Transfer struct {
	FromParticipantID string  `json:"from_participant_id"`
	ToParticipantID   string  `json:"to_participant_id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
}

type position struct {
	id     string
	amount float64
}

// SuggestTransfers turns net balances into a short list of payments that
// settle the group: repeatedly match the largest debtor against the largest
// creditor for min(debt, credit). For n unsettled participants this emits at
// most n-1 transfers. Amounts below SettleEpsilon are treated as noise and
// skipped.
func SuggestTransfers(balances []NetBalance) []Transfer {
	var debtors []position   // owe money, stored positive
	var creditors []position // owed money
	currency := ""

	for _, b := range balances {
		if currency == "" {
			currency = b.Currency
		}
		switch {
		case b.NetAmount < -SettleEpsilon:
			debtors = append(debtors, position{id: b.ParticipantID, amount: -b.NetAmount})
		case b.NetAmount > SettleEpsilon:
			creditors = append(creditors, position{id: b.ParticipantID, amount: b.NetAmount})
		}
	}

	// largest first; ties broken by id to keep output stable
	byAmountDesc := func(p []position) func(int, int) bool {
		return func(i, j int) bool {
			if p[i].amount != p[j].amount {
				return p[i].amount > p[j].amount
			}
			return p[i].id < p[j].id
		}
	}
	sort.Slice(debtors, byAmountDesc(debtors))
	sort.Slice(creditors, byAmountDesc(creditors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].amount, creditors[j].amount)

		if amount > SettleEpsilon {
			transfers = append(transfers, Transfer{
				FromParticipantID: debtors[i].id,
				ToParticipantID:   creditors[j].id,
				Amount:            amount,
				Currency:          currency,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount <= SettleEpsilon {
			i++
		}
		if creditors[j].amount <= SettleEpsilon {
			j++
		}
	}

	return transfers
}
