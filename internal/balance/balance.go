package balance

import (
	"math"

	"github.com/marcelchiarello/Meepot/internal/expense"
	"github.com/marcelchiarello/Meepot/internal/split"
)

// SettleEpsilon is the threshold under which a participant counts as settled.
// Balances with |net| <= epsilon are dropped from results so floating-point
// residue never shows up as a debt.
const SettleEpsilon = 0.005

// NetBalance is a participant's aggregate position across all approved
// expenses. Positive means they are owed money, negative means they owe.
// Derived only; never stored.
type NetBalance struct {
	ParticipantID string  `json:"participant_id"`
	NetAmount     float64 `json:"net_amount"`
	Currency      string  `json:"currency"`
}

// Aggregate folds an event's expenses into net per-participant balances.
//
// Every roster participant starts at zero. For each approved expense the
// payer is credited the full amount and every participant in the computed
// split is debited their share. Pending and rejected expenses contribute
// nothing. The result lists only participants with |net| > SettleEpsilon, in
// roster order, so a fixed input always yields the same output.
func Aggregate(expenses []*expense.Expense, roster []string, currency string) []NetBalance {
	order := make([]string, 0, len(roster))
	balances := make(map[string]float64, len(roster))
	for _, id := range roster {
		if _, seen := balances[id]; seen {
			continue
		}
		balances[id] = 0
		order = append(order, id)
	}

	track := func(id string) {
		if _, seen := balances[id]; !seen {
			balances[id] = 0
			order = append(order, id)
		}
	}

	for _, exp := range expenses {
		if exp.ApprovalStatus != expense.ApprovalStatusApproved {
			continue
		}

		track(exp.PaidBy)
		balances[exp.PaidBy] += exp.Amount

		shares := split.Allocate(exp.Amount, exp.SplitMethod, exp.AllocationDetails(), roster)
		for _, share := range shares {
			track(share.ParticipantID)
			balances[share.ParticipantID] -= share.Amount
		}
	}

	result := make([]NetBalance, 0, len(order))
	for _, id := range order {
		net := balances[id]
		if math.Abs(net) <= SettleEpsilon {
			continue
		}
		result = append(result, NetBalance{
			ParticipantID: id,
			NetAmount:     net,
			Currency:      currency,
		})
	}
	return result
}
