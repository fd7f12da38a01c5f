package split

// Method is the rule by which an expense's total is divided among
// participants. The set is closed; validation rejects anything else before an
// expense reaches the allocator.
type Method string

const (
	MethodEqual        Method = "equal"
	MethodPercentage   Method = "percentage"
	MethodItemized     Method = "itemized"
	MethodExactAmounts Method = "exact_amounts"
)

func Methods() []string {
	return []string{
		string(MethodEqual),
		string(MethodPercentage),
		string(MethodItemized),
		string(MethodExactAmounts),
	}
}

func (m Method) Valid() bool {
	switch m {
	case MethodEqual, MethodPercentage, MethodItemized, MethodExactAmounts:
		return true
	}
	return false
}

// RequiresDetails reports whether the method needs an explicit non-empty
// detail list. Equal splits may omit it and fall back to the event roster.
func (m Method) RequiresDetails() bool {
	return m != MethodEqual
}

// Detail is one raw split entry as submitted. Amount carries absolute
// currency values for itemized/exact_amounts, Percentage carries the share
// for percentage splits; equal splits may leave both nil.
type Detail struct {
	ParticipantID string
	Amount        *float64
	Percentage    *float64
}

// Share is a concrete owed amount for one participant.
type Share struct {
	ParticipantID string
	Amount        float64
}

// Allocate converts an expense amount plus raw split details into concrete
// per-participant owed amounts. It is pure and assumes validated input; it is
// never called on an expense the validator rejected.
//
// Equal shares are amount/n with no remainder redistribution, so the summed
// shares may differ from amount by floating-point error only. Percentage
// shares are amount*(pct/100). Itemized and exact_amounts entries are taken
// verbatim.
func Allocate(amount float64, method Method, details []Detail, roster []string) []Share {
	switch method {
	case MethodEqual:
		return allocateEqual(amount, details, roster)
	case MethodPercentage:
		shares := make([]Share, 0, len(details))
		for _, d := range details {
			var pct float64
			if d.Percentage != nil {
				pct = *d.Percentage
			}
			shares = append(shares, Share{
				ParticipantID: d.ParticipantID,
				Amount:        amount * (pct / 100),
			})
		}
		return shares
	case MethodItemized, MethodExactAmounts:
		shares := make([]Share, 0, len(details))
		for _, d := range details {
			var owed float64
			if d.Amount != nil {
				owed = *d.Amount
			}
			shares = append(shares, Share{
				ParticipantID: d.ParticipantID,
				Amount:        owed,
			})
		}
		return shares
	}
	return nil
}

func allocateEqual(amount float64, details []Detail, roster []string) []Share {
	participants := make([]string, 0, len(details))
	for _, d := range details {
		participants = append(participants, d.ParticipantID)
	}
	// an empty equal split means "everyone on the event"
	if len(participants) == 0 {
		participants = roster
	}
	if len(participants) == 0 {
		return nil
	}

	share := amount / float64(len(participants))
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{ParticipantID: p, Amount: share}
	}
	return shares
}
