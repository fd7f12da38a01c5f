package expense_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/expense"
)

func pf(v float64) *float64 { return &v }

func fieldsOf(err *errors.AppError) []string {
	details, ok := err.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	fields := make([]string, len(details.Errors))
	for i, e := range details.Errors {
		fields[i] = e.Field
	}
	return fields
}

func codesOf(err *errors.AppError) []string {
	details, ok := err.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	codes := make([]string, len(details.Errors))
	for i, e := range details.Errors {
		codes[i] = e.Code
	}
	return codes
}

var _ = Describe("SubmitExpenseDTO Validate", func() {
	roster := []string{"alice", "bob", "charlie"}

	Context("equal splits", func() {
		It("accepts an equal split without details", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Groceries",
				Amount:      120,
				PaidBy:      "alice",
				SplitMethod: "equal",
			}
			Expect(dto.Validate(roster)).To(BeNil())
		})
	})

	Context("percentage splits", func() {
		It("accepts percentages summing to exactly 100", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Dinner",
				Amount:      75,
				PaidBy:      "bob",
				SplitMethod: "percentage",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Percentage: pf(40)},
					{ParticipantID: "bob", Percentage: pf(30)},
					{ParticipantID: "charlie", Percentage: pf(30)},
				},
			}
			Expect(dto.Validate(roster)).To(BeNil())
		})

		It("rejects a sum just under 100", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Dinner",
				Amount:      75,
				PaidBy:      "bob",
				SplitMethod: "percentage",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Percentage: pf(49.999)},
					{ParticipantID: "bob", Percentage: pf(50)},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(codesOf(err)).To(ContainElement(string(errors.ErrCodePercentageSum)))
		})

		It("rejects a sum just over 100", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Dinner",
				Amount:      75,
				PaidBy:      "bob",
				SplitMethod: "percentage",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Percentage: pf(50.001)},
					{ParticipantID: "bob", Percentage: pf(50)},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(codesOf(err)).To(ContainElement(string(errors.ErrCodePercentageSum)))
		})

		It("rejects an entry without a percentage, tagged with its path", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Dinner",
				Amount:      75,
				PaidBy:      "bob",
				SplitMethod: "percentage",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Percentage: pf(100)},
					{ParticipantID: "bob"},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(fieldsOf(err)).To(ContainElement("split_details[1].percentage"))
		})

		It("rejects empty details", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Dinner",
				Amount:      75,
				PaidBy:      "bob",
				SplitMethod: "percentage",
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(codesOf(err)).To(ContainElement(string(errors.ErrCodeEmptySplitDetails)))
		})
	})

	Context("exact amount splits", func() {
		It("accepts amounts summing to exactly the expense amount", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Tickets",
				Amount:      90,
				PaidBy:      "alice",
				SplitMethod: "exact_amounts",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Amount: pf(30)},
					{ParticipantID: "bob", Amount: pf(60)},
				},
			}
			Expect(dto.Validate(roster)).To(BeNil())
		})

		It("rejects a mismatched sum", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Tickets",
				Amount:      90,
				PaidBy:      "alice",
				SplitMethod: "itemized",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Amount: pf(30)},
					{ParticipantID: "bob", Amount: pf(59.99)},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(codesOf(err)).To(ContainElement(string(errors.ErrCodeSplitAmountSum)))
		})

		It("rejects negative entries with their field path", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Tickets",
				Amount:      90,
				PaidBy:      "alice",
				SplitMethod: "exact_amounts",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Amount: pf(100)},
					{ParticipantID: "bob", Amount: pf(-10)},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(fieldsOf(err)).To(ContainElement("split_details[1].amount"))
		})
	})

	Context("roster membership", func() {
		It("rejects a split participant not on the roster", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "Tickets",
				Amount:      90,
				PaidBy:      "alice",
				SplitMethod: "exact_amounts",
				SplitDetails: []expense.SplitDetailDTO{
					{ParticipantID: "alice", Amount: pf(45)},
					{ParticipantID: "mallory", Amount: pf(45)},
				},
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			Expect(codesOf(err)).To(ContainElement(string(errors.ErrCodeUnknownParticipant)))
			Expect(fieldsOf(err)).To(ContainElement("split_details[1].participant_id"))
		})
	})

	Context("basic fields", func() {
		It("collects all violations in one pass", func() {
			dto := expense.SubmitExpenseDTO{
				Description: "",
				Amount:      0,
				PaidBy:      "",
				SplitMethod: "half-and-half",
			}
			err := dto.Validate(roster)
			Expect(err).ToNot(BeNil())
			fields := fieldsOf(err)
			Expect(fields).To(ContainElement("description"))
			Expect(fields).To(ContainElement("amount"))
			Expect(fields).To(ContainElement("paid_by"))
			Expect(fields).To(ContainElement("split_method"))
		})
	})
})
