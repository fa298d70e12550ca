package plans

import "strings"

type Kind string

const (
	Ambassador Kind = "ambassador"
	Feedback   Kind = "feedback"
	Regular    Kind = "regular"
)

const (
	// RegularAmountPence is the standard monthly price after any trial or
	// promo period ends.
	RegularAmountPence  int64 = 3000
	FeedbackAmountPence int64 = 1500

	TrialDays   int64 = 90
	PromoCycles int   = 3
)

type Plan struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	AmountPence int64  `json:"amount_pence"`
	Currency    string `json:"currency"`
	Interval    string `json:"interval"`
	TrialDays   int64  `json:"trial_days,omitempty"`
	PromoCycles int    `json:"promo_cycles,omitempty"`
	Description string `json:"description"`
}

var catalog = map[Kind]Plan{
	Ambassador: {
		Kind:        Ambassador,
		Name:        "Ambassador",
		AmountPence: RegularAmountPence,
		Currency:    "gbp",
		Interval:    "month",
		TrialDays:   TrialDays,
		Description: "Free access for 3 months, then £30/month. Card saved, no charge until the trial ends.",
	},
	Feedback: {
		Kind:        Feedback,
		Name:        "Feedback Member",
		AmountPence: FeedbackAmountPence,
		Currency:    "gbp",
		Interval:    "month",
		PromoCycles: PromoCycles,
		Description: "£15/month for the first 3 months, then £30/month.",
	},
	Regular: {
		Kind:        Regular,
		Name:        "Regular",
		AmountPence: RegularAmountPence,
		Currency:    "gbp",
		Interval:    "month",
		Description: "£30/month standard membership.",
	},
}

func Get(kind Kind) (Plan, bool) {
	p, ok := catalog[kind]
	return p, ok
}

// List returns the signup-visible plans in a stable order.
func List() []Plan {
	return []Plan{catalog[Ambassador], catalog[Feedback], catalog[Regular]}
}

// ParseKind normalizes user input into a known plan kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Ambassador:
		return Ambassador, true
	case Feedback:
		return Feedback, true
	case Regular:
		return Regular, true
	default:
		return "", false
	}
}

// ChargedPounds is the whole-pound amount billed per cycle, used in signup
// responses.
func (p Plan) ChargedPounds() int64 {
	return p.AmountPence / 100
}
