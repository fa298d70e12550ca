package promo

import "wellnest_backend/pkg/plans"

// State describes where a subscription sits in the pricing lifecycle.
type State string

const (
	StateTrial          State = "trial"            // ambassador, no charge yet
	StatePromoActive    State = "promo-active"     // discounted, counter > 1
	StatePromoLastCycle State = "promo-last-cycle" // discounted, counter == 1
	StateRegular        State = "regular"          // terminal
)

// Action is what a successful invoice payment should do to a subscription.
type Action int

const (
	ActionNone Action = iota
	ActionDecrement
	ActionUpgrade
)

// StateOf derives the lifecycle state from the plan type and promo counter.
func StateOf(planType plans.Kind, promoRemaining int) State {
	switch planType {
	case plans.Ambassador:
		return StateTrial
	case plans.Feedback:
		if promoRemaining == 1 {
			return StatePromoLastCycle
		}
		return StatePromoActive
	default:
		return StateRegular
	}
}

// OnPaymentSucceeded decides the transition for one paid invoice. Ambassadors
// carry no promo bookkeeping, and an already-upgraded subscription is a
// no-op, so replaying the decision after an upgrade cannot double-apply it.
func OnPaymentSucceeded(planType plans.Kind, promoRemaining int) Action {
	if planType != plans.Feedback {
		return ActionNone
	}
	switch {
	case promoRemaining > 1:
		return ActionDecrement
	case promoRemaining == 1:
		return ActionUpgrade
	default:
		return ActionNone
	}
}
