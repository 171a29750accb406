package checkout

import (
	"myshop-be/internal/order"
	"myshop-be/internal/payment"
)

type Step string

const (
	StepInitiate Step = "initiate"
	StepFinalize Step = "finalize"
)

type State string

const (
	StateCartReview        State = "CART_REVIEW"
	StatePreconditionCheck State = "PRECONDITION_CHECK"
	StateGatewayPending    State = "GATEWAY_PENDING"
	StateGatewayConfirmed  State = "GATEWAY_CONFIRMED"
	StateOrderCommitted    State = "ORDER_COMMITTED"
	StateNotified          State = "NOTIFIED"

	StateRejectedAuth      State = "REJECTED_UNAUTHENTICATED"
	StateRejectedProfile   State = "REJECTED_PROFILE"
	StateRejectedEmptyCart State = "REJECTED_EMPTY_CART"
	StateRejectedNoItems   State = "REJECTED_NO_VALID_ITEMS"
	StateGatewayError      State = "GATEWAY_ERROR"
	StateOrderFailed       State = "ORDER_FAILED"
)

// Attempt records the states one call passed through, in order.
type Attempt struct {
	Step    Step
	States  []State
	Session *payment.Session
	Order   *order.Order
}

func (a *Attempt) State() State {
	if len(a.States) == 0 {
		return ""
	}
	return a.States[len(a.States)-1]
}

func (a *Attempt) enter(s State) {
	a.States = append(a.States, s)
}
