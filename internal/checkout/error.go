package checkout

import (
	"errors"
	"strings"

	"myshop-be/internal/payment"
)

var (
	ErrUnauthenticated = errors.New("login required to check out")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoValidItems    = errors.New("no valid items in cart")
)

// GatewayError keeps the gateway's own message.
type GatewayError = payment.GatewayError

type ProfileIncompleteError struct {
	Missing []string
}

func (e *ProfileIncompleteError) Error() string {
	return "profile incomplete: missing " + strings.Join(e.Missing, ", ")
}

// StateOf maps an error from Initiate or Finalize to its terminal state.
// Anything unrecognised is an order fault.
func StateOf(err error) State {
	var profileErr *ProfileIncompleteError
	var gatewayErr *GatewayError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return StateRejectedAuth
	case errors.As(err, &profileErr):
		return StateRejectedProfile
	case errors.Is(err, ErrEmptyCart):
		return StateRejectedEmptyCart
	case errors.Is(err, ErrNoValidItems):
		return StateRejectedNoItems
	case errors.As(err, &gatewayErr):
		return StateGatewayError
	default:
		return StateOrderFailed
	}
}
