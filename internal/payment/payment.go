package payment

import (
	"context"
	"errors"
	"fmt"
)

type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

var ErrNoLineItems = errors.New("payment session needs at least one line item")

// GatewayError carries the gateway's own message. StatusCode is 0 for
// transport failures.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("payment gateway (%d): %s", e.StatusCode, e.Message)
	}
	return "payment gateway: " + e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }
