package transport

import (
	"context"

	"myshop-be/internal/cart"
)

type ctxKey string

const cartKey ctxKey = "sessionCart"

// WithCart attaches the visitor's cart so handlers and services share one value per request.
func WithCart(ctx context.Context, c *cart.Cart) context.Context {
	return context.WithValue(ctx, cartKey, c)
}

// CartFrom returns the request cart, or nil when no session middleware ran.
func CartFrom(ctx context.Context) *cart.Cart {
	c, _ := ctx.Value(cartKey).(*cart.Cart)
	return c
}
