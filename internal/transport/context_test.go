package transport

import (
	"context"
	"testing"

	"myshop-be/internal/cart"

	"github.com/stretchr/testify/assert"
)

func TestContextHelpers(t *testing.T) {
	t.Run("Success_InjectAndRetrieve", func(t *testing.T) {
		c := cart.New()

		ctx := WithCart(context.Background(), c)

		assert.Same(t, c, CartFrom(ctx), "Cart should match the injected cart")
	})

	t.Run("Empty_Context_ReturnsNil", func(t *testing.T) {
		assert.Nil(t, CartFrom(context.Background()), "CartFrom should return nil if key is missing")
	})
}
