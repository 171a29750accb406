package httpapi

import (
	"errors"
	"net/http"

	"myshop-be/internal/cart"
	"myshop-be/internal/checkout"
	"myshop-be/internal/order"

	"github.com/gin-gonic/gin"
)

// EmptyCartRedirect is where a replayed success callback lands.
const EmptyCartRedirect = "/products?notice=cart-empty"

func (s *Server) createCheckoutSession(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	a, err := s.Checkout.Initiate(c.Request.Context(), sc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": a.Session.ID, "url": a.Session.URL})
}

func (s *Server) checkoutSuccess(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	a, err := s.Checkout.Finalize(c.Request.Context(), sc)
	if errors.Is(err, checkout.ErrEmptyCart) {
		c.Redirect(http.StatusSeeOther, EmptyCartRedirect)
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order completed successfully!",
		"order":   order.ToResponse(a.Order),
	})
}

func (s *Server) checkoutCancel(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout cancelled. Your cart has been kept.",
		"cart":    cart.ToResponse(sc),
	})
}
