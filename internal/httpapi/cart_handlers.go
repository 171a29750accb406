package httpapi

import (
	"net/http"

	"myshop-be/internal/cart"

	"github.com/gin-gonic/gin"
)

type quantityReq struct {
	Quantity *int `json:"quantity"`
}

func (s *Server) getCart(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cart.ToResponse(sc))
}

// addToCart takes an optional {"quantity": n}; an empty body adds one.
func (s *Server) addToCart(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}

	delta := 1
	if c.Request.ContentLength > 0 {
		var req quantityReq
		if !bindJSON(c, &req) {
			return
		}
		if req.Quantity != nil {
			delta = *req.Quantity
		}
	}

	line, err := s.Carts.Add(c.Request.Context(), sc, c.Param("id"), delta)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Added " + line.Name + " to cart.",
		"cart":    cart.ToResponse(sc),
	})
}

func (s *Server) removeOneFromCart(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	if err := s.Carts.RemoveOne(c.Request.Context(), sc, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.ToResponse(sc)})
}

func (s *Server) setCartQuantity(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		s.fail(c, cart.ErrInvalidQuantity)
		return
	}
	if err := s.Carts.SetQuantity(c.Request.Context(), sc, c.Param("id"), *req.Quantity); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.ToResponse(sc)})
}

func (s *Server) deleteFromCart(c *gin.Context) {
	sc, ok := s.sessionCart(c)
	if !ok {
		return
	}
	if err := s.Carts.Delete(c.Request.Context(), sc, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart.ToResponse(sc)})
}
