package httpapi

import (
	"errors"
	"net/http"

	"myshop-be/internal/cart"
	"myshop-be/internal/transport"
	"myshop-be/internal/utils"

	"github.com/gin-gonic/gin"
)

var errNoSession = errors.New("session middleware not installed")

func requireLogin(c *gin.Context) {
	if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	c.Next()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return false
	}
	return true
}

func (s *Server) sessionCart(c *gin.Context) (*cart.Cart, bool) {
	sc := transport.CartFrom(c.Request.Context())
	if sc == nil {
		s.fail(c, errNoSession)
		return nil, false
	}
	return sc, true
}

func currentUserID(c *gin.Context) uint {
	id, _ := utils.GetUserIDFromContext(c.Request.Context())
	return id
}
