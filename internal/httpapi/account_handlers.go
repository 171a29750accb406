package httpapi

import (
	"net/http"

	"myshop-be/internal/auth"
	"myshop-be/internal/order"
	"myshop-be/internal/user"

	"github.com/gin-gonic/gin"
)

func (s *Server) register(c *gin.Context) {
	var in user.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	token, u, err := s.Users.Register(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	auth.SetAccessTokenCookie(c.Writer, token, s.Issuer.TTL(), s.SecureCookies)
	c.JSON(http.StatusCreated, gin.H{"user": user.ToResponse(u), "token": token})
}

func (s *Server) login(c *gin.Context) {
	var in user.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, u, err := s.Users.Login(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	auth.SetAccessTokenCookie(c.Writer, token, s.Issuer.TTL(), s.SecureCookies)
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse(u), "token": token})
}

func (s *Server) logout(c *gin.Context) {
	auth.ClearAccessTokenCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) getAccount(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := s.Users.GetByID(ctx, currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	orders, err := s.Orders.ListUserOrders(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse(u), "orders": order.ToResponses(orders)})
}

func (s *Server) updateProfile(c *gin.Context) {
	var in user.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := s.Users.UpdateProfile(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse(u), "message": "Profile updated."})
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.Orders.ListUserOrders(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": order.ToResponses(orders)})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	o, err := s.Orders.GetOrderDetail(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponse(o))
}
