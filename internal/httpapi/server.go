package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myshop-be/internal/admin"
	"myshop-be/internal/auth"
	"myshop-be/internal/cart"
	"myshop-be/internal/catalog"
	"myshop-be/internal/checkout"
	"myshop-be/internal/metrics"
	"myshop-be/internal/order"
	"myshop-be/internal/product"
	"myshop-be/internal/review"
	"myshop-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Users    user.Service
	Products product.Service
	Catalog  catalog.Service
	Reviews  review.Service
	Carts    cart.Service
	Orders   order.Service
	Checkout checkout.Service
	Admin    admin.Service

	Issuer        *auth.Issuer
	Metrics       *metrics.ServerMetrics
	SecureCookies bool
	// Ping backs /health; nil skips the database check.
	Ping func(ctx context.Context) error
}

type Server struct {
	engine *gin.Engine
	Deps
}

func NewServer(d Deps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())
	s := &Server{engine: r, Deps: d}
	if d.Metrics != nil {
		r.Use(s.observe)
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)
	if s.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	authGroup := s.engine.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/logout", s.logout)
	}

	account := s.engine.Group("/account", requireLogin)
	{
		account.GET("", s.getAccount)
		account.PUT("/profile", s.updateProfile)
	}

	products := s.engine.Group("/products")
	{
		products.GET("", s.listProducts)
		products.GET("/top", s.topRatedProducts)
		products.GET("/:id", s.getProduct)
		products.GET("/:id/reviews", s.productReviews)
		products.GET("/:id/review-eligibility", s.reviewEligibility)
		products.POST("/:id/reviews", requireLogin, s.addReview)
	}

	carts := s.engine.Group("/cart")
	{
		carts.GET("", s.getCart)
		carts.POST("/items/:id", s.addToCart)
		carts.POST("/items/:id/decrement", s.removeOneFromCart)
		carts.PUT("/items/:id", s.setCartQuantity)
		carts.DELETE("/items/:id", s.deleteFromCart)
	}

	co := s.engine.Group("/checkout")
	{
		co.POST("/session", requireLogin, s.createCheckoutSession)
		co.GET("/success", requireLogin, s.checkoutSuccess)
		co.GET("/cancel", s.checkoutCancel)
	}

	orders := s.engine.Group("/orders", requireLogin)
	{
		orders.GET("", s.listOrders)
		orders.GET("/:id", s.getOrder)
	}

	adm := s.engine.Group("/admin")
	{
		adm.GET("/orders", s.adminListOrders)
		adm.GET("/orders/:id", s.adminGetOrder)
		adm.POST("/orders/:id/status", s.adminSetOrderStatus)
		adm.GET("/products", s.adminListProducts)
		adm.POST("/products", s.adminCreateProduct)
		adm.PUT("/products/:id", s.adminUpdateProduct)
		adm.DELETE("/products/:id", s.adminDeleteProduct)
	}
}

func (s *Server) health(c *gin.Context) {
	if s.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// observe labels by route pattern so ids do not explode the series count.
func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	handler := c.FullPath()
	if handler == "" {
		handler = "unmatched"
	}
	s.Metrics.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
	s.Metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
}
