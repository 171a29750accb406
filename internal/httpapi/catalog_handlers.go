package httpapi

import (
	"net/http"
	"strconv"

	"myshop-be/internal/catalog"
	"myshop-be/internal/review"

	"github.com/gin-gonic/gin"
)

func (s *Server) listProducts(c *gin.Context) {
	listings, err := s.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": catalog.ToListingResponses(listings)})
}

const maxTopRated = 50

func (s *Server) topRatedProducts(c *gin.Context) {
	limit := catalog.DefaultTopRated
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTopRated {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
			return
		}
		limit = n
	}

	listings, err := s.Catalog.TopRated(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": catalog.ToListingResponses(listings)})
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.Products.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog.ToProductResponse(p))
}

func (s *Server) productReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, err := s.Catalog.ProductReviews(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog.ToPageResponse(page))
}

func (s *Server) reviewEligibility(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	el, err := s.Catalog.ReviewEligibility(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eligibility": el})
}

func (s *Server) addReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in review.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid rating value."})
		return
	}
	rv, err := s.Reviews.AddReview(c.Request.Context(), currentUserID(c), id, in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"review":  catalog.ToReviewResponse(rv),
		"message": "Review submitted successfully.",
	})
}
