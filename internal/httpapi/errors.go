package httpapi

import (
	"errors"
	"net/http"

	"myshop-be/internal/admin"
	"myshop-be/internal/cart"
	"myshop-be/internal/checkout"
	"myshop-be/internal/logger"
	"myshop-be/internal/order"
	"myshop-be/internal/product"
	"myshop-be/internal/review"
	"myshop-be/internal/user"
	"myshop-be/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgTryAgain        = "something went wrong, please try again"
	msgGatewayTryAgain = "the payment provider could not start checkout, please try again"
	msgInvalidJSON     = "invalid json"
	msgInvalidID       = "invalid id"
)

// mapError is the single translation from domain errors to responses.
// Faults get a generic message; their detail stays in the log.
func mapError(err error) (int, gin.H) {
	var verrs validation.Errors
	var profileErr *checkout.ProfileIncompleteError
	var gatewayErr *checkout.GatewayError

	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs}
	case errors.As(err, &profileErr):
		return http.StatusBadRequest, gin.H{
			"error":   "Profile incomplete. Please complete your profile to proceed.",
			"missing": profileErr.Missing,
		}
	case errors.As(err, &gatewayErr):
		return http.StatusBadGateway, gin.H{"error": msgGatewayTryAgain}

	case errors.Is(err, checkout.ErrUnauthenticated),
		errors.Is(err, admin.ErrUnauthenticated),
		errors.Is(err, order.ErrUnauthorized):
		return http.StatusUnauthorized, gin.H{"error": "login required"}
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"error": err.Error()}
	case errors.Is(err, admin.ErrForbidden),
		errors.Is(err, review.ErrNotPurchased):
		return http.StatusForbidden, gin.H{"error": err.Error()}

	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrCPFTaken),
		errors.Is(err, user.ErrRGTaken),
		errors.Is(err, review.ErrDuplicateReview),
		errors.Is(err, product.ErrProductInUse):
		return http.StatusConflict, gin.H{"error": err.Error()}

	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoValidItems),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidProductID),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, admin.ErrInvalidStatus):
		return http.StatusBadRequest, gin.H{"error": err.Error()}

	default:
		return http.StatusInternalServerError, gin.H{"error": msgTryAgain}
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("layer", "http"),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, body)
}
