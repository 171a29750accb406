package catalog

import (
	"context"

	"myshop-be/internal/logger"
	"myshop-be/internal/product"
	"myshop-be/internal/review"
	"myshop-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductReader interface {
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type ReviewReader interface {
	HasPurchased(ctx context.Context, userID, productID uint) (bool, error)
	HasReviewed(ctx context.Context, userID, productID uint) (bool, error)
	AverageRating(ctx context.Context, productID uint) (decimal.Decimal, error)
	Summaries(ctx context.Context) (map[uint]review.Summary, error)
	ListByProduct(ctx context.Context, productID uint) ([]review.Review, error)
	RecentByProducts(ctx context.Context, perProduct int) (map[uint][]review.Review, error)
	TopRated(ctx context.Context, limit int) ([]review.Ranked, error)
	ReviewedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}

type PurchaseReader interface {
	PurchasedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}

// Service serves the read side of the storefront. The viewer, if any, is
// taken from the request context.
type Service interface {
	ListProducts(ctx context.Context) ([]Listing, error)
	// TopRated returns the best rated products, DefaultTopRated when limit
	// is not positive.
	TopRated(ctx context.Context, limit int) ([]Listing, error)
	ProductReviews(ctx context.Context, productID uint) (*ProductPage, error)
	ReviewEligibility(ctx context.Context, productID uint) (Eligibility, error)
}

type service struct {
	products  ProductReader
	reviews   ReviewReader
	purchases PurchaseReader
}

func NewService(products ProductReader, reviews ReviewReader, purchases PurchaseReader) Service {
	return &service{products: products, reviews: reviews, purchases: purchases}
}

func (s *service) ListProducts(ctx context.Context) ([]Listing, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.reviews.Summaries(ctx)
	if err != nil {
		log.Error("failed to load rating summaries", zap.Error(err))
		return nil, err
	}

	previews, err := s.reviews.RecentByProducts(ctx, PreviewSize)
	if err != nil {
		log.Error("failed to load review previews", zap.Error(err))
		return nil, err
	}

	purchased := map[uint]bool{}
	reviewed := map[uint]bool{}
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		if purchased, err = s.purchases.PurchasedProductIDs(ctx, userID); err != nil {
			return nil, err
		}
		if reviewed, err = s.reviews.ReviewedProductIDs(ctx, userID); err != nil {
			return nil, err
		}
	}

	out := make([]Listing, 0, len(products))
	for _, p := range products {
		sum, ok := summaries[p.ID]
		if !ok {
			sum = review.Summary{Average: decimal.Zero}
		}
		out = append(out, Listing{
			Product:   p,
			Rating:    sum,
			Preview:   previews[p.ID],
			Purchased: purchased[p.ID],
			Reviewed:  reviewed[p.ID],
		})
	}
	return out, nil
}

func (s *service) TopRated(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = DefaultTopRated
	}

	ranked, err := s.reviews.TopRated(ctx, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to rank products",
			zap.String("layer", "service"),
			zap.String("method", "TopRated"),
			zap.Error(err),
		)
		return nil, err
	}
	if len(ranked) == 0 {
		return []Listing{}, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]Listing, 0, len(ranked))
	for _, rk := range ranked {
		// deleted between the two reads
		p, ok := byID[rk.ProductID]
		if !ok {
			continue
		}
		out = append(out, Listing{Product: p, Rating: rk.Summary})
	}
	return out, nil
}

func (s *service) ProductReviews(ctx context.Context, productID uint) (*ProductPage, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{
		Product: *p,
		Reviews: reviews,
		Average: avg,
	}

	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		purchased, reviewed, err := s.viewerState(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		page.HasReviewed = reviewed
		page.CanReview = purchased && !reviewed
	}

	return page, nil
}

// ReviewEligibility reports the first rule AddReview would reject on.
func (s *service) ReviewEligibility(ctx context.Context, productID uint) (Eligibility, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return "", err
	}

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return EligibilityLoginRequired, nil
	}

	purchased, reviewed, err := s.viewerState(ctx, userID, productID)
	if err != nil {
		return "", err
	}

	switch {
	case !purchased:
		return EligibilityNotPurchased, nil
	case reviewed:
		return EligibilityAlreadyReviewed, nil
	default:
		return EligibilityEligible, nil
	}
}

func (s *service) viewerState(ctx context.Context, userID, productID uint) (purchased, reviewed bool, err error) {
	if purchased, err = s.reviews.HasPurchased(ctx, userID, productID); err != nil {
		return false, false, err
	}
	if reviewed, err = s.reviews.HasReviewed(ctx, userID, productID); err != nil {
		return false, false, err
	}
	return purchased, reviewed, nil
}
