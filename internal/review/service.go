package review

import (
	"context"
	"time"

	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	AddReview(ctx context.Context, userID, productID uint, in Input) (*Review, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// AddReview checks purchase and the advisory duplicate guard before the
// insert. A concurrent duplicate is still caught by the unique constraint.
func (s *service) AddReview(ctx context.Context, userID, productID uint, in Input) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddReview"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
	)

	purchased, err := s.repo.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		log.Info("review rejected: not purchased")
		return nil, ErrNotPurchased
	}

	reviewed, err := s.repo.HasReviewed(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		log.Info("review rejected: duplicate")
		return nil, ErrDuplicateReview
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	rv := &Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    in.Rating,
		CreatedAt: s.now().UTC(),
	}
	if in.Comment != "" {
		comment := in.Comment
		rv.Comment = &comment
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	log.Info("review created", zap.Uint("review_id", rv.ID), zap.Int("rating", rv.Rating))
	return rv, nil
}
