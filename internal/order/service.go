package order

import (
	"context"

	"myshop-be/internal/logger"
	"myshop-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListUserOrders(ctx context.Context) ([]Order, error)
	// GetOrderDetail lets owners read their own orders and admins read any.
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListUserOrders(ctx context.Context) ([]Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	o, err := s.repo.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.UserID != userID && !utils.IsAdmin(ctx) {
		logger.FromCtx(ctx).Warn("order access denied",
			zap.String("layer", "service"),
			zap.Uint("order_id", orderID),
			zap.Uint("user_id", userID),
		)
		return nil, ErrOrderNotFound
	}

	return o, nil
}
