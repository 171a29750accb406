package admin

import (
	"context"
	"sort"
	"strings"

	"myshop-be/internal/logger"
	"myshop-be/internal/order"
	"myshop-be/internal/product"

	"go.uber.org/zap"
)

type OrderStore interface {
	ListAll(ctx context.Context) ([]order.Order, error)
	GetDetail(ctx context.Context, orderID uint) (*order.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status order.Status) error
}

type Service interface {
	ListOrdersGroupedByStatus(ctx context.Context) ([]Bucket, error)
	GetOrder(ctx context.Context, orderID uint) (*order.Order, error)
	// SetOrderStatus accepts any non-blank status from any status.
	SetOrderStatus(ctx context.Context, orderID uint, status string) error

	ListProducts(ctx context.Context) ([]product.Product, error)
	CreateProduct(ctx context.Context, in product.Input) (*product.Product, error)
	UpdateProduct(ctx context.Context, id uint, in product.Input) (*product.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type service struct {
	auth     Authorizer
	orders   OrderStore
	products product.Service
}

func NewService(auth Authorizer, orders OrderStore, products product.Service) Service {
	return &service{auth: auth, orders: orders, products: products}
}

func (s *service) ListOrdersGroupedByStatus(ctx context.Context) ([]Bucket, error) {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return GroupByStatus(orders), nil
}

func (s *service) GetOrder(ctx context.Context, orderID uint) (*order.Order, error) {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.orders.GetDetail(ctx, orderID)
}

func (s *service) SetOrderStatus(ctx context.Context, orderID uint, status string) error {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, orderID, order.Status(status)); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("layer", "service"),
		zap.String("method", "SetOrderStatus"),
		zap.Uint("order_id", orderID),
		zap.String("status", status),
	)
	return nil
}

func (s *service) ListProducts(ctx context.Context) ([]product.Product, error) {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.products.List(ctx)
}

func (s *service) CreateProduct(ctx context.Context, in product.Input) (*product.Product, error) {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, in)
}

func (s *service) UpdateProduct(ctx context.Context, id uint, in product.Input) (*product.Product, error) {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, in)
}

func (s *service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.auth.RequireAdmin(ctx); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
