package cart

import (
	"context"
	"errors"

	"myshop-be/internal/logger"
	"myshop-be/internal/product"
	"myshop-be/internal/utils"

	"go.uber.org/zap"
)

// ProductLookup resolves catalog entries for add-time snapshots.
type ProductLookup interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	Add(ctx context.Context, c *Cart, productID string, delta int) (*Line, error)
	RemoveOne(ctx context.Context, c *Cart, productID string) error
	Delete(ctx context.Context, c *Cart, productID string) error
	SetQuantity(ctx context.Context, c *Cart, productID string, qty int) error
}

type service struct {
	products ProductLookup
}

func NewService(products ProductLookup) Service {
	return &service{products: products}
}

// Add snapshots name and current price on first insert and increments
// the quantity afterwards.
func (s *service) Add(ctx context.Context, c *Cart, productID string, delta int) (*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("product_id", productID),
	)

	if delta < 1 || delta > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	id, err := utils.ToUint(productID)
	if err != nil || id == 0 {
		return nil, ErrProductNotFound
	}

	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, product.ErrProductNotFound) {
		log.Info("product not found")
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to resolve product", zap.Error(err))
		return nil, err
	}

	key := productKey(id)
	if !c.CanAdd(key, delta) {
		log.Info("cart quantity limit reached", zap.Int("quantity", c.Quantity(key)), zap.Int("delta", delta))
		return nil, ErrInvalidQuantity
	}
	c.Put(key, p.Name, p.Price, delta)

	log.Debug("cart item added", zap.Int("quantity", c.Quantity(key)))

	line, _ := c.Line(key)
	return &line, nil
}

func (s *service) RemoveOne(ctx context.Context, c *Cart, productID string) error {
	if !c.RemoveOne(normalizeKey(productID)) {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, c *Cart, productID string) error {
	if !c.Delete(normalizeKey(productID)) {
		return ErrCartItemNotFound
	}
	return nil
}

// SetQuantity never creates an entry; an unknown product is a silent no-op.
func (s *service) SetQuantity(ctx context.Context, c *Cart, productID string, qty int) error {
	if qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	key := normalizeKey(productID)
	if !c.SetQuantity(key, qty) {
		logger.FromCtx(ctx).Debug("set quantity ignored",
			zap.String("layer", "service"),
			zap.String("product_id", key),
			zap.Int("quantity", qty),
		)
	}
	return nil
}

func productKey(id uint) string {
	return utils.UintToString(id)
}

// "007" and "7" address the same entry.
func normalizeKey(productID string) string {
	if id, err := utils.ToUint(productID); err == nil {
		return productKey(id)
	}
	return productID
}
