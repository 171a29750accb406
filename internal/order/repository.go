package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"myshop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx writes the order and all its items in one transaction.
	CreateOrderTx(ctx context.Context, userID uint, items []LineItem, createdAt time.Time) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	// ListAll returns every order newest first, without items.
	ListAll(ctx context.Context) ([]Order, error)
	GetDetail(ctx context.Context, orderID uint) (*Order, error)
	PurchasedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(
	ctx context.Context,
	userID uint,
	items []LineItem,
	createdAt time.Time,
) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", userID),
	)

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	o := &Order{
		UserID:    userID,
		Total:     TotalOf(items),
		Status:    StatusProcessing,
		CreatedAt: createdAt.UTC(),
		Items:     make([]OrderItem, 0, len(items)),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return nil, &PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, o.UserID, o.Total, string(o.Status), o.CreatedAt).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, &PersistenceError{Op: "insert order", Err: err}
	}

	// 2. Insert order items
	for _, it := range items {
		item := OrderItem{
			OrderID:     o.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Uint("product_id", it.ProductID),
				zap.Error(err),
			)
			return nil, &PersistenceError{Op: "insert order item", Err: err}
		}
		o.Items = append(o.Items, item)
	}

	// 3. Commit
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return nil, &PersistenceError{Op: "commit", Err: err}
	}

	log.Info("order committed",
		zap.Uint("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)
	return o, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), orderID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update order status",
			zap.String("layer", "repository"),
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`, userID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}

	orders, err := scanOrders(rows, false)
	if err != nil {
		log.Error("failed to scan orders", zap.Error(err))
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		ids = append(ids, int64(o.ID))
		index[o.ID] = i
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(ids))
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}

	items, err := scanItems(itemRows)
	if err != nil {
		log.Error("failed to scan order items", zap.Error(err))
		return nil, err
	}
	for _, it := range items {
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}

	return orders, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query all orders",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}

	return scanOrders(rows, true)
}

func (r *repository) GetDetail(ctx context.Context, orderID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetDetail"),
		zap.Uint("order_id", orderID),
	)

	var o Order
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, orderID).Scan(&o.ID, &o.UserID, &o.Total, &status, &o.CreatedAt, &o.CustomerName, &o.CustomerEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to get order", zap.Error(err))
		return nil, err
	}
	o.Status = Status(status)
	o.CreatedAt = o.CreatedAt.UTC()

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}

	o.Items, err = scanItems(rows)
	if err != nil {
		log.Error("failed to scan order items", zap.Error(err))
		return nil, err
	}

	return &o, nil
}

func (r *repository) PurchasedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT oi.product_id
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = $1
	`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query purchased products",
			zap.String("layer", "repository"),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint]bool)
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func scanOrders(rows *sql.Rows, withCustomer bool) ([]Order, error) {
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		var status string
		dest := []any{&o.ID, &o.UserID, &o.Total, &status, &o.CreatedAt}
		if withCustomer {
			dest = append(dest, &o.CustomerName, &o.CustomerEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		o.CreatedAt = o.CreatedAt.UTC()
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanItems(rows *sql.Rows) ([]OrderItem, error) {
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
