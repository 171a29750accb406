package review

import (
	"context"
	"database/sql"
	"errors"

	"myshop-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	HasPurchased(ctx context.Context, userID, productID uint) (bool, error)
	HasReviewed(ctx context.Context, userID, productID uint) (bool, error)
	// Create relies on the (user_id, product_id) unique constraint.
	Create(ctx context.Context, r *Review) error
	AverageRating(ctx context.Context, productID uint) (decimal.Decimal, error)
	Summaries(ctx context.Context) (map[uint]Summary, error)
	ListByProduct(ctx context.Context, productID uint) ([]Review, error)
	// RecentByProducts returns at most perProduct newest reviews of every
	// reviewed product.
	RecentByProducts(ctx context.Context, perProduct int) (map[uint][]Review, error)
	// TopRated ranks every product by average rating, unrated ones last.
	TopRated(ctx context.Context, limit int) ([]Ranked, error)
	ReviewedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) HasPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	return r.exists(ctx, "HasPurchased", `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1 AND oi.product_id = $2
		)
	`, userID, productID)
}

func (r *repository) HasReviewed(ctx context.Context, userID, productID uint) (bool, error) {
	return r.exists(ctx, "HasReviewed", `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2
		)
	`, userID, productID)
}

func (r *repository) exists(ctx context.Context, method, query string, userID, productID uint) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&found); err != nil {
		logger.FromCtx(ctx).Error("failed to check review precondition",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Uint("user_id", userID),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return false, err
	}
	return found, nil
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rv.UserID, rv.ProductID, rv.Rating, rv.Comment, rv.CreatedAt).Scan(&rv.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return ErrDuplicateReview
		}
		logger.FromCtx(ctx).Error("failed to insert review",
			zap.String("layer", "repository"),
			zap.Uint("user_id", rv.UserID),
			zap.Uint("product_id", rv.ProductID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) AverageRating(ctx context.Context, productID uint) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)
		FROM reviews
		WHERE product_id = $1
	`, productID).Scan(&avg)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to compute average rating",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return decimal.Zero, err
	}
	return avg, nil
}

func (r *repository) Summaries(ctx context.Context) (map[uint]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, ROUND(AVG(rating)::numeric, 2), COUNT(*)
		FROM reviews
		GROUP BY product_id
	`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query rating summaries",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint]Summary)
	for rows.Next() {
		var id uint
		var s Summary
		if err := rows.Scan(&id, &s.Average, &s.Count); err != nil {
			return nil, err
		}
		out[id] = s
	}
	return out, rows.Err()
}

func (r *repository) ListByProduct(ctx context.Context, productID uint) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.id DESC
	`, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query reviews",
			zap.String("layer", "repository"),
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.AuthorName); err != nil {
			return nil, err
		}
		rv.CreatedAt = rv.CreatedAt.UTC()
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) RecentByProducts(ctx context.Context, perProduct int) (map[uint][]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, rating, comment, created_at, name
		FROM (
			SELECT r.id, r.user_id, r.product_id, r.rating, r.comment, r.created_at, u.name,
				ROW_NUMBER() OVER (PARTITION BY r.product_id ORDER BY r.id DESC) AS rn
			FROM reviews r
			JOIN users u ON u.id = r.user_id
		) ranked
		WHERE rn <= $1
		ORDER BY product_id, id DESC
	`, perProduct)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query recent reviews",
			zap.String("layer", "repository"),
			zap.Int("per_product", perProduct),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint][]Review)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.AuthorName); err != nil {
			return nil, err
		}
		rv.CreatedAt = rv.CreatedAt.UTC()
		out[rv.ProductID] = append(out[rv.ProductID], rv)
	}
	return out, rows.Err()
}

func (r *repository) TopRated(ctx context.Context, limit int) ([]Ranked, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, COALESCE(ROUND(AVG(r.rating)::numeric, 2), 0), COUNT(r.id)
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		GROUP BY p.id
		ORDER BY AVG(r.rating) DESC NULLS LAST, p.id
		LIMIT $1
	`, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query top rated products",
			zap.String("layer", "repository"),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := []Ranked{}
	for rows.Next() {
		var rk Ranked
		if err := rows.Scan(&rk.ProductID, &rk.Summary.Average, &rk.Summary.Count); err != nil {
			return nil, err
		}
		out = append(out, rk)
	}
	return out, rows.Err()
}

func (r *repository) ReviewedProductIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id FROM reviews WHERE user_id = $1`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query reviewed products",
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
