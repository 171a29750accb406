package review

import "errors"

var (
	ErrNotPurchased    = errors.New("you can only review products you've purchased")
	ErrDuplicateReview = errors.New("you have already reviewed this product")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
