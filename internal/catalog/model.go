package catalog

import (
	"myshop-be/internal/product"
	"myshop-be/internal/review"

	"github.com/shopspring/decimal"
)

const (
	// PreviewSize is how many of the newest reviews a listing carries.
	PreviewSize     = 5
	DefaultTopRated = 3
)

// Eligibility tells a viewer whether the review form applies to them.
type Eligibility string

const (
	EligibilityLoginRequired   Eligibility = "login_required"
	EligibilityNotPurchased    Eligibility = "not_purchased"
	EligibilityAlreadyReviewed Eligibility = "already_reviewed"
	EligibilityEligible        Eligibility = "eligible"
)

// Listing is one product on the catalog page. Purchased and Reviewed are
// false for anonymous viewers.
type Listing struct {
	Product   product.Product
	Rating    review.Summary
	Preview   []review.Review
	Purchased bool
	Reviewed  bool
}

type ProductPage struct {
	Product     product.Product
	Reviews     []review.Review
	Average     decimal.Decimal
	HasReviewed bool
	CanReview   bool
}
