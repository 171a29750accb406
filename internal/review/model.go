package review

import (
	"strings"
	"time"

	"myshop-be/internal/validation"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uint
	UserID     uint
	ProductID  uint
	Rating     int
	Comment    *string
	CreatedAt  time.Time
	AuthorName string
}

// Input rating bounds mirror MinRating and MaxRating.
type Input struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Validate reports a bad rating as ErrInvalidRating ahead of any other field.
func (in *Input) Validate() error {
	in.Comment = strings.TrimSpace(in.Comment)
	errs := validation.Struct(in)
	if _, bad := errs["rating"]; bad {
		return ErrInvalidRating
	}
	return errs.OrNil()
}

// Summary aggregates the ratings of one product.
type Summary struct {
	Average decimal.Decimal
	Count   int
}

type Ranked struct {
	ProductID uint
	Summary   Summary
}
