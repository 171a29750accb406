package product

import (
	"strings"

	"myshop-be/internal/validation"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	// Quantity is informational stock; purchases never decrement it.
	Quantity int
}

// MaxPrice is the largest value a NUMERIC(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// Input is the admin form for creating or editing a product.
type Input struct {
	Name        string `json:"name" validate:"required,max=100"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"img_url" validate:"required,max=255"`
	Quantity    *int   `json:"quantity" validate:"required,gte=0"`
}

// Validate checks every attribute and returns the parsed product.
func (in Input) Validate() (Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	errs := validation.Struct(in)

	var price decimal.Decimal
	if in.Price != "" {
		p, err := decimal.NewFromString(in.Price)
		switch {
		case err != nil:
			errs.Add("price", "must be a decimal number")
		case p.IsNegative():
			errs.Add("price", "must not be negative")
		case !p.Equal(p.Round(2)):
			errs.Add("price", "must have at most 2 decimal places")
		case p.GreaterThan(MaxPrice):
			errs.Add("price", "must not exceed "+MaxPrice.StringFixed(2))
		default:
			price = p.Round(2)
		}
	}

	if err := errs.OrNil(); err != nil {
		return Product{}, err
	}

	return Product{
		Name:        in.Name,
		Price:       price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Quantity:    *in.Quantity,
	}, nil
}
