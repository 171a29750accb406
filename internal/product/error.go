package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product is referenced by orders or reviews")

	// -- Constants (External Systems) --
	PgForeignKeyViolation = "23503"
)
