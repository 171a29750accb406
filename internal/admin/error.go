package admin

import "errors"

var (
	ErrUnauthenticated = errors.New("login required")
	ErrForbidden       = errors.New("access denied: admin only")
	ErrInvalidStatus   = errors.New("status is required")
)
