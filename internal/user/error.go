package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrCPFTaken           = errors.New("CPF already registered")
	ErrRGTaken            = errors.New("RG already registered")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)

const (
	constraintEmail = "users_email_key"
	constraintCPF   = "users_cpf_key"
	constraintRG    = "users_rg_key"
)
