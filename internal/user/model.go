package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"myshop-be/internal/validation"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// RequiredProfileFields must all be present in the profile attributes
// before checkout is allowed.
var RequiredProfileFields = []string{"phone", "street", "number", "city", "state", "zip_code", "country"}

// Attributes is the free-form profile map, stored as JSONB.
type Attributes map[string]string

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for profile attributes")
	}
	return json.Unmarshal(raw, a)
}

type User struct {
	ID        uint
	Name      string
	Email     string
	CPF       *string
	RG        *string
	Profile   Attributes
	Password  string
	Role      Role
	CreatedAt time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// MissingProfileFields lists absent attributes in a stable order, followed
// by the national ID fields.
func (u *User) MissingProfileFields() []string {
	var missing []string
	for _, f := range RequiredProfileFields {
		if strings.TrimSpace(u.Profile[f]) == "" {
			missing = append(missing, f)
		}
	}
	if u.CPF == nil || *u.CPF == "" {
		missing = append(missing, "cpf")
	}
	if u.RG == nil || *u.RG == "" {
		missing = append(missing, "rg")
	}
	return missing
}

func (u *User) IsProfileComplete() bool {
	return len(u.MissingProfileFields()) == 0
}

type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=2,max=150"`
	Email           string `json:"email" validate:"required,email,max=150"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (in *RegisterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	return validation.Struct(in).OrNil()
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Email = normalizeEmail(in.Email)
	return validation.Struct(in).OrNil()
}

type ProfileInput struct {
	Phone   string `json:"phone" validate:"required"`
	Street  string `json:"street" validate:"required"`
	Number  string `json:"number" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
	CPF     string `json:"cpf" validate:"omitempty,max=14"`
	RG      string `json:"rg" validate:"omitempty,max=20"`
}

func (in *ProfileInput) Validate() error {
	for _, f := range []*string{&in.Phone, &in.Street, &in.Number, &in.City, &in.State, &in.ZipCode, &in.Country, &in.CPF, &in.RG} {
		*f = strings.TrimSpace(*f)
	}
	return validation.Struct(in).OrNil()
}

func (in ProfileInput) Attributes() Attributes {
	return Attributes{
		"phone":    in.Phone,
		"street":   in.Street,
		"number":   in.Number,
		"city":     in.City,
		"state":    in.State,
		"zip_code": in.ZipCode,
		"country":  in.Country,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
