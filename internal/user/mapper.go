package user

import "time"

type Response struct {
	ID              uint              `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Role            string            `json:"role"`
	CPF             *string           `json:"cpf"`
	RG              *string           `json:"rg"`
	Profile         map[string]string `json:"profile"`
	ProfileComplete bool              `json:"profile_complete"`
	MissingFields   []string          `json:"missing_fields"`
	CreatedAt       string            `json:"created_at"`
}

func ToResponse(u *User) Response {
	profile := map[string]string{}
	for k, v := range u.Profile {
		profile[k] = v
	}
	missing := u.MissingProfileFields()
	if missing == nil {
		missing = []string{}
	}
	return Response{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		CPF:             u.CPF,
		RG:              u.RG,
		Profile:         profile,
		ProfileComplete: len(missing) == 0,
		MissingFields:   missing,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
