package user

import (
	"context"
	"errors"

	"myshop-be/internal/auth"
	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, in RegisterInput) (string, *User, error)
	Login(ctx context.Context, in LoginInput) (string, *User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*User, error)
}

type service struct {
	repo   Repository
	issuer *auth.Issuer
}

func NewService(repo Repository, issuer *auth.Issuer) Service {
	return &service{repo: repo, issuer: issuer}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	if err := in.Validate(); err != nil {
		return "", nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, in.Name, in.Email, hashed, RoleUser)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", u.Email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, in LoginInput) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	if err := in.Validate(); err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByEmail(ctx, in.Email)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("email not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(in.Password, u.Password) {
		log.Info("password not match", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile replaces the attribute map. CPF and RG are write-once:
// a value for an already set field is ignored.
func (s *service) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", userID),
	)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var cpf, rg *string
	if u.CPF == nil && in.CPF != "" {
		taken, err := s.repo.ExistsCPF(ctx, in.CPF, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCPFTaken
		}
		cpf = &in.CPF
	}
	if u.RG == nil && in.RG != "" {
		taken, err := s.repo.ExistsRG(ctx, in.RG, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrRGTaken
		}
		rg = &in.RG
	}

	attrs := in.Attributes()
	if err := s.repo.UpdateProfile(ctx, userID, attrs, cpf, rg); err != nil {
		return nil, err
	}

	u.Profile = attrs
	if cpf != nil {
		u.CPF = cpf
	}
	if rg != nil {
		u.RG = rg
	}

	log.Info("profile updated", zap.Bool("complete", u.IsProfileComplete()))
	return u, nil
}
