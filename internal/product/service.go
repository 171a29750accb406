package product

import (
	"context"

	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id uint, in Input) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (*Product, error) {
	p, err := in.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("layer", "service"),
		zap.Uint("product_id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input) (*Product, error) {
	p, err := in.Validate()
	if err != nil {
		return nil, err
	}
	p.ID = id

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product updated",
		zap.String("layer", "service"),
		zap.Uint("product_id", id),
	)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("product deleted",
		zap.String("layer", "service"),
		zap.Uint("product_id", id),
	)
	return nil
}
