package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Repository productdomain.Repository
}

// Service exposes read access to the products collection.
type Service struct {
	log  *zap.Logger
	repo productdomain.Repository
}

func NewService(p ServiceParam) productdomain.Service {
	return &Service{
		log:  p.Log.Named("product.service"),
		repo: p.Repository,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*productdomain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, productdomain.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]productdomain.Product, error) {
	return s.repo.List(ctx)
}
