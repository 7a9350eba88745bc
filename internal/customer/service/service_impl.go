package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Repository customerdomain.Repository
}

// Service exposes read access to the customers collection.
type Service struct {
	log  *zap.Logger
	repo customerdomain.Repository
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		log:  p.Log.Named("customer.service"),
		repo: p.Repository,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*customerdomain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, customerdomain.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]customerdomain.Customer, error) {
	return s.repo.List(ctx)
}
