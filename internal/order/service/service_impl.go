package service

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dantecodex/graph-mongo/internal/lineitem"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Repository orderdomain.Repository
}

// Service exposes read access to the orders collection. Returned orders
// always carry decoded line items; a payload that fails to decode propagates
// as a *lineitem.DecodeError rather than degrading to an empty list.
type Service struct {
	log  *zap.Logger
	repo orderdomain.Repository
}

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		log:  p.Log.Named("order.service"),
		repo: p.Repository,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*orderdomain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, orderdomain.ErrInvalidID
	}
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := lineitem.DecodeOrder(order.ID, order.RawProducts)
	if err != nil {
		return nil, err
	}
	order.Products = items
	return order, nil
}

func (s *Service) List(ctx context.Context) ([]orderdomain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := lineitem.DecodeOrder(orders[i].ID, orders[i].RawProducts)
		if err != nil {
			return nil, err
		}
		orders[i].Products = items
	}
	return orders, nil
}
