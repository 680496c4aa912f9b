package services

import (
	"context"
	"estoque-console/models"
	"estoque-console/repositories"
	"estoque-console/utils"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const orderListMaxAge = 10 * time.Second

// OrderService serves the read-only order history. The last list is reused for
// a short while unless a completed sale marked it stale.
type OrderService struct {
	orderRepo *repositories.OrderRepository
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.Mutex
	orders    []models.Order
	fetchedAt time.Time
	stale     bool
	version   uint64
}

func NewOrderService(deps Deps) *OrderService {
	return &OrderService{
		orderRepo: deps.Orders,
		logger:    deps.logger(),
		now:       time.Now,
		stale:     true,
	}
}

// List returns orders newest first.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	if !s.stale && s.now().Sub(s.fetchedAt) < orderListMaxAge {
		orders := append([]models.Order(nil), s.orders...)
		s.mu.Unlock()
		return orders, nil
	}
	version := s.version
	s.mu.Unlock()

	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		s.logger.Warn("loading orders failed", zap.Error(err))
		return nil, classify(err, MsgBackendUnavailable)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ID > orders[j].ID
	})

	s.mu.Lock()
	s.orders = orders
	s.fetchedAt = s.now()
	if s.version == version {
		s.stale = false
	}
	s.mu.Unlock()

	return append([]models.Order(nil), orders...), nil
}

// Refresh forces the next List to refetch and returns the fresh list.
func (s *OrderService) Refresh(ctx context.Context) ([]models.Order, error) {
	s.MarkStale()
	return s.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id int) (*models.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

func (s *OrderService) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.version++
	s.mu.Unlock()
}

func Summarize(orders []models.Order) []models.OrderSummary {
	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, models.OrderSummary{
			ID:               o.ID,
			PlacedAt:         o.PlacedAt,
			TotalItems:       o.TotalItems,
			TotalValue:       o.TotalValue,
			TotalText:        utils.FormatBRL(o.TotalValue),
			DistinctProducts: o.DistinctProducts(),
		})
	}
	return summaries
}
