package services

import (
	"context"
	"estoque-console/metrics"
	"estoque-console/models"
	"estoque-console/repositories"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const MsgProductSaveFailed = "failed to save product"

type CatalogService struct {
	productRepo *repositories.ProductRepository
	cache       *repositories.ProductCache
	logger      *zap.Logger
	metrics     *metrics.Registry

	mu    sync.Mutex
	state CatalogState
}

func NewCatalogService(deps Deps) *CatalogService {
	return &CatalogService{
		productRepo: deps.Products,
		cache:       deps.Cache,
		logger:      deps.logger(),
		metrics:     deps.Metrics,
	}
}

// List answers the catalog page. A categorical filter is applied by the
// inventory API and wins over term. A search runs locally over the last
// unfiltered list and only fetches when no current list is loaded.
func (s *CatalogService) List(ctx context.Context, filter models.CatalogFilter, term string) (*models.CatalogView, error) {
	return s.list(ctx, filter, term, false)
}

// Reload is List with a fresh fetch from the inventory API.
func (s *CatalogService) Reload(ctx context.Context, filter models.CatalogFilter, term string) (*models.CatalogView, error) {
	return s.list(ctx, filter, term, true)
}

func (s *CatalogService) list(ctx context.Context, filter models.CatalogFilter, term string, reload bool) (*models.CatalogView, error) {
	term = strings.TrimSpace(term)

	s.mu.Lock()
	current := s.state
	if reload {
		current, _ = ReduceCatalog(current, CatalogInvalidated{})
	}
	var state CatalogState
	if filter != models.FilterNone {
		state, _ = ReduceCatalog(current, SelectFilter{Filter: filter})
	} else {
		state, _ = ReduceCatalog(current, ChangeSearch{Term: term})
	}
	s.state = state
	s.mu.Unlock()

	if !state.Loading {
		view := state.View()
		return &view, nil
	}

	products, err := s.load(ctx, state.Filter, reload)
	if err != nil {
		failure := classify(err, MsgBackendUnavailable)
		s.commit(CatalogLoadFailed{Generation: state.Generation, Message: failure.Message})
		return nil, failure
	}

	loaded, _ := ReduceCatalog(state, CatalogLoaded{Generation: state.Generation, Products: products})
	s.commit(CatalogLoaded{Generation: state.Generation, Products: products})

	view := loaded.View()
	return &view, nil
}

func (s *CatalogService) load(ctx context.Context, filter models.CatalogFilter, skipCache bool) ([]models.Product, error) {
	if !skipCache {
		if cached, ok := s.cache.Get(ctx, filter); ok {
			return cached, nil
		}
	}
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Warn("loading products failed", zap.String("filter", string(filter)), zap.Error(err))
		return nil, err
	}
	s.cache.Set(ctx, filter, products)
	return products, nil
}

// commit applies a load outcome to the shared page state; outcomes of
// superseded queries are dropped.
func (s *CatalogService) commit(action CatalogAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := ReduceCatalog(s.state, action)
	if err != nil {
		s.logger.Debug("discarding superseded catalog load")
		return
	}
	s.state = next
}

func (s *CatalogService) State() CatalogState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CatalogService) Categories() []models.CategoryOption {
	return models.Categories()
}

func (s *CatalogService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, classify(err, "")
	}

	key := "create:" + strings.ToLower(req.Name)
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.finish(key)

	product, err := s.productRepo.Create(ctx, req)
	if err != nil {
		s.logger.Warn("creating product failed", zap.String("name", req.Name), zap.Error(err))
		return nil, classify(err, MsgProductSaveFailed)
	}
	s.Invalidate(ctx)
	s.logger.Info("product created", zap.String("name", req.Name))
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id int, req models.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, classify(err, "")
	}

	key := productKey(id)
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.finish(key)

	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		s.logger.Warn("updating product failed", zap.Int("product_id", id), zap.Error(err))
		return nil, classify(err, MsgProductSaveFailed)
	}
	s.Invalidate(ctx)
	s.logger.Info("product updated", zap.Int("product_id", id))
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	key := productKey(id)
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.finish(key)

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Warn("deleting product failed", zap.Int("product_id", id), zap.Error(err))
		return classify(err, "failed to delete product")
	}
	s.Invalidate(ctx)
	s.logger.Info("product deleted", zap.Int("product_id", id))
	return nil
}

// Invalidate drops cached lists and marks the loaded list out of date, so the
// next query fetches.
func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)

	s.mu.Lock()
	s.state, _ = ReduceCatalog(s.state, CatalogInvalidated{})
	s.mu.Unlock()
}

func (s *CatalogService) begin(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := ReduceCatalog(s.state, MutationStarted{Key: key})
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *CatalogService) finish(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, _ = ReduceCatalog(s.state, MutationFinished{Key: key})
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}
