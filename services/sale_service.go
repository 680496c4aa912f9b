package services

import (
	"context"
	"errors"
	"estoque-console/metrics"
	"estoque-console/models"
	"estoque-console/repositories"
	"estoque-console/utils"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MsgSaleCompleted = "sale completed successfully"

// SaleListener runs after the inventory API accepted a sale.
type SaleListener func(ctx context.Context, order *models.Order)

type saleDraft struct {
	mu      sync.Mutex
	state   SaleState
	touched time.Time
}

// SaleService keeps open sale drafts in memory. Each draft is a single-writer
// state machine driven through ReduceSale under the draft's mutex.
type SaleService struct {
	productRepo *repositories.ProductRepository
	orderRepo   *repositories.OrderRepository
	ttl         time.Duration
	logger      *zap.Logger
	metrics     *metrics.Registry
	now         func() time.Time

	mu        sync.Mutex
	drafts    map[string]*saleDraft
	listeners []SaleListener
	epoch     atomic.Uint64
}

func NewSaleService(deps Deps, ttl time.Duration) *SaleService {
	return &SaleService{
		productRepo: deps.Products,
		orderRepo:   deps.Orders,
		ttl:         ttl,
		logger:      deps.logger(),
		metrics:     deps.Metrics,
		now:         time.Now,
		drafts:      make(map[string]*saleDraft),
	}
}

func (s *SaleService) OnSuccess(listener SaleListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Open loads a fresh product list, bypassing the cache, and starts an empty draft.
func (s *SaleService) Open(ctx context.Context) (*models.SaleDraftView, error) {
	products, err := s.productRepo.List(ctx, models.FilterNone)
	if err != nil {
		s.logger.Warn("loading products for sale failed", zap.Error(err))
		return nil, classify(err, MsgBackendUnavailable)
	}

	id := uuid.NewString()
	state, _ := ReduceSale(SaleState{DraftID: id}, OpenSale{Epoch: s.epoch.Add(1), Products: products})
	draft := &saleDraft{state: state, touched: s.now()}

	s.mu.Lock()
	s.drafts[id] = draft
	open := len(s.drafts)
	s.mu.Unlock()

	s.metrics.SetOpenDrafts(open)
	s.logger.Debug("sale draft opened", zap.String("draft_id", id), zap.Int("products", len(products)))
	return buildDraftView(state), nil
}

func (s *SaleService) Get(id string) (*models.SaleDraftView, error) {
	draft, err := s.draft(id)
	if err != nil {
		return nil, err
	}
	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.touched = s.now()
	return buildDraftView(draft.state), nil
}

func (s *SaleService) AddLine(id string, productID, quantity int) (*models.SaleDraftView, error) {
	return s.apply(id, AddSaleLine{ProductID: productID, Quantity: quantity})
}

func (s *SaleService) RemoveLine(id string, productID int) (*models.SaleDraftView, error) {
	return s.apply(id, RemoveSaleLine{ProductID: productID})
}

func (s *SaleService) apply(id string, action SaleAction) (*models.SaleDraftView, error) {
	draft, err := s.draft(id)
	if err != nil {
		return nil, err
	}

	draft.mu.Lock()
	defer draft.mu.Unlock()
	draft.touched = s.now()

	next, err := ReduceSale(draft.state, action)
	if err != nil {
		var validation *models.ValidationError
		if errors.As(err, &validation) {
			s.metrics.CartRejected()
		}
		return nil, classify(err, "")
	}
	draft.state = next
	return buildDraftView(next), nil
}

// Close discards the draft. A submission still in flight for it becomes stale.
func (s *SaleService) Close(id string) error {
	s.mu.Lock()
	draft, ok := s.drafts[id]
	delete(s.drafts, id)
	open := len(s.drafts)
	s.mu.Unlock()

	if !ok {
		return ErrDraftNotFound
	}
	s.metrics.SetOpenDrafts(open)

	draft.mu.Lock()
	draft.state, _ = ReduceSale(draft.state, CloseSale{Epoch: s.epoch.Add(1)})
	draft.mu.Unlock()
	return nil
}

// Submit sends the cart as an order. Only one submission per draft may be in
// flight; the network call runs outside the draft lock. On failure the cart is
// kept exactly as it was and the error carries the API's message.
func (s *SaleService) Submit(ctx context.Context, id string) (*models.SaleResult, error) {
	draft, err := s.draft(id)
	if err != nil {
		return nil, err
	}

	draft.mu.Lock()
	draft.touched = s.now()
	next, err := ReduceSale(draft.state, SubmitStarted{})
	if err != nil {
		draft.mu.Unlock()
		return nil, classify(err, "")
	}
	draft.state = next
	epoch := next.Epoch
	req := models.CreateOrderRequest{Items: next.Cart.OrderLines()}
	draft.mu.Unlock()

	order, submitErr := s.orderRepo.Create(ctx, req)

	draft.mu.Lock()
	if submitErr != nil {
		failure := classify(submitErr, MsgSaleFailed)
		if failed, err := ReduceSale(draft.state, SubmitFailed{Epoch: epoch, Message: failure.Message}); err == nil {
			draft.state = failed
		}
		draft.mu.Unlock()

		s.metrics.Checkout("failed")
		s.logger.Warn("sale submission failed",
			zap.String("draft_id", id),
			zap.String("kind", failure.Kind.String()),
			zap.Error(submitErr),
		)
		return nil, failure
	}

	done, err := ReduceSale(draft.state, SubmitSucceeded{Epoch: epoch, Order: order})
	stale := err != nil
	if !stale {
		draft.state = done
	}
	draft.mu.Unlock()

	if stale {
		s.logger.Info("sale completed after draft was closed", zap.String("draft_id", id))
	} else {
		s.discard(id, draft)
	}

	s.metrics.Checkout("succeeded")
	s.notify(ctx, order)

	fields := []zap.Field{zap.String("draft_id", id), zap.Int("lines", len(req.Items))}
	if order != nil {
		fields = append(fields, zap.Int("order_id", order.ID))
	}
	s.logger.Info("sale completed", fields...)

	return &models.SaleResult{Message: MsgSaleCompleted, Order: order}, nil
}

// Sweep drops drafts idle for longer than the TTL. Drafts mid-submission are kept.
func (s *SaleService) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	candidates := make(map[string]*saleDraft, len(s.drafts))
	for id, draft := range s.drafts {
		candidates[id] = draft
	}
	s.mu.Unlock()

	removed := 0
	for id, draft := range candidates {
		draft.mu.Lock()
		expired := draft.touched.Before(cutoff) && !draft.state.Submitting
		draft.mu.Unlock()
		if expired && s.discard(id, draft) {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("expired sale drafts swept", zap.Int("count", removed))
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (s *SaleService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *SaleService) OpenDrafts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *SaleService) draft(id string) (*saleDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// discard removes id only if it still maps to draft.
func (s *SaleService) discard(id string, draft *saleDraft) bool {
	s.mu.Lock()
	current, ok := s.drafts[id]
	if ok && current == draft {
		delete(s.drafts, id)
	}
	open := len(s.drafts)
	s.mu.Unlock()

	s.metrics.SetOpenDrafts(open)
	return ok && current == draft
}

func (s *SaleService) notify(ctx context.Context, order *models.Order) {
	s.mu.Lock()
	listeners := make([]SaleListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(ctx, order)
	}
}

func buildDraftView(state SaleState) *models.SaleDraftView {
	cart := state.cart()

	options := make([]models.ProductOption, 0, len(state.Products))
	stock := make(map[int]int, len(state.Products))
	for _, p := range state.Products {
		stock[p.ID] = p.Quantity
		options = append(options, models.ProductOption{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			PriceText: utils.FormatBRL(p.Price),
			Stock:     p.Quantity,
		})
	}

	lines := make([]models.CartLineView, 0, cart.Len())
	for _, line := range cart.Lines() {
		lines = append(lines, models.CartLineView{
			ProductID:    line.Product.ID,
			Name:         line.Product.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.Product.Price,
			Subtotal:     line.Subtotal,
			SubtotalText: utils.FormatBRL(line.Subtotal),
			Available:    stock[line.Product.ID],
		})
	}

	total := cart.Total()
	return &models.SaleDraftView{
		ID:         state.DraftID,
		Epoch:      state.Epoch,
		Products:   options,
		Lines:      lines,
		Total:      total,
		TotalText:  utils.FormatBRL(total),
		Submitting: state.Submitting,
		CanSubmit:  state.CanSubmit(),
		LastError:  state.LastError,
	}
}
