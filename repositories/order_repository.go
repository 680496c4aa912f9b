package repositories

import (
	"context"
	"estoque-console/models"
	"net/http"
)

type OrderRepository struct {
	client *APIClient
}

func NewOrderRepository(client *APIClient) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.client.do(ctx, "list_orders", http.MethodGet, "/pedidos", nil, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Create submits the line items. The returned order is nil when the API
// confirms without a body.
func (r *OrderRepository) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := r.client.do(ctx, "create_order", http.MethodPost, "/pedidos", nil, req, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}
