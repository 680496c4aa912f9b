package repositories

import (
	"context"
	"estoque-console/models"
	"fmt"
	"net/http"
	"net/url"
)

type ProductRepository struct {
	client *APIClient
}

func NewProductRepository(client *APIClient) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	var query url.Values
	if filter != models.FilterNone {
		query = url.Values{"filtro": []string{string(filter)}}
	}

	products := []models.Product{}
	if err := r.client.do(ctx, "list_products", http.MethodGet, "/produtos", query, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Create returns the stored product, or nil when the API answers without a body.
func (r *ProductRepository) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := r.client.do(ctx, "create_product", http.MethodPost, "/produtos", nil, req, &product); err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	path := fmt.Sprintf("/produtos/%d", id)
	if err := r.client.do(ctx, "update_product", http.MethodPut, path, nil, req, &product); err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	path := fmt.Sprintf("/produtos/%d", id)
	return r.client.do(ctx, "delete_product", http.MethodDelete, path, nil, nil, nil)
}
