package repositories

import (
	"context"
	"estoque-console/models"
	"net/http"
)

type DashboardRepository struct {
	client *APIClient
}

func NewDashboardRepository(client *APIClient) *DashboardRepository {
	return &DashboardRepository{client: client}
}

func (r *DashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := r.client.do(ctx, "dashboard_stats", http.MethodGet, "/dashboard/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
