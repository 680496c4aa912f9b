package services

import (
	"context"
	"estoque-console/models"
	"estoque-console/repositories"
	"estoque-console/utils"

	"go.uber.org/zap"
)

type DashboardService struct {
	dashboardRepo *repositories.DashboardRepository
	logger        *zap.Logger
}

func NewDashboardService(deps Deps) *DashboardService {
	return &DashboardService{
		dashboardRepo: deps.Dashboard,
		logger:        deps.logger(),
	}
}

func (s *DashboardService) Cards(ctx context.Context) (*models.Dashboard, error) {
	stats, err := s.dashboardRepo.Stats(ctx)
	if err != nil {
		s.logger.Warn("loading dashboard stats failed", zap.Error(err))
		return nil, classify(err, MsgBackendUnavailable)
	}
	return &models.Dashboard{Cards: BuildAlertCards(*stats)}, nil
}

type alertDef struct {
	filter   models.CatalogFilter
	title    string
	severity models.Severity
	count    func(models.DashboardStats) int
}

var alertDefs = []alertDef{
	{models.FilterExpired, "Produtos Vencidos", models.SeverityDanger, func(s models.DashboardStats) int { return s.Expired }},
	{models.FilterExpiringSoon, "Vencendo em 7 dias", models.SeverityWarning, func(s models.DashboardStats) int { return s.ExpiringSoon }},
	{models.FilterLowStock, "Baixo Estoque", models.SeverityWarning, func(s models.DashboardStats) int { return s.LowStock }},
	{models.FilterOutOfStock, "Sem Estoque", models.SeverityDanger, func(s models.DashboardStats) int { return s.OutOfStock }},
}

// BuildAlertCards turns the counters into cards. An alert card links to the
// filtered catalog only when its count is positive; informational cards never link.
func BuildAlertCards(stats models.DashboardStats) []models.AlertCard {
	cards := []models.AlertCard{{
		Key:      "TOTAL_PRODUTOS",
		Title:    "Total de Produtos",
		Count:    stats.TotalProducts,
		Display:  utils.FormatCount(stats.TotalProducts),
		Severity: models.SeverityNeutral,
	}}

	for _, def := range alertDefs {
		count := def.count(stats)
		card := models.AlertCard{
			Key:      string(def.filter),
			Title:    def.title,
			Count:    count,
			Display:  utils.FormatCount(count),
			Severity: models.SeverityNeutral,
		}
		if count > 0 {
			card.Severity = def.severity
			card.Interactive = true
			card.Link = "/produtos?filtro=" + string(def.filter)
		}
		cards = append(cards, card)
	}

	bestSeller := stats.BestSeller
	if bestSeller == "" {
		bestSeller = "Nenhuma venda"
	}
	cards = append(cards, models.AlertCard{
		Key:      "MAIS_VENDIDO",
		Title:    "Mais Vendido",
		Display:  bestSeller,
		Severity: models.SeverityNeutral,
	})
	return cards
}
