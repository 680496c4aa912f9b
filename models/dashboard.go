package models

// DashboardStats are the aggregate counters served by /dashboard/stats.
type DashboardStats struct {
	TotalProducts int    `json:"totalProdutos"`
	LowStock      int    `json:"produtosBaixoEstoque"`
	OutOfStock    int    `json:"produtosSemEstoque"`
	Expired       int    `json:"produtosVencidos"`
	ExpiringSoon  int    `json:"produtosVencendo"`
	BestSeller    string `json:"maisVendido,omitempty"`
}

type Severity string

const (
	SeverityNeutral Severity = "neutral"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// AlertCard is one dashboard metric. Only interactive cards carry a link.
type AlertCard struct {
	Key         string   `json:"chave"`
	Title       string   `json:"titulo"`
	Count       int      `json:"quantidade"`
	Display     string   `json:"valor"`
	Severity    Severity `json:"severidade"`
	Interactive bool     `json:"interativo"`
	Link        string   `json:"link,omitempty"`
}

type Dashboard struct {
	Cards []AlertCard `json:"cards"`
}
