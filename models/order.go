package models

import "github.com/shopspring/decimal"

// Order is a backend-committed sale. The console never edits orders.
type Order struct {
	ID         int             `json:"id"`
	PlacedAt   string          `json:"dataPedido"`
	TotalItems int             `json:"quantidadeTotalItens"`
	TotalValue decimal.Decimal `json:"valorTotal"`
	Items      []OrderItem     `json:"vendas"`
}

type OrderItem struct {
	ID          int             `json:"id"`
	ProductID   int             `json:"idProduto"`
	ProductName string          `json:"nomeProduto"`
	Quantity    int             `json:"quantidade"`
	UnitPrice   decimal.Decimal `json:"precoUnitario"`
	LineTotal   decimal.Decimal `json:"precoTotal"`
}

func (o Order) DistinctProducts() int {
	return len(o.Items)
}

type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"itens"`
}

type OrderLineRequest struct {
	ProductID int `json:"produtoId"`
	Quantity  int `json:"quantidade"`
}
