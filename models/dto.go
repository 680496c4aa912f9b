package models

import "github.com/shopspring/decimal"

type LoginRequest struct {
	User     string `json:"usuario" form:"usuario" binding:"required"`
	Password string `json:"senha" form:"senha" binding:"required"`
}

type AddLineRequest struct {
	ProductID int `json:"produtoId" binding:"required"`
	Quantity  int `json:"quantidade"`
}

// CartLineView is a cart line as shown in the sale dialog.
type CartLineView struct {
	ProductID    int             `json:"produtoId"`
	Name         string          `json:"nome"`
	Quantity     int             `json:"quantidade"`
	UnitPrice    decimal.Decimal `json:"precoUnitario"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	SubtotalText string          `json:"subtotalFormatado"`
	Available    int             `json:"estoqueDisponivel"`
}

type ProductOption struct {
	ID        int             `json:"id"`
	Name      string          `json:"nome"`
	Price     decimal.Decimal `json:"preco"`
	PriceText string          `json:"precoFormatado"`
	Stock     int             `json:"estoque"`
}

// SaleDraftView is the full state of a sale dialog returned to the caller.
type SaleDraftView struct {
	ID         string          `json:"id"`
	Epoch      uint64          `json:"epoca"`
	Products   []ProductOption `json:"produtos"`
	Lines      []CartLineView  `json:"itens"`
	Total      decimal.Decimal `json:"total"`
	TotalText  string          `json:"totalFormatado"`
	Submitting bool            `json:"enviando"`
	CanSubmit  bool            `json:"podeFinalizar"`
	LastError  string          `json:"ultimoErro,omitempty"`
}

type SaleResult struct {
	Message string `json:"mensagem"`
	Order   *Order `json:"pedido,omitempty"`
}

type OrderSummary struct {
	ID               int             `json:"id"`
	PlacedAt         string          `json:"dataPedido"`
	TotalItems       int             `json:"quantidadeTotalItens"`
	TotalValue       decimal.Decimal `json:"valorTotal"`
	TotalText        string          `json:"valorTotalFormatado"`
	DistinctProducts int             `json:"produtosDistintos"`
}
