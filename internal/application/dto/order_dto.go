package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse salida de un pedido. Items y History solo vienen en el detalle.
type OrderResponse struct {
	ID              string                `json:"id"`
	BuyerID         string                `json:"buyer_id"`
	BuyerName       string                `json:"buyer_name"`
	SellerID        string                `json:"seller_id"`
	SellerName      string                `json:"seller_name"`
	Status          string                `json:"status"`
	Total           decimal.Decimal       `json:"total"`
	TotalConsistent *bool                 `json:"total_consistent,omitempty"`
	Items           []OrderItemResponse   `json:"items,omitempty"`
	History         []OrderStatusResponse `json:"history,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderStatusResponse entrada del historial de estados.
type OrderStatusResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}
