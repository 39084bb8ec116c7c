package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de moderación de un producto.
type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductApproved ProductStatus = "approved"
	ProductRejected ProductStatus = "rejected"
)

var productTransitions = TransitionTable[ProductStatus]{
	ProductPending:  {ProductApproved, ProductRejected},
	ProductApproved: {ProductRejected},
	ProductRejected: {ProductApproved},
}

// ProductStatuses valores admitidos de ProductStatus.
var ProductStatuses = productTransitions.States()

// CanTransitionTo indica si la moderación puede pasar de s a next.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	return productTransitions.Allows(s, next)
}

// Product representa un artículo publicado por un vendedor.
type Product struct {
	ID          string
	SellerID    string
	SellerName  string // solo lectura (JOIN con users)
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
