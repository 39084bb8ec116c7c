package dto

import "github.com/jhoicas/Marketplace-api/internal/domain/listing"

// PageResponse listado paginado: {"items": [...], "pagination": {...}}.
type PageResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination listing.Pagination `json:"pagination"`
}

// NewPage construye la respuesta; Items nunca es null en JSON.
func NewPage[T any](items []T, q listing.Query, total int) *PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResponse[T]{Items: items, Pagination: listing.NewPagination(q, total)}
}

// StatusRequest cuerpo de PUT /{resource}/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
