// Package resource describe de forma declarativa cada recurso administrable:
// columnas, campos de búsqueda, filtros y estados. Lo comparten la API y la consola.
package resource

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// Column columna visible en la tabla de administración.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Filter filtro exacto por campo. Values vacío admite cualquier valor.
type Filter struct {
	Field  string   `json:"field"`
	Values []string `json:"values,omitempty"`
}

// Schema configuración de un recurso.
type Schema struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Columns      []Column `json:"columns"`
	SearchFields []string `json:"search_fields"`
	Filters      []Filter `json:"filters"`
	StatusField  string   `json:"status_field,omitempty"`
	Statuses     []string `json:"statuses,omitempty"`
	Creatable    bool     `json:"creatable"`
	Deletable    bool     `json:"deletable"`

	// Transition decide si from -> to es legal. nil significa recurso sin estado.
	Transition func(from, to string) bool `json:"-"`
}

// HasStatus indica si el recurso admite UPDATE_STATUS.
func (s Schema) HasStatus() bool {
	return s.StatusField != "" && s.Transition != nil
}

// FilterFields nombres de los campos filtrables.
func (s Schema) FilterFields() []string {
	out := make([]string, len(s.Filters))
	for i, f := range s.Filters {
		out[i] = f.Field
	}
	return out
}

// ValidateFilters rechaza campos desconocidos y valores fuera del enumerado.
func (s Schema) ValidateFilters(filters map[string]string) error {
	for field, value := range filters {
		idx := slices.IndexFunc(s.Filters, func(f Filter) bool { return f.Field == field })
		if idx < 0 {
			return fmt.Errorf("%w: filtro %q no admitido en %s", domain.ErrInvalidInput, field, s.Name)
		}
		if vals := s.Filters[idx].Values; len(vals) > 0 && !slices.Contains(vals, value) {
			return fmt.Errorf("%w: valor %q no admitido para %s", domain.ErrInvalidInput, value, field)
		}
	}
	return nil
}

// ValidStatus indica si st pertenece al conjunto de estados del recurso.
func (s Schema) ValidStatus(st string) bool {
	return slices.Contains(s.Statuses, st)
}

// CanTransition aplica la tabla de transiciones del recurso.
func (s Schema) CanTransition(from, to string) bool {
	if !s.HasStatus() {
		return false
	}
	return s.Transition(from, to)
}

var (
	boolValues   = []string{"true", "false"}
	ratingValues = func() []string {
		out := make([]string, 0, entity.MaxRating)
		for r := entity.MinRating; r <= entity.MaxRating; r++ {
			out = append(out, strconv.Itoa(r))
		}
		return out
	}()
)

// Users cuentas del marketplace. El "estado" administrable es el rol.
var Users = Schema{
	Name: "users",
	Path: "/users",
	Columns: []Column{
		{"name", "Nombre"}, {"email", "Email"}, {"role", "Rol"}, {"created_at", "Alta"},
	},
	SearchFields: []string{"name", "email"},
	Filters:      []Filter{{Field: "role", Values: entity.Roles}},
	StatusField:  "role",
	Statuses:     entity.Roles,
	Transition:   entity.RoleTransition,
	Deletable:    true,
}

// Products moderación de productos.
var Products = Schema{
	Name: "products",
	Path: "/products",
	Columns: []Column{
		{"name", "Producto"}, {"seller_name", "Vendedor"}, {"category", "Categoría"},
		{"price", "Precio"}, {"stock", "Stock"}, {"status", "Estado"},
	},
	SearchFields: []string{"name", "category"},
	Filters: []Filter{
		{Field: "status", Values: entity.ProductStatuses},
		{Field: "category"},
	},
	StatusField: "status",
	Statuses:    entity.ProductStatuses,
	Transition: func(from, to string) bool {
		return entity.ProductStatus(from).CanTransitionTo(entity.ProductStatus(to))
	},
	Deletable: true,
}

// Orders pedidos. No se eliminan; se cancelan.
var Orders = Schema{
	Name: "orders",
	Path: "/orders",
	Columns: []Column{
		{"id", "Pedido"}, {"buyer_name", "Comprador"}, {"total", "Total"},
		{"status", "Estado"}, {"created_at", "Fecha"},
	},
	SearchFields: []string{"id", "buyer_name"},
	Filters:      []Filter{{Field: "status", Values: entity.OrderStatuses}},
	StatusField:  "status",
	Statuses:     entity.OrderStatuses,
	Transition: func(from, to string) bool {
		return entity.OrderStatus(from).CanTransitionTo(entity.OrderStatus(to))
	},
}

// Reviews reseñas de productos.
var Reviews = Schema{
	Name: "reviews",
	Path: "/reviews",
	Columns: []Column{
		{"product_name", "Producto"}, {"user_name", "Usuario"}, {"rating", "Calificación"},
		{"comment", "Comentario"}, {"created_at", "Fecha"},
	},
	SearchFields: []string{"comment", "product_name"},
	Filters: []Filter{
		{Field: "rating", Values: ratingValues},
		{Field: "product_id"},
	},
	Deletable: true,
}

// Tickets soporte.
var Tickets = Schema{
	Name: "tickets",
	Path: "/tickets",
	Columns: []Column{
		{"subject", "Asunto"}, {"user_name", "Usuario"}, {"category", "Categoría"},
		{"status", "Estado"}, {"created_at", "Fecha"},
	},
	SearchFields: []string{"subject"},
	Filters: []Filter{
		{Field: "status", Values: entity.TicketStatuses},
		{Field: "category", Values: entity.TicketCategories},
	},
	StatusField: "status",
	Statuses:    entity.TicketStatuses,
	Transition: func(from, to string) bool {
		return entity.TicketStatus(from).CanTransitionTo(entity.TicketStatus(to))
	},
	Deletable: true,
}

// Notifications avisos enviados por la administración.
var Notifications = Schema{
	Name: "notifications",
	Path: "/notifications",
	Columns: []Column{
		{"title", "Título"}, {"is_important", "Importante"}, {"is_read", "Leída"},
		{"target_all", "Destino"}, {"created_at", "Fecha"},
	},
	SearchFields: []string{"title", "message"},
	Filters: []Filter{
		{Field: "is_read", Values: boolValues},
		{Field: "is_important", Values: boolValues},
	},
	Creatable: true,
	Deletable: true,
}

// All esquemas en el orden del menú de administración.
func All() []Schema {
	return []Schema{Users, Products, Orders, Reviews, Tickets, Notifications}
}

// Lookup busca un esquema por nombre.
func Lookup(name string) (Schema, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Schema{}, false
}
