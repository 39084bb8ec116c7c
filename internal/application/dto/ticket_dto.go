package dto

import "time"

// CreateTicketRequest alta de ticket por un usuario.
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,max=200"`
	Category string `json:"category" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// TicketReplyRequest respuesta en el hilo de un ticket.
type TicketReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

// TicketResponse salida de un ticket. Responses solo viene en el detalle.
type TicketResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	UserName  string                  `json:"user_name"`
	Subject   string                  `json:"subject"`
	Category  string                  `json:"category"`
	Status    string                  `json:"status"`
	Responses []TicketMessageResponse `json:"responses,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// TicketMessageResponse mensaje del hilo.
type TicketMessageResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
