package entity

import "time"

// TicketStatus estado de un ticket de soporte.
type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketPending  TicketStatus = "pending"
	TicketResolved TicketStatus = "resolved"
	TicketClosed   TicketStatus = "closed"
)

// closed es terminal; resolved puede reabrirse.
var ticketTransitions = TransitionTable[TicketStatus]{
	TicketOpen:     {TicketPending, TicketResolved, TicketClosed},
	TicketPending:  {TicketOpen, TicketResolved, TicketClosed},
	TicketResolved: {TicketOpen, TicketClosed},
	TicketClosed:   nil,
}

// TicketStatuses valores admitidos de TicketStatus.
var TicketStatuses = ticketTransitions.States()

// CanTransitionTo indica si el ticket puede pasar de s a next.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	return ticketTransitions.Allows(s, next)
}

// Categorías de ticket.
var TicketCategories = []string{"account", "order", "other", "payment", "product"}

// Ticket solicitud de soporte con su hilo de respuestas en orden cronológico.
type Ticket struct {
	ID        string
	UserID    string
	UserName  string // solo lectura
	Subject   string
	Category  string
	Status    TicketStatus
	Responses []TicketResponse
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TicketResponse mensaje dentro del hilo de un ticket.
type TicketResponse struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string // solo lectura
	Message    string
	CreatedAt  time.Time
}
