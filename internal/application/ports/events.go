package ports

import (
	"context"
	"time"
)

// Tópicos de eventos de dominio.
const (
	TopicProductModerated     = "product.moderated"
	TopicOrderStatusChanged   = "order.status_changed"
	TopicTicketStatusChanged  = "ticket.status_changed"
	TopicTicketResponded      = "ticket.responded"
	TopicNotificationCreated  = "notification.created"
	TopicPasswordResetRequest = "password_reset.requested"
)

// Topics todos los tópicos publicados por la API.
var Topics = []string{
	TopicProductModerated, TopicOrderStatusChanged, TopicTicketStatusChanged,
	TopicTicketResponded, TopicNotificationCreated, TopicPasswordResetRequest,
}

// EventPublisher puerto de salida hacia el broker (RabbitMQ, Kafka o solo log).
// La publicación es best-effort: un fallo no revierte la operación que lo originó.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

// EventHandler procesa el cuerpo JSON de un mensaje.
type EventHandler func(ctx context.Context, payload []byte) error

// EventSubscriber consume un tópico hasta que ctx se cancela.
type EventSubscriber interface {
	Consume(ctx context.Context, topic string, handler EventHandler) error
	Close() error
}

// StatusChangedEvent cambio de estado de un recurso administrable.
type StatusChangedEvent struct {
	Resource   string    `json:"resource"`
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TicketRespondedEvent respuesta añadida a un ticket.
type TicketRespondedEvent struct {
	TicketID   string    `json:"ticket_id"`
	Subject    string    `json:"subject"`
	UserEmail  string    `json:"user_email"`
	UserName   string    `json:"user_name"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NotificationCreatedEvent notificación enviada desde administración.
type NotificationCreatedEvent struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	IsImportant    bool      `json:"is_important"`
	TargetAll      bool      `json:"target_all"`
	TargetUserIDs  []string  `json:"target_user_ids,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PasswordResetRequestedEvent lleva el token en claro; solo viaja por el broker, nunca se persiste.
type PasswordResetRequestedEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ResetURL   string    `json:"reset_url"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
