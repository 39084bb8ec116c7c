// Package notifier convierte eventos de dominio en correos. Lo usa cmd/worker.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

// SiteTitleFunc devuelve el título actual del sitio (setting site_title).
type SiteTitleFunc func(ctx context.Context) string

// Notifier handlers de eventos que envían correo.
type Notifier struct {
	mailer    ports.Mailer
	siteTitle SiteTitleFunc
	now       func() time.Time
}

func New(mailer ports.Mailer, siteTitle SiteTitleFunc) *Notifier {
	return &Notifier{mailer: mailer, siteTitle: siteTitle, now: time.Now}
}

// Handlers tópico -> handler, listo para suscribir.
func (n *Notifier) Handlers() map[string]ports.EventHandler {
	return map[string]ports.EventHandler{
		ports.TopicPasswordResetRequest: n.HandlePasswordReset,
		ports.TopicTicketResponded:      n.HandleTicketResponded,
	}
}

// HandlePasswordReset envía el enlace; los tokens ya vencidos se descartan sin error.
func (n *Notifier) HandlePasswordReset(ctx context.Context, payload []byte) error {
	var ev ports.PasswordResetRequestedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("notifier: evento de reset inválido: %w", err)
	}
	remaining := ev.ExpiresAt.Sub(n.now())
	if remaining <= 0 {
		log.Warn().Str("user_id", ev.UserID).Msg("notifier: token de reset vencido, no se envía")
		return nil
	}
	msg := BuildPasswordResetEmail(ev.Email, PasswordResetData{
		SiteName:  n.siteTitle(ctx),
		Name:      ev.Name,
		ResetURL:  ev.ResetURL,
		ExpiresIn: humanDuration(remaining),
	})
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	log.Info().Str("user_id", ev.UserID).Msg("notifier: correo de reset enviado")
	return nil
}

// HandleTicketResponded avisa al dueño del ticket.
func (n *Notifier) HandleTicketResponded(ctx context.Context, payload []byte) error {
	var ev ports.TicketRespondedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("notifier: evento de ticket inválido: %w", err)
	}
	if ev.UserEmail == "" {
		return nil
	}
	msg := BuildTicketReplyEmail(ev.UserEmail, TicketReplyData{
		SiteName:   n.siteTitle(ctx),
		Name:       ev.UserName,
		Subject:    ev.Subject,
		AuthorName: ev.AuthorName,
		Message:    ev.Message,
	})
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	log.Info().Str("ticket_id", ev.TicketID).Msg("notifier: aviso de respuesta enviado")
	return nil
}
