package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

// publish envía un evento sin bloquear el flujo principal: los fallos solo se registran.
func publish(ctx context.Context, events ports.EventPublisher, topic, key string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, topic, key, payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Str("key", key).Msg("publicar evento")
	}
}
