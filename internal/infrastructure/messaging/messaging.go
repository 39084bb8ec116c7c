// Package messaging elige el broker de eventos según EVENTS_DRIVER.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/messaging/kafka"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/jhoicas/Marketplace-api/pkg/config"
)

// Broker publica y consume.
type Broker interface {
	ports.EventPublisher
	ports.EventSubscriber
}

// New devuelve el broker configurado. "none" solo registra los eventos en el log.
func New(cfg config.EventsConfig) (Broker, error) {
	switch cfg.Driver {
	case "", "none":
		return LogBroker{}, nil
	case "rabbitmq":
		return rabbitmq.New(cfg.RabbitMQURL)
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("messaging: KAFKA_BROKERS vacío")
		}
		return kafka.New(cfg.KafkaBrokers, cfg.GroupID), nil
	default:
		return nil, fmt.Errorf("messaging: driver %q no soportado", cfg.Driver)
	}
}

// LogBroker escribe cada evento en el log en nivel debug. Consume bloquea hasta ctx.Done.
type LogBroker struct{}

func (LogBroker) Publish(_ context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	log.Debug().Str("topic", topic).Str("key", key).RawJSON("payload", body).Msg("evento")
	return nil
}

func (LogBroker) Consume(ctx context.Context, topic string, _ ports.EventHandler) error {
	log.Warn().Str("topic", topic).Msg("EVENTS_DRIVER=none: no hay mensajes que consumir")
	<-ctx.Done()
	return nil
}

func (LogBroker) Close() error { return nil }
