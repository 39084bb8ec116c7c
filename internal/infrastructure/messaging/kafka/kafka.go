// Package kafka publica y consume eventos de dominio con segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var (
	_ ports.EventPublisher  = (*Broker)(nil)
	_ ports.EventSubscriber = (*Broker)(nil)
)

// Broker un Writer compartido para todos los tópicos y un Reader por Consume.
type Broker struct {
	brokers []string
	groupID string
	writer  *kafkago.Writer

	mu      sync.Mutex
	readers []*kafkago.Reader
}

func New(brokers []string, groupID string) *Broker {
	return &Broker{
		brokers: brokers,
		groupID: groupID,
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

// Publish usa key como clave de partición: los eventos de un mismo recurso conservan el orden.
func (b *Broker) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: marshal %s: %w", topic, err)
	}
	return b.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

// Consume lee topic con el consumer group configurado. Los errores del handler se registran
// y el offset avanza igual.
func (b *Broker) Consume(ctx context.Context, topic string, handler ports.EventHandler) error {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: b.brokers,
		Topic:   topic,
		GroupID: b.groupID,
	})
	b.mu.Lock()
	b.readers = append(b.readers, reader)
	b.mu.Unlock()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Info().Str("topic", topic).Msg("kafka: consumidor detenido")
				return nil
			}
			log.Error().Err(err).Str("topic", topic).Msg("kafka: error leyendo mensaje")
			continue
		}
		if err := handler(ctx, msg.Value); err != nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("kafka: handler falló")
		}
	}
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	errs := []error{b.writer.Close()}
	for _, r := range b.readers {
		errs = append(errs, r.Close())
	}
	b.readers = nil
	return errors.Join(errs...)
}
