// Package rabbitmq publica y consume eventos de dominio en colas durables (una por tópico).
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var (
	_ ports.EventPublisher  = (*Broker)(nil)
	_ ports.EventSubscriber = (*Broker)(nil)
)

// Broker mantiene una conexión; los canales amqp no son seguros entre goroutines,
// así que la publicación se serializa con mu.
type Broker struct {
	url string

	mu       sync.Mutex
	conn     *amqp.Connection
	pubCh    *amqp.Channel
	declared map[string]bool
}

// New conecta con el broker. La conexión o el canal caídos se reabren en el siguiente Publish.
func New(url string) (*Broker, error) {
	b := &Broker{url: url, declared: make(map[string]bool)}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.connectLocked(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Broker) connectLocked() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	b.conn = conn
	if err := b.openChannelLocked(); err != nil {
		_ = conn.Close()
		b.conn = nil
		return err
	}
	return nil
}

// openChannelLocked abre un canal de publicación sobre la conexión actual.
// Un error de protocolo cierra el canal pero no la conexión.
func (b *Broker) openChannelLocked() error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel: %w", err)
	}
	b.pubCh = ch
	b.declared = make(map[string]bool)
	return nil
}

type link int

const (
	linkReady link = iota
	linkNoChannel
	linkNoConn
)

type closable interface{ IsClosed() bool }

// linkOf indica qué hay que reabrir antes de publicar.
func linkOf(conn, ch closable) link {
	if conn == nil || conn.IsClosed() {
		return linkNoConn
	}
	if ch == nil || ch.IsClosed() {
		return linkNoChannel
	}
	return linkReady
}

func (b *Broker) ensureLinkLocked() error {
	var conn, ch closable
	if b.conn != nil {
		conn = b.conn
	}
	if b.pubCh != nil {
		ch = b.pubCh
	}
	switch linkOf(conn, ch) {
	case linkNoConn:
		return b.connectLocked()
	case linkNoChannel:
		log.Warn().Msg("rabbitmq: canal de publicación cerrado, se reabre")
		return b.openChannelLocked()
	}
	return nil
}

func declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

// Publish envía payload como JSON persistente a la cola topic (exchange por defecto).
func (b *Broker) Publish(ctx context.Context, topic, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal %s: %w", topic, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLinkLocked(); err != nil {
		return err
	}
	if !b.declared[topic] {
		if err := declare(b.pubCh, topic); err != nil {
			return fmt.Errorf("rabbitmq: queue declare %s: %w", topic, err)
		}
		b.declared[topic] = true
	}

	return b.pubCh.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    key,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Consume procesa la cola topic hasta que ctx se cancela, reconectando con backoff.
// Un mensaje cuyo handler falla se rechaza sin reencolar.
func (b *Broker) Consume(ctx context.Context, topic string, handler ports.EventHandler) error {
	backoff := time.Second
	for {
		err := b.consumeOnce(ctx, topic, handler)
		if ctx.Err() != nil {
			return nil
		}
		log.Warn().Err(err).Str("topic", topic).Dur("retry_in", backoff).Msg("rabbitmq: consumidor desconectado")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (b *Broker) consumeOnce(ctx context.Context, topic string, handler ports.EventHandler) error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	if err := declare(ch, topic); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, topic, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range msgs {
		if err := handler(ctx, d.Body); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("rabbitmq: handler falló")
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("canal de entregas cerrado")
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn, b.pubCh = nil, nil
	return err
}
