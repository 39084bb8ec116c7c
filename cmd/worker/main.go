// Command worker consume los eventos de dominio y envía los correos transaccionales.
package main

import (
	"context"
	"errors"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/jhoicas/Marketplace-api/internal/application/notifier"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/bootstrap"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/mail"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/messaging"
	"github.com/jhoicas/Marketplace-api/pkg/config"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "worker"})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repos, err := bootstrap.OpenStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén")
	}
	defer repos.Close()

	eph, err := bootstrap.OpenEphemeral(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	defer eph.Close()

	broker, err := messaging.New(cfg.Events)
	if err != nil {
		log.Fatal().Err(err).Msg("broker de eventos")
	}
	defer broker.Close()

	settings := usecase.NewSettingUseCase(repos.Settings, eph.SettingsCache, cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
	n := notifier.New(mail.NewSMTPMailer(cfg.Mail), func(ctx context.Context) string {
		return settings.Value(ctx, entity.SettingSiteTitle)
	})

	handlers := n.Handlers()
	topics := make([]string, 0, len(handlers))
	for topic := range handlers {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var wg sync.WaitGroup
	for _, topic := range topics {
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			log.Info().Str("topic", topic).Msg("consumidor iniciado")
			if err := broker.Consume(ctx, topic, handlers[topic]); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Str("topic", topic).Msg("consumidor detenido")
				cancel()
			}
		}(topic)
	}

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, esperando consumidores...")
	wg.Wait()
	log.Info().Msg("worker detenido")
}
