package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/bootstrap"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/metrics"
)

type statusIngester interface {
	FromMQTT(ctx context.Context, topic string, payload []byte) (*domain.DamStatus, error)
}

// handle applies one message and returns the metrics result label.
func handle(ctx context.Context, ing statusIngester, topic string, payload []byte) string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := ing.FromMQTT(ctx, topic, payload)
	switch {
	case err == nil:
		log.Debug().Str("dam_id", st.DamID).Msg("status applied")
		return "ok"
	case apperr.IsKind(err, apperr.KindValidation), apperr.IsKind(err, apperr.KindNotFound):
		log.Warn().Err(err).Str("topic", topic).Msg("message rejected")
		return "rejected"
	default:
		log.Error().Err(err).Str("topic", topic).Msg("ingest failed")
		return "error"
	}
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	bootstrap.Logging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs, db, err := bootstrap.Services(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer db.Close()

	opts := mqtt.NewClientOptions().
		AddBroker(config.MQTTBroker()).
		SetClientID(config.MQTTClientID()).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		result := handle(ctx, svcs.Ingest, msg.Topic(), msg.Payload())
		metrics.IngestMessages.WithLabelValues(result).Inc()
	}

	topic := config.MQTTTopic()
	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", topic).Msg("ingestor running; Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("ingestor stopped")
}
