package di

import (
	"context"
	"fmt"
	"time"

	"famchat/internal/admin"
	"famchat/internal/chat/gateway"
	"famchat/internal/chat/handler"
	"famchat/internal/chat/hub"
	"famchat/internal/chat/service"
	"famchat/internal/common"
	"famchat/internal/config"
	"famchat/internal/dbmysql"
	"famchat/internal/events"
	"famchat/internal/logger"
	"famchat/internal/presence"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is everything cmd/chat-svc needs to serve.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *gorm.DB
	Index   *hub.Index
	Chat    *service.ChatService
	Gateway *gateway.Gateway
	Handler *handler.ChatHandler
	Tokens  *common.TokenManager
	Events  *events.Dispatcher
	Admin   *admin.Server
}

func ProvideConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
}

// ProvideDispatcher starts the export worker pool with the metrics
// observer, plus Kafka when enabled.
func ProvideDispatcher(cfg *config.Config, log *zap.Logger) (*events.Dispatcher, func(), error) {
	d := events.NewDispatcher(cfg.Events, log)
	d.Subscribe(events.NewMetricsObserver())

	var kafka *events.KafkaObserver
	if cfg.Kafka.Enabled {
		kafka = events.NewKafkaObserver(events.NewKafkaWriter(cfg.Kafka))
		d.Subscribe(kafka)
		log.Info("kafka export enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.Shutdown(ctx); err != nil {
			log.Warn("event dispatcher did not drain", zap.Error(err))
		}
		if kafka != nil {
			if err := kafka.Close(); err != nil {
				log.Warn("kafka writer close failed", zap.Error(err))
			}
		}
	}
	return d, cleanup, nil
}

func ProvideChatOptions(cfg *config.Config) service.Options {
	return service.Options{EnforceMembership: cfg.Gateway.EnforceMembership}
}

// ProvidePresenceStore returns nil when Redis is disabled.
func ProvidePresenceStore(cfg *config.Config, log *zap.Logger) (*presence.Store, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info("presence tracking disabled")
		return nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := presence.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return presence.NewStore(client, cfg.Redis.PresenceTTL), func() { _ = client.Close() }, nil
}

// ProvidePresence and ProvidePresenceReader return a nil interface, not a
// typed nil, when presence is disabled.
func ProvidePresence(store *presence.Store) gateway.Presence {
	if store == nil {
		return nil
	}
	return store
}

func ProvidePresenceReader(store *presence.Store) handler.PresenceReader {
	if store == nil {
		return nil
	}
	return store
}

func ProvideGateway(
	router service.BroadcastRouter,
	reads service.ReadTracker,
	rooms gateway.Membership,
	tokens common.TokenValidator,
	p gateway.Presence,
	cfg *config.Config,
	log *zap.Logger,
) *gateway.Gateway {
	return gateway.NewGateway(router, reads, rooms, tokens, p, cfg.Gateway, log)
}
