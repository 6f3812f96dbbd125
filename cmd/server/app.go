package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"amigowallet/internal/platform/config"
	"amigowallet/internal/platform/database"
	"amigowallet/internal/platform/health"
	"amigowallet/internal/platform/kafka/producer"
	"amigowallet/internal/platform/messages"
	"amigowallet/internal/platform/rabbitmq"
	"amigowallet/internal/platform/redis"
	"amigowallet/internal/platform/tracing"
	regHandler "amigowallet/internal/registration/handler"
	regMetrics "amigowallet/internal/registration/metrics"
	"amigowallet/internal/registration/notify"
	"amigowallet/internal/registration/service"
	otpStore "amigowallet/internal/registration/store/otp"
	questionStore "amigowallet/internal/registration/store/question"
	userStore "amigowallet/internal/registration/store/user"
	httptransport "amigowallet/internal/transport/http"
	"amigowallet/migrations"
	request "amigowallet/pkg/platform/middleware/request"
)

// app holds the wired components and the resources that need closing.
type app struct {
	registry *prometheus.Registry
	health   *health.Handler
	handler  *regHandler.Handler
	logger   *slog.Logger

	redis   *redis.Client
	tracer  *tracing.Provider
	closers []func() error
}

func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger) (a *app, err error) {
	a = &app{
		registry: prometheus.NewRegistry(),
		health:   health.New(cfg.Environment),
		logger:   log,
	}
	defer func() {
		if err != nil {
			a.close(log)
		}
	}()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.tracer, err = tracing.NewProvider(cfg.TracingEnabled, "amigowallet", os.Stdout)
	if err != nil {
		return a, fmt.Errorf("init tracing: %w", err)
	}

	users, questions, err := a.buildUserStores(ctx, cfg, log)
	if err != nil {
		return a, err
	}
	otps, err := a.buildOTPStore(ctx, cfg, log)
	if err != nil {
		return a, err
	}
	notifier, err := a.buildNotifier(cfg, log)
	if err != nil {
		return a, err
	}

	resolver, err := messages.New(cfg.MessagesFile)
	if err != nil {
		return a, fmt.Errorf("load messages: %w", err)
	}

	svc, err := service.New(users, questions, otps, notifier,
		service.WithLogger(log),
		service.WithMetrics(regMetrics.New(a.registry)),
		service.WithTracer(a.tracer.Tracer()),
		service.WithOTPTTL(cfg.OTP.TTL),
		service.WithOTPLength(cfg.OTP.Length),
		service.WithMaxOTPAttempts(cfg.OTP.MaxAttempts),
	)
	if err != nil {
		return a, fmt.Errorf("init registration service: %w", err)
	}
	a.handler = regHandler.New(svc, resolver, log)
	return a, nil
}

func (a *app) buildUserStores(ctx context.Context, cfg config.Server, log *slog.Logger) (service.UserStore, service.QuestionStore, error) {
	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if pool == nil {
		log.Info("DATABASE_URL not set, using in-memory user and question stores")
		return userStore.New(), questionStore.NewDefault(), nil
	}
	a.closers = append(a.closers, pool.Close)
	a.health.RegisterCheck("postgres", pool)

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(pool.DB(), migrations.FS); err != nil {
			return nil, nil, err
		}
		log.Info("database migrations applied")
	}
	return userStore.NewPostgres(pool.DB()), questionStore.NewPostgres(pool.DB()), nil
}

func (a *app) buildOTPStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.OTPStore, error) {
	client, err := redis.New(ctx, cfg.Redis, a.registry)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("REDIS_URL not set, using in-memory otp store")
		return otpStore.New(cfg.OTP.TTL, otpStore.DefaultCleanupInterval), nil
	}
	a.redis = client
	a.closers = append(a.closers, client.Close)
	a.health.RegisterCheck("redis", client)
	return otpStore.NewRedis(client.Client, cfg.OTP.TTL), nil
}

func (a *app) buildNotifier(cfg config.Server, log *slog.Logger) (service.Notifier, error) {
	switch cfg.Notification.Driver {
	case config.NotifierKafka:
		p, err := producer.New(producer.DefaultConfig(cfg.Notification.KafkaBrokers), log)
		if err != nil {
			return nil, fmt.Errorf("init kafka producer: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		a.health.RegisterCheck("kafka", p)
		return notify.NewKafkaNotifier(p, cfg.Notification.KafkaTopic), nil
	case config.NotifierAMQP:
		p, err := rabbitmq.NewPublisher(cfg.Notification.AMQPURL, cfg.Notification.AMQPExchange, log)
		if err != nil {
			return nil, fmt.Errorf("init amqp publisher: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		a.health.RegisterCheck("amqp", p)
		return notify.NewAMQPNotifier(p), nil
	default:
		reveal := cfg.Environment == config.EnvironmentDev
		if reveal {
			log.Warn("dev environment: issued OTPs are logged in full")
		}
		return notify.NewLogNotifier(log, notify.WithRevealedOTP(reveal)), nil
	}
}

func (a *app) routerDeps(cfg config.Server) httptransport.Deps {
	return httptransport.Deps{
		Logger:         a.logger,
		Gatherer:       a.registry,
		Metrics:        request.NewMetrics(a.registry),
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		CORSOrigins:    cfg.CORSOrigins,
		Handlers:       []httptransport.Registrar{a.health, a.handler},
	}
}

// close releases resources in reverse order of acquisition.
func (a *app) close(log *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn("close resource", "error", err)
		}
	}
	a.closers = nil
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			log.Warn("flush traces", "error", err)
		}
		a.tracer = nil
	}
}
