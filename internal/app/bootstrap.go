package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gunvolt24/pos_print/config"
	cachemem "github.com/Gunvolt24/pos_print/internal/cache/memory"
	"github.com/Gunvolt24/pos_print/internal/domain"
	natsevents "github.com/Gunvolt24/pos_print/internal/events/nats"
	"github.com/Gunvolt24/pos_print/internal/kafka"
	"github.com/Gunvolt24/pos_print/internal/ports"
	"github.com/Gunvolt24/pos_print/internal/repo/postgres"
	rest "github.com/Gunvolt24/pos_print/internal/transport/http"
	"github.com/Gunvolt24/pos_print/internal/transport/printer"
	"github.com/Gunvolt24/pos_print/internal/usecase"
	"github.com/Gunvolt24/pos_print/pkg/logger"
	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"github.com/Gunvolt24/pos_print/pkg/telemetry"
	"github.com/Gunvolt24/pos_print/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// closers — освобождение уже созданных ресурсов, в обратном порядке.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Хранилище конфигурации принтеров.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, postgres.PoolOptions{MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)

	configCache := cachemem.NewConfigCache(
		postgres.NewPrinterConfigRepository(pool), logg,
		cachemem.WithTTL(cfg.Cache.TTL),
		cachemem.WithFetchTimeout(cfg.Cache.FetchTimeout),
	)
	// Недоступная конфигурация не мешает старту: печать уйдёт в локальный fallback.
	if err := configCache.WarmUp(ctx); err != nil {
		logg.Warnf(ctx, "warm-up printer config failed: %v", err)
	}

	localSurface, err := newSurface(ctx, cfg.Surface, logg)
	if err != nil {
		return fail(err)
	}

	serviceOpts := []usecase.Option{
		usecase.WithCeiling(cfg.Printing.DispatchCeiling),
		usecase.WithReceiptCopies(cfg.Printing.ReceiptCopies),
		usecase.WithPaper(domain.PaperByName(cfg.Printing.Paper)),
	}
	if cfg.NATS.Enabled {
		nc, nErr := natsevents.Connect(cfg.NATS.URL, cfg.Tracing.ServiceName, logg)
		if nErr != nil {
			logg.Warnf(ctx, "nats unavailable, print events disabled: %v", nErr)
		} else {
			closers = append(closers, func() {
				if derr := nc.Drain(); derr != nil {
					logg.Warnf(ctx, "nats drain: %v", derr)
				}
			})
			serviceOpts = append(serviceOpts, usecase.WithEventPublisher(natsevents.NewPublisher(nc, cfg.NATS.Subject)))
		}
	}

	validator := validate.NewOrderValidator()
	dispatcher := printer.NewDispatcher(logg, printer.WithTimeouts(cfg.Printing.CandidateTimeout, cfg.Printing.AttemptTimeout))
	printService := usecase.NewPrintService(configCache, dispatcher, localSurface, validator, logg, serviceOpts...)
	// локальная печать, поставленная в очередь до остановки, должна завершиться до закрытия пула и логгера
	closers = append(closers, printService.Wait)

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	httpHandler := rest.NewHandler(printService, validator, logg, cfg.HTTP.HandlerTimeout,
		rest.WithDefaultCopies(cfg.Printing.ReceiptCopies))
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" && cfg.Metrics.Addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	var consumer ports.MessageConsumer
	if cfg.Kafka.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			MaxWait:        cfg.Kafka.MaxWait,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		kc := kafka.NewConsumer(&kafkaCfg, printService, logg)
		consumer = kc
		closers = append(closers, func() {
			if err := kc.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
	} else {
		logg.Infof(ctx, "kafka consumer disabled, HTTP is the only print entry point")
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		KafkaConsumer:   consumer,
		PrintWork:       printService,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	return app, cleanup, nil
}
