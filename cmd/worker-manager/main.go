// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobezie-workers/internal/common/aws"
	"jobezie-workers/internal/common/camunda"
	"jobezie-workers/internal/common/config"
	"jobezie-workers/internal/common/database"
	"jobezie-workers/internal/common/errors"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/internal/common/observability"
	"jobezie-workers/internal/common/validation"
	"jobezie-workers/internal/scoring/langpack"
	"jobezie-workers/internal/store"
	"jobezie-workers/pkg/registry"

	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 30 * time.Second

var _ camunda.Recorder = (*observability.Observability)(nil)

// storeRetry is shorter than the Zeebe retry: the databases usually come
// up alongside the worker.
var storeRetry = &camunda.RetryConfig{MaxRetries: 15, BaseDelay: 2 * time.Second, MaxDelay: 15 * time.Second}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker-manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	log := logger.NewService(cfg.App.Name, cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting worker manager", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.Observability, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			log.Warn("observability shutdown failed", map[string]interface{}{"error": err})
		}
	}()

	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		return fmt.Errorf("zeebe client failed: %w", err)
	}
	defer zeebe.Close()

	var pg *database.PostgresClient
	err = camunda.Retry(ctx, storeRetry, log, "postgres connection", func(ctx context.Context) error {
		pg, err = database.NewPostgres(ctx, cfg.Database.Postgres)
		return err
	})
	if err != nil {
		return err
	}
	defer pg.Close()

	var rdb *database.RedisClient
	err = camunda.Retry(ctx, storeRetry, log, "redis connection", func(ctx context.Context) error {
		rdb, err = database.NewRedis(ctx, cfg.Database.Redis)
		return err
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = camunda.Retry(ctx, storeRetry, log, "elasticsearch connection", func(ctx context.Context) error {
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.EnsureIndex(ctx, cfg.Database.Elasticsearch.ScoreIndex)
		})
		if err != nil {
			return err
		}
	} else {
		log.Info("elasticsearch not configured, resume score index disabled", nil)
	}

	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return err
	}
	validator, err := validation.NewValidator(reg.InputSchemas())
	if err != nil {
		return fmt.Errorf("compile input schemas: %w", err)
	}
	lang, err := langpack.Load(cfg.Scoring.LanguagePackPath)
	if err != nil {
		return err
	}
	log.Info("language pack loaded", map[string]interface{}{"pack": lang.Name()})

	deps := workerDeps{
		cfg:      cfg,
		registry: reg,
		lang:     lang,
		repo:     store.NewRecruiterRepository(pg.DB),
		cache:    store.NewScoreCache(rdb.Client, time.Duration(cfg.Scoring.CacheTTL)*time.Second),
		job: camunda.JobDeps{
			Validator: validator,
			Errors:    errors.NewErrorHandler(log),
			Recorder:  obs,
			Logger:    log,
		},
	}
	if es != nil {
		deps.index = store.NewScoreIndex(es.Client, cfg.Database.Elasticsearch.ScoreIndex)
	}
	if err := deps.initNotifiers(ctx, log); err != nil {
		return err
	}

	group := camunda.NewWorkerGroup(zeebe.GetClient(), log)
	started := startWorkers(group, deps)
	log.Info("workers started", map[string]interface{}{"count": started, "taskTypes": group.TaskTypes()})

	health := newHealthServer(cfg.App.HealthPort, log, map[string]pinger{
		"zeebe":    zeebe.HealthCheck,
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
	})
	if es != nil {
		health.checks["elasticsearch"] = es.Ping
	}
	go health.serve()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	group.Close(shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health.shutdown(shutdownCtx)

	log.Info("worker manager stopped", nil)
	return nil
}

// initNotifiers builds the SES and SNS clients for the enabled channels.
func (d *workerDeps) initNotifiers(ctx context.Context, log logger.Logger) error {
	n := d.cfg.Notifications
	if n.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, n.AWS.Region, n.Email.FromEmail)
		if err != nil {
			return err
		}
		d.email = ses
	}
	if n.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, n.AWS.Region, n.SMS.SenderID)
		if err != nil {
			return err
		}
		d.sms = sns
	}
	log.Info("notification channels", map[string]interface{}{
		"email": n.Email.Enabled,
		"sms":   n.SMS.Enabled,
	})
	return nil
}
