package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coursecred/internal/credential/adapters"
	"coursecred/internal/credential/eligibility"
	"coursecred/internal/credential/handler"
	"coursecred/internal/credential/ledger"
	credmetrics "coursecred/internal/credential/metrics"
	"coursecred/internal/credential/models"
	"coursecred/internal/credential/ports"
	"coursecred/internal/credential/render"
	"coursecred/internal/credential/schedule"
	"coursecred/internal/credential/service"
	"coursecred/internal/credential/storage"
	assetstore "coursecred/internal/credential/store/asset"
	configstore "coursecred/internal/credential/store/configuration"
	credstore "coursecred/internal/credential/store/credential"
	"coursecred/internal/credential/strategy"
	"coursecred/internal/platform/config"
	"coursecred/internal/platform/database"
	"coursecred/internal/platform/health"
	"coursecred/internal/platform/kafka"
	platformredis "coursecred/internal/platform/redis"
	"coursecred/internal/platform/tracer"
	"coursecred/internal/platform/workqueue"
	"coursecred/internal/seeder"
	"coursecred/migrations"
	"coursecred/pkg/platform/circuit"
	adminmw "coursecred/pkg/platform/middleware/admin"
	"coursecred/pkg/platform/middleware/request"
)

const requestTimeout = 90 * time.Second

// stores groups the persistence layer selected by DATABASE_URL.
type stores struct {
	configurations service.ConfigurationStore
	credentials    interface {
		ledger.Store
		service.CredentialReader
	}
	assets interface {
		ports.AssetResolver
		handler.AssetStore
	}
	schedules schedule.Store
}

type application struct {
	router     http.Handler
	schedules  *schedule.Runner
	runWorkers func(ctx context.Context) error
	closers    []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (*application, error) {
	app := &application{}
	checks := health.New(envName())

	pool, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	st := inMemoryStores()
	if pool != nil {
		app.closers = append(app.closers, func() { _ = pool.Close() })
		if err := pool.Migrate(ctx, migrations.FS); err != nil {
			app.close()
			return nil, err
		}
		st = postgresStores(pool)
		checks.RegisterCheck("database", pool.Health)
	}

	platform := adapters.NewPlatformClient(cfg.Platform.BaseURL, cfg.Platform.APIKey,
		adapters.WithRateLimit(cfg.Platform.RateLimit, cfg.Platform.RateBurst),
		adapters.WithBreaker(circuit.New("platform",
			circuit.WithFailureThreshold(cfg.Platform.BreakerThreshold),
			circuit.WithCooldown(cfg.Platform.BreakerCooldown),
			circuit.WithStateChange(func(name string, from, to circuit.State) {
				log.Warn("circuit state changed", "circuit", name, "from", from.String(), "to", to.String())
			}),
		)),
		adapters.WithPlatformLogger(log),
	)

	notifier, err := buildNotifier(cfg.Kafka, checks, app, log)
	if err != nil {
		app.close()
		return nil, err
	}

	backend, err := storage.New(ctx, storage.Config{
		Type:      storage.Type(cfg.Storage.Type),
		MediaRoot: cfg.Storage.MediaRoot,
		MediaURL:  cfg.Storage.MediaURL,
		RootURL:   cfg.Storage.RootURL,
		S3: storage.S3Config{
			Bucket:   cfg.Storage.S3Bucket,
			Region:   cfg.Storage.S3Region,
			Endpoint: cfg.Storage.S3Endpoint,
			Prefix:   cfg.Storage.S3Prefix,
		},
		GCS: storage.GCSConfig{Bucket: cfg.Storage.GCSBucket, Prefix: cfg.Storage.GCSPrefix},
	})
	if err != nil {
		app.close()
		return nil, err
	}

	registry, err := buildRegistry(cfg, platform, st.assets, storage.NewPublisher(backend, cfg.Storage.CustomDomain), log)
	if err != nil {
		app.close()
		return nil, err
	}

	credentialMetrics := credmetrics.New()
	queueMetrics := workqueue.NewMetrics(prometheus.DefaultRegisterer)
	credentialLedger := ledger.New(st.credentials,
		ledger.WithNotifier(notifier),
		ledger.WithPlatformName(cfg.PlatformName),
		ledger.WithStrictUpsert(cfg.LedgerStrict),
		ledger.WithMetrics(credentialMetrics),
		ledger.WithLogger(log),
	)

	mux := workqueue.NewMux()
	submitter, err := buildQueue(ctx, cfg, mux, queueMetrics, checks, app, log)
	if err != nil {
		app.close()
		return nil, err
	}

	svc, err := service.New(st.configurations, st.credentials, credentialLedger, registry, platform, platform,
		service.WithSubmitter(submitter),
		service.WithSchedules(schedule.NewProvisioner(st.schedules)),
		service.WithLearningPaths(platform),
		service.WithTracer(tracer.NewOTel()),
		service.WithMetrics(credentialMetrics),
		service.WithLogger(log),
	)
	if err != nil {
		app.close()
		return nil, err
	}
	svc.RegisterTasks(mux)

	app.schedules = schedule.NewRunner(st.schedules, submitter,
		schedule.WithTick(cfg.ScheduleTick),
		schedule.WithLogger(log),
	)

	if cfg.SeedFile != "" {
		if err := seeder.New(svc, st.assets, log).SeedFile(ctx, cfg.SeedFile); err != nil {
			app.close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app.router = buildRouter(cfg, handler.New(svc, st.assets, log), checks, log)
	return app, nil
}

func inMemoryStores() stores {
	return stores{
		configurations: configstore.NewInMemoryStore(),
		credentials:    credstore.NewInMemoryStore(),
		assets:         assetstore.NewInMemoryStore(),
		schedules:      schedule.NewInMemoryStore(),
	}
}

func postgresStores(pool *database.Pool) stores {
	db := pool.DB()
	return stores{
		configurations: configstore.NewPostgres(db),
		credentials:    credstore.NewPostgres(db),
		assets:         assetstore.NewPostgres(db),
		schedules:      schedule.NewPostgres(db),
	}
}

// buildRegistry registers the built-in strategies. Options checks reuse the
// decoders the strategies run with.
func buildRegistry(cfg config.Server, platform *adapters.PlatformClient, assets ports.AssetResolver, publisher render.Publisher, log *slog.Logger) (*strategy.Registry, error) {
	loc, err := time.LoadLocation(cfg.Render.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", cfg.Render.TimeZone, err)
	}

	grades := eligibility.NewGradeStrategy(platform, platform, platform, log)
	completions := eligibility.NewCompletionStrategy(platform, platform, log)
	renderer := render.New(assets, platform, publisher,
		render.WithLearningPaths(platform),
		render.WithDateFormatter(render.NewDateFormatter(cfg.Render.DateFormat, cfg.Render.DateLocale, loc)),
		render.WithLogger(log),
	)

	registry := strategy.NewRegistry()
	registry.RegisterRetrieval(strategy.RetrieveSubsectionGrades, grades.Retrieve, func(opts models.Options) error {
		_, err := models.DecodeGradeCriteria(opts)
		return err
	})
	registry.RegisterRetrieval(strategy.RetrieveCourseCompletions, completions.Retrieve, func(opts models.Options) error {
		_, err := models.DecodeCompletionCriteria(opts)
		return err
	})
	registry.RegisterGeneration(strategy.GeneratePDFCredential, renderer.Generate, render.CheckOptions)
	return registry, nil
}

func buildNotifier(cfg config.KafkaConfig, checks *health.Handler, app *application, log *slog.Logger) (ports.Notifier, error) {
	if cfg.Brokers == "" {
		return adapters.NewLogNotifier(log), nil
	}
	producer, err := kafka.New(kafka.DefaultConfig(cfg.Brokers), log)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { producer.Close(5 * time.Second) })
	checks.RegisterCheck("kafka", producer.Health)
	return adapters.NewKafkaNotifier(producer, cfg.NotifyTopic, log), nil
}

// buildQueue selects the Redis list queue when REDIS_URL is set and the
// in-process pool otherwise. Either way tasks are dispatched through mux.
func buildQueue(ctx context.Context, cfg config.Server, mux *workqueue.Mux, m *workqueue.Metrics, checks *health.Handler, app *application, log *slog.Logger) (workqueue.Submitter, error) {
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		pool := workqueue.NewPool(mux.Dispatch,
			workqueue.WithWorkers(cfg.Workers),
			workqueue.WithPoolMetrics(m),
			workqueue.WithPoolLogger(log),
		)
		app.runWorkers = func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				pool.Close()
			}()
			return pool.Run(ctx)
		}
		return pool, nil
	}

	app.closers = append(app.closers, func() { _ = client.Close() })
	checks.RegisterCheck("redis", client.Health)
	if err := prometheus.Register(client.Collector()); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
	}
	queue := workqueue.NewRedisQueue(client,
		workqueue.WithQueueKey(cfg.Redis.QueueKey),
		workqueue.WithConsumers(cfg.Redis.Consumers),
		workqueue.WithRedisMetrics(m),
		workqueue.WithRedisLogger(log),
	)
	app.runWorkers = func(ctx context.Context) error {
		return queue.Run(ctx, mux.Dispatch)
	}
	return queue, nil
}

func buildRouter(cfg config.Server, h *handler.Handler, checks *health.Handler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(log))
	r.Use(request.RequestID)
	r.Use(request.Logger(log))
	r.Use(request.NewMetrics(nil).Middleware)

	checks.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(request.Timeout(requestTimeout))
		h.Register(api)
		api.Group(func(admin chi.Router) {
			admin.Use(adminmw.RequireAdminToken(cfg.AdminToken, log))
			h.RegisterAdmin(admin)
		})
	})

	if storage.Type(cfg.Storage.Type) == storage.TypeFS || cfg.Storage.Type == "" {
		mountMedia(r, cfg.Storage.MediaURL, cfg.Storage.MediaRoot)
	}
	return r
}

// mountMedia serves filesystem artifacts when MEDIA_URL is a local path.
func mountMedia(r chi.Router, mediaURL, root string) {
	if !strings.HasPrefix(mediaURL, "/") {
		return
	}
	prefix := "/" + strings.Trim(mediaURL, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(root))))
}

func envName() string {
	if env := strings.TrimSpace(os.Getenv("ENVIRONMENT")); env != "" {
		return env
	}
	return "development"
}
