package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/trendbook/search-backend/internal/cfg"
	v1Http "github.com/trendbook/search-backend/internal/delivery/v1/http"
	"github.com/trendbook/search-backend/internal/infrastructure/currency"
	"github.com/trendbook/search-backend/internal/infrastructure/kafka"
	"github.com/trendbook/search-backend/internal/repository/memory"
	s3Repo "github.com/trendbook/search-backend/internal/repository/minio"
	"github.com/trendbook/search-backend/internal/repository/pgdb"
	qdrantRepo "github.com/trendbook/search-backend/internal/repository/qdrant"
	"github.com/trendbook/search-backend/internal/repository/redis"
	"github.com/trendbook/search-backend/internal/usecase"
	"github.com/trendbook/search-backend/pkg/clients"
	"github.com/trendbook/search-backend/pkg/closer"
	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
	"github.com/trendbook/search-backend/pkg/postgres"
)

// App собирает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv     *v1Http.Server
	ratesCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	detectionRepo := pgdb.NewDetectionRepo(db.Pool)
	catalogRepo := pgdb.NewCatalogRepo(db.Pool)
	retailerRepo := pgdb.NewRetailerRepo(db.Pool)
	ratesRepo := pgdb.NewRatesRepo(db.Pool)
	likeRepo := pgdb.NewLikeRepo(db.Pool)
	searchRepo := pgdb.NewSearchRepo(db.Pool)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.closer.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureCollection(qdrantCtx, qdrantClient)
	qdrantCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	candidateRepo := qdrantRepo.NewCandidateRepo(qdrantClient.Client, cfg.Qdrant, cfg.Search.TopK)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	resultCache := redis.NewResultCacheRepo(redisClient, cfg.Redis, log)
	rankedCache := memory.NewVectorCache(cfg.Search.VectorCacheSize, cfg.Search.VectorCacheTTL)

	ratesCtx, ratesCancel := context.WithCancel(context.Background())
	app.ratesCancel = ratesCancel

	currencySvc := currency.NewService(ratesRepo, cfg.Currency, log)
	if err = currencySvc.Run(ratesCtx); err != nil {
		ratesCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err = producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	app.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	aggregator := usecase.NewProductAggregator(currencySvc, imageRepo, log)

	searchUC := usecase.NewSearchUC(
		detectionRepo,
		candidateRepo,
		catalogRepo,
		aggregator,
		resultCache,
		rankedCache,
		producer,
		log,
		cfg.Search,
	)

	manageUC := usecase.NewManageUC(
		searchRepo,
		likeRepo,
		retailerRepo,
		catalogRepo,
		db.Pool,
		imageRepo,
		aggregator,
		log,
		cfg.Search,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(searchUC, manageUC, cfg.Http.LegalDocsDir)

	app.httpSrv = v1Http.NewServer(r, cfg.Http)

	return app, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала завершения или
// фатальной ошибки сервера, после чего закрывает ресурсы в порядке LIFO.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	a.ratesCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource close error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
