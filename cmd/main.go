package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/EduSphere/internal/config"
	"github.com/arzan03/EduSphere/internal/db"
	"github.com/arzan03/EduSphere/internal/handlers"
	"github.com/arzan03/EduSphere/internal/observability"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/arzan03/EduSphere/internal/storage"
	"github.com/arzan03/EduSphere/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	base, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	docs := store.Instrument(base, prom)
	if err := docs.EnsureIndexes(ctx, services.UserIndexes); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	var (
		signer services.FileSigner
		bucket services.BucketChecker
	)
	if cfg.StorageEnabled() {
		files, err := storage.NewMinio(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.MinioBucket,
		})
		if err != nil {
			return err
		}
		signer, bucket = files, files
	} else {
		log.Info("object storage not configured, product downloads limited to absolute file urls")
	}

	auth := services.NewAuthService(docs, services.AuthConfig{
		Secret:     cfg.TokenSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})
	courses := services.NewCourseService(docs, auth)
	products := services.NewProductService(docs, auth)

	app := handlers.NewApp(handlers.Deps{
		Log:         log,
		Prom:        prom,
		Gatherer:    reg,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        auth,
		Courses:     courses,
		Products:    products,
		Contact:     services.NewContactService(docs),
		Downloads:   services.NewDownloadService(products, signer, cfg.DownloadTTL),
		Status:      services.NewStatusService(docs, bucket, cfg.MongoURISet),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		errCh <- app.Listen(fmt.Sprintf(":%d", cfg.Port))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-stop:
	}

	log.Info("server shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("shutdown complete")
	return nil
}

// openStore returns the configured document store and a func that releases it.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		slog.Warn("using in-memory document store, data is lost on exit")
		return store.NewMemory(cfg.DatabaseName), func() {}, nil
	case "mongo", "":
		database, err := db.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Disconnect(ctx, database); err != nil {
				slog.Error("error closing mongodb connection", "err", err)
			}
		}
		return store.NewMongo(database), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
