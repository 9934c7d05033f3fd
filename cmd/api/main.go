package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unireport/viewer/internal/application"
	appai "github.com/unireport/viewer/internal/application/ai"
	"github.com/unireport/viewer/internal/application/session"
	"github.com/unireport/viewer/internal/config"
	"github.com/unireport/viewer/internal/domain/audit"
	aiclient "github.com/unireport/viewer/internal/infra/ai/openai"
	mysqlp "github.com/unireport/viewer/internal/infra/db/mysql"
	postgresp "github.com/unireport/viewer/internal/infra/db/postgres"
	"github.com/unireport/viewer/internal/infra/httpserver"
	minioStore "github.com/unireport/viewer/internal/infra/storage"
	"github.com/unireport/viewer/internal/logger"
	"github.com/unireport/viewer/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatalf("config load error: %v", err)
	}
	logger.Init(cfg.Log.Level)

	ctx := context.Background()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logger.Fatalf("minio init error: %v", err)
	}

	// wrap the store in the TTL cache decorator
	repo := minioStore.NewCachedRepository(store,
		cfg.Cache.ListTTL.Std(),
		cfg.Cache.DocumentTTL.Std(),
	)
	defer repo.Close()

	health := map[string]middleware.HealthChecker{
		"storage": store,
	}
	// the viewer serves sessions without an audit store, so its probe
	// only degrades /health
	optionalHealth := map[string]middleware.HealthChecker{}

	// pick the audit store
	var auditStore audit.Store = audit.NopStore{}
	switch cfg.Audit.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		auditRepo := mysqlp.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			logger.Fatalf("mysql schema error: %v", err)
		}
		auditStore = auditRepo
		optionalHealth["audit"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logger.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		auditRepo := postgresp.NewAuditRepository(db)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			logger.Fatalf("postgres schema error: %v", err)
		}
		auditStore = auditRepo
		optionalHealth["audit"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// AI summaries only when a key is configured
	var aiSvc *appai.Service
	if cfg.AI.APIKey != "" {
		aiSvc = appai.NewService(aiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model))
	}

	// init session manager + service
	manager := session.NewManager(application.SystemClock{},
		cfg.Session.IdleTTL.Std(),
		cfg.Session.MaxSessions,
	)
	defer manager.Close()

	svc := &session.Service{
		Repo:      repo,
		Audit:     auditStore,
		Clock:     application.SystemClock{},
		Sessions:  manager,
		TreeDepth: cfg.Viewer.MaxTreeDepth,
	}

	// init router
	handler := httpserver.NewRouter(svc, aiSvc, auditStore, httpserver.Options{
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		APIKeys:        cfg.HTTP.APIKeys,
		RateCapacity:   cfg.HTTP.RateCapacity,
		RateRefill:     cfg.HTTP.RateRefill,
		Health:         health,
		OptionalHealth: optionalHealth,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}
