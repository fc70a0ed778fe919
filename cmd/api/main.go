package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"banhchi-platform/internal/audit"
	"banhchi-platform/internal/auth"
	"banhchi-platform/internal/config"
	"banhchi-platform/internal/content"
	"banhchi-platform/internal/event"
	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/guest"
	"banhchi-platform/internal/httpapi"
	"banhchi-platform/internal/live"
	"banhchi-platform/internal/media"
	"banhchi-platform/pkg/dbutil"
	"banhchi-platform/pkg/logger"
	"banhchi-platform/pkg/redisutil"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// PIN throttling: attempts per client per event within the window.
const (
	pinAttemptLimit  = 5
	pinAttemptWindow = time.Minute
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local development convenience; production injects real env.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := dbutil.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), dbutil.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := redisutil.Open(rootCtx, redisutil.Config{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	pinLimiter, err := redisutil.NewAttemptLimiter(rdb, pinAttemptLimit, pinAttemptWindow)
	if err != nil {
		log.Error("pin limiter init failed", "err", err)
		os.Exit(1)
	}

	var uploader media.Uploader
	if cfg.Cloudinary.Enabled() {
		cl, err := media.NewCloudinaryUploader(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.Error("cloudinary init failed", "err", err)
			os.Exit(1)
		}
		uploader = cl
	} else {
		log.Warn("cloudinary not configured, media endpoints disabled")
	}

	// Repositories
	eventRepo := event.NewPostgresRepo(db)
	guestRepo := guest.NewPostgresRepo(db)
	expenseRepo := expense.NewPostgresRepo(db)
	contentRepo := content.NewPostgresRepo(db)
	auditRepo := audit.NewPostgresRepo(db)

	// Live push: the hub loads snapshots straight from storage; the redis
	// bridge fans change notifications across instances.
	hub := live.NewHub(guestRepo.List)
	bridge := live.NewRedisBridge(rdb, hub)
	go bridge.Run(rootCtx)

	// Services
	auditSvc := audit.NewService(auditRepo)
	guestSvc := guest.NewService(guestRepo, auditSvc, bridge)
	expenseSvc := expense.NewService(expenseRepo, auditSvc)
	eventSvc := event.NewService(eventRepo, pinLimiter)
	contentSvc := content.NewService(contentRepo)

	h := httpapi.Handlers{
		Auth:     authManager,
		Events:   eventSvc,
		Guests:   guestSvc,
		Expenses: expenseSvc,
		Content:  contentSvc,
		Audit:    auditSvc,
		Hub:      hub,
		Media:    uploader,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(cors.Default())

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// No WriteTimeout: SSE streams stay open until the client leaves.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
