package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"OrientadorFP_Backend/internal/auth"
	"OrientadorFP_Backend/internal/centros"
	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/fpindex"
	"OrientadorFP_Backend/internal/gva"
	"OrientadorFP_Backend/internal/handler"
	"OrientadorFP_Backend/internal/llm"
	"OrientadorFP_Backend/internal/logger"
	"OrientadorFP_Backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           OrientadorFP API
// @version         1.0
// @description     Orientación de Formación Profesional (Comunitat Valenciana) con Amazon Bedrock Nova y datos abiertos de la GVA.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main(): failed to load config: %v", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	gin.SetMode(cfg.Server.GinMode)

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		zapLog.Fatal("failed to open storage", zap.String("path", cfg.Storage.DBPath), zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bedrockAPI, err := llm.NewBedrockAPI(ctx, cfg.Bedrock)
	if err != nil {
		zapLog.Fatal("failed to build bedrock client", zap.Error(err))
	}
	if err := cfg.Bedrock.Validate(); err != nil {
		// the server still starts; model endpoints answer 503 until fixed
		zapLog.Warn("bedrock is not configured", zap.Error(err))
	}

	fetcher := gva.NewFetcher(cfg.GVA.DownloadTimeout)
	h := handler.New(handler.Deps{
		Model:     llm.NewClient(bedrockAPI, cfg.Bedrock, zapLog.Named("llm")),
		Bedrock:   cfg.Bedrock,
		FP:        fpindex.New(fetcher, cfg.GVA.FPSources(), cfg.GVA.FPIndexTTL, zapLog.Named("fpindex")),
		Centros:   centros.New(fetcher, cfg.GVA.CentrosCSVURL, cfg.GVA.CentrosIndexTTL, zapLog.Named("centros")),
		Store:     store,
		Issuer:    auth.NewIssuer(cfg.Auth),
		Logger:    zapLog,
		RateLimit: cfg.RateLimit,
	})

	go func() {
		if err := h.Warmup(ctx); err != nil {
			zapLog.Warn("dataset warmup incomplete, will retry on demand", zap.Error(err))
			return
		}
		zapLog.Info("datasets ready")
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler.NewRouter(h, cfg, zapLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("region", cfg.Bedrock.Region),
			zap.String("model_id", cfg.Bedrock.ModelID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
