package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipehub/internal/geocode"
	"recipehub/internal/llm"
	synchub "recipehub/internal/sync"
	"recipehub/pkg/database"
	"recipehub/pkg/logger"
	"recipehub/pkg/utils"
)

func main() {
	envErr := utils.LoadDotEnv()
	logger.Init()
	defer logger.Sync()
	log := logger.L()
	if envErr != nil {
		log.Debug(".env not loaded", zap.Error(envErr))
	}

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	srvCfg := utils.LoadServerConfig()
	hub := synchub.NewHub()

	var ai *llm.RecipeService
	gen, err := llm.New(context.Background(), utils.LoadLLMConfig())
	if err != nil {
		log.Warn("recipe generation disabled", zap.Error(err))
	} else {
		ai = llm.NewRecipeService(gen)
	}

	gcCfg := utils.LoadGeocodeConfig()
	router := newRouter(routerDeps{
		DB:       db,
		DBPath:   cfg.Path,
		Hub:      hub,
		AI:       ai,
		Geocoder: geocode.NewClient(gcCfg.BaseURL, gcCfg.Timeout),
		Origins:  srvCfg.CORSOrigins,
		Log:      log,
	})

	httpSrv := &http.Server{
		Addr:    srvCfg.HTTPAddr,
		Handler: router,
	}

	var tcpSrv *synchub.Server
	if srvCfg.SyncTCPAddr != "" {
		tcpSrv = synchub.NewServer(srvCfg.SyncTCPAddr, hub)
		if err := tcpSrv.Listen(); err != nil {
			log.Fatal("tcp change feed listen failed", zap.String("addr", srvCfg.SyncTCPAddr), zap.Error(err))
		}
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	if tcpSrv != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tcpSrv.Run(); err != nil {
				errCh <- err
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("HTTP API server listening", zap.String("addr", srvCfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.Stringer("signal", sig))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	if tcpSrv != nil {
		if err := tcpSrv.Close(); err != nil {
			log.Error("tcp shutdown error", zap.Error(err))
		}
	}

	wg.Wait()
	log.Info("servers stopped")
}
