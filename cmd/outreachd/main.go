package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boriloo/pythonScriptV2/internal/api"
	"github.com/boriloo/pythonScriptV2/internal/browser"
	"github.com/boriloo/pythonScriptV2/internal/config"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/outreach"
	"github.com/boriloo/pythonScriptV2/internal/store"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging.Level)
	log.Info("outreachd starting", "addr", cfg.Server.Addr, "db_path", cfg.Database.Path)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Error("db open failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.Migrate(ctx); err != nil {
		log.Error("db migration failed", "err", err)
		os.Exit(1)
	}

	srv := api.New(cfg, st, runPipeline(cfg, log))
	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	log.Info("listening", "addr", cfg.Server.Addr)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "err", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}
}

// runPipeline launches one browser per run and drives the full outreach
// pass against it. The session is released on every path before the run
// reports back.
func runPipeline(cfg *config.Config, log *logging.Logger) api.RunFunc {
	return func(ctx context.Context, rc models.RunConfig) (models.RunResult, error) {
		br, err := browser.New(ctx, cfg)
		if err != nil {
			return models.RunResult{}, err
		}
		defer br.Close()

		page, err := br.NewPage(ctx)
		if err != nil {
			return models.RunResult{}, err
		}
		runner := outreach.NewRunner(page, cfg.LinkedIn.BaseURL, rc, nil, log)
		return runner.Run(ctx)
	}
}
