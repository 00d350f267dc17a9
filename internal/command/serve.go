package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
	"github.com/JeanGrijp/go-csrf/v2/internal/config"
	"github.com/JeanGrijp/go-csrf/v2/internal/logger"
	"github.com/JeanGrijp/go-csrf/v2/internal/server"
	"github.com/JeanGrijp/go-csrf/v2/internal/shutdown"
)

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the demo application behind CSRF protection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"CSRFD_CONFIG"},
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pc, err := cfg.ProtectorConfig(log, csrf.NewMetrics(reg))
	if err != nil {
		return err
	}
	pc.IdentityResolver = csrf.CookieIdentity(cfg.HTTP.SessionCookie)

	p, err := csrf.New(pc)
	if err != nil {
		return fmt.Errorf("init csrf: %w", err)
	}

	log.Info("starting csrfd",
		"version", Version,
		"commit", Commit,
		"addr", cfg.HTTP.Addr,
		"algorithm", p.Algorithm().String(),
		"ttl", p.TTL().String())

	srv := server.New(cfg.HTTP.Addr, server.NewRouter(p, server.Options{
		SessionCookie: cfg.HTTP.SessionCookie,
		Logger:        log,
		Gatherer:      reg,
	}))

	shutdownHandler := shutdown.NewHandler(cfg.HTTP.ShutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return srv.Shutdown(ctx)
	})

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	go func() {
		log.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}
