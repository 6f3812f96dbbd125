package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"amigowallet/internal/platform/config"
	"amigowallet/internal/platform/logger"
	httptransport "amigowallet/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var envFile string
	cmd := &cobra.Command{
		Use:           "amigowallet",
		Short:         "AmigoWallet registration API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadDotEnv(envFile)
			v.AutomaticEnv()
			cfg, err := config.FromViper(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("messages", "", "properties file overlaying the built-in messages")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("messages_file", cmd.Flags().Lookup("messages"))

	return cmd
}

func run(parent context.Context, cfg config.Server) error {
	log := logger.New(cfg.LogLevel)
	log.Info("initializing amigowallet",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"notifier", cfg.Notification.Driver,
	)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close(log)

	srv := httptransport.NewServer(cfg.Addr, httptransport.NewRouter(app.routerDeps(cfg)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	if app.redis != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					app.redis.RecordPoolStats()
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
