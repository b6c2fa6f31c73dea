// vocab_server serves read-only lookups over a vocabulary file written by vocab_count.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teatak/vocab/config"
	"github.com/teatak/vocab/dictionary"
	"github.com/teatak/vocab/logging"
	"github.com/teatak/vocab/metrics"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vocab_server: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, addr, vocabFile string
	cmd := &cobra.Command{
		Use:           "vocab_server",
		Short:         "Serve word counts and ranks from a vocabulary file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().WithConfigPath(configPath).Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("vocab") {
				cfg.Server.VocabFile = vocabFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.Server, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&vocabFile, "vocab", "vocab.txt", "Vocabulary file to serve")
	return cmd
}

func serve(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	dict, err := dictionary.Load(cfg.VocabFile)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	logger.Info("loaded vocabulary", zap.String("path", cfg.VocabFile), zap.Int("words", dict.Len()))

	m := metrics.NewServerMetrics()
	m.SetWords(dict.Len())

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(dict, m, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
