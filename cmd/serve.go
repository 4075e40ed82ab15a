package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/cache"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/handlers"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/reconcile"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/suggest"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/vocab"
)

func newServeCmd() *cobra.Command {
	var (
		port      string
		vocabPath string
		timeout   time.Duration
		cacheTTL  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the reconciliation endpoint",
		Long: `Starts the reconciliation HTTP endpoint on the specified port.

Point OpenRefine at http://localhost:<port>/ to add it as a standard
reconciliation service. The upstream host defaults to https://id.loc.gov
and can be overridden with the LC_BASE_URL environment variable.`,
		Example: `  # Start server on default port 5000
  lc-reconcile serve

  # Custom port, extra vocabularies, no response cache
  lc-reconcile serve --port 3000 --vocab extra.yaml --cache-ttl 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := vocab.NewRegistry()
			if vocabPath != "" {
				var err error
				registry, err = vocab.NewRegistryWithFile(vocabPath)
				if err != nil {
					return err
				}
				slog.Info("Loaded vocabulary overlay", "path", vocabPath)
			}

			var responses *cache.ResponseCache
			if cacheTTL > 0 {
				responses = cache.New(cacheTTL)
			}

			client := suggest.NewClient(os.Getenv("LC_BASE_URL"), timeout, responses)
			service := reconcile.NewService(registry, client, nil)
			handler := handlers.New(service)

			mux := http.NewServeMux()
			mux.HandleFunc("/", handler.HandleReconcile)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Reconciliation service available", "addr", addr, "upstream", client.BaseURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "5000", "Port to listen on")
	cmd.Flags().StringVar(&vocabPath, "vocab", "", "YAML file with additional vocabulary entries")
	cmd.Flags().DurationVar(&timeout, "timeout", suggest.DefaultTimeout, "Upstream request timeout")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", time.Hour, "Upstream response cache TTL (0 disables caching)")

	return cmd
}
