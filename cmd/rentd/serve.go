package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orsabag2/rent/mail"
	"github.com/orsabag2/rent/server"
	"github.com/orsabag2/rent/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	store, err := storage.New(cfg.Storage.Dir)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithPublicURL(cfg.Server.PublicURL),
		server.WithMaxUploadBytes(cfg.Server.MaxUploadBytes),
		server.WithStamps(cfg.Share.QRCode, cfg.Share.ReferenceCode),
		server.WithSignatureY(cfg.Signature.DefaultY),
		server.WithMailTimeout(cfg.Mail.Timeout),
	}
	if m := cfg.Mail; m.Enabled() {
		opts = append(opts, server.WithMailer(mail.NewSMTP(m.Host, m.Port, m.User, m.Password)))
	} else {
		logger.Warn("mail relay not configured; signed contracts cannot be emailed")
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(renderer, store, opts...).Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", store.Dir()),
			zap.Int("questions", len(renderer.Questions())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("rentd: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("rentd: shutdown: %w", err)
	}
	return nil
}
