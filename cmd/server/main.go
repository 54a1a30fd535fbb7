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

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := repository.Open(context.Background(), cfg.StoreDriver, cfg.StoreDSN())
	if err != nil {
		logging.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	// Relays are optional; unconfigured ones report notify.ErrNotConfigured.
	emailjs := notify.NewEmailJS(notify.EmailJSConfig{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		Endpoint:   cfg.EmailJSEndpoint,
	})
	notifiers := notify.Multi{emailjs}
	if cfg.TelegramConfigured() {
		telegram, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			slog.Warn("telegram notifier disabled", "error", err)
		} else {
			notifiers = append(notifiers, telegram)
		}
	}
	if !cfg.EmailJSConfigured() {
		slog.Warn("EmailJS credentials missing; submissions are stored without an email")
	}
	if cfg.DashboardPassword == "" {
		slog.Warn("MSG_DASH_PASSWORD not set; dashboard routes are disabled")
	}
	if cfg.UsesDefaultSessionSecret() {
		slog.Warn("SESSION_SECRET is the built-in default; set it before exposing the dashboard")
	}

	contactService := service.NewContactService(store, notifiers)
	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)

	router := handler.NewRouter(handler.RouterDeps{
		Health:  handler.New(store),
		Contact: handler.NewContactHandler(contactService),
		Admin: handler.NewAdminHandler(handler.AdminConfig{
			Password:      cfg.DashboardPassword,
			SessionSecret: sessionSecret,
			CookieSecure:  cfg.CookieSecure,
		}),
		FrontendURL:   cfg.FrontendURL,
		SessionSecret: sessionSecret,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := contactService.Drain(ctx); err != nil {
		slog.Warn("pending notifications abandoned", "error", err)
	}
	slog.Info("server stopped")
}
