package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridgechef/internal/api"
	"fridgechef/internal/auth"
	"fridgechef/internal/config"
	"fridgechef/internal/state"
	"fridgechef/internal/web"
)

func runServer(cfg *config.Config) error {
	store := state.NewFileStore(cfg.Storage.DataDir)
	client := api.NewClient(cfg.API.BaseURL, store)
	session := auth.NewSession(client)

	// Probe the stored token up front so the first page render already knows
	// who the visitor is. Failures just mean anonymous.
	startup, cancelStartup := context.WithTimeout(context.Background(), 5*time.Second)
	session.CheckAuth(startup)
	cancelStartup()

	mux := http.NewServeMux()

	handler := web.NewHandler(client, session, store)
	handler.Register(mux)

	ro := &readyOnce{}
	ro.Add(client)
	mux.Handle("/ready", ro)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: WithMiddleware(mux),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Serving FridgeChef", "address", cfg.Server.Addr, "api", cfg.API.BaseURL)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server)
	}
}

func gracefulShutdown(svr *http.Server) error {
	// Give outstanding requests 25 seconds to complete (kubernetes has 30 second grace period)
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	return nil
}
