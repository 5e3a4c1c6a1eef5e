package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/setlist/auth"
	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/db"
	"github.com/danielhkuo/setlist/logging"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/notify"
	"github.com/danielhkuo/setlist/router"
	"github.com/danielhkuo/setlist/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		slog.Error("Error configuring logging", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dialect := db.Dialect(cfg.DatabaseType)
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Admin notifications
	renderer, err := notify.NewRenderer(cfg.Mail.SubjectPrefix)
	if err != nil {
		slog.Error("mail templates failed", "error", err)
		os.Exit(1)
	}
	dispatcher := notify.NewDispatcher(notify.NewSender(cfg.Mail), renderer, notify.Options{})

	// Create router
	s := store.New(dbConn, dialect, auth.NewID)
	mux := router.NewRouter(s, dispatcher, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		<-stopped
		slog.Info("Server closed")
	}

	// Drain queued notifications before the process exits
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dispatcher.Close(ctx); err != nil {
		slog.Warn("notification queue not drained", "error", err)
	}
}
