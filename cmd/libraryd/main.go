// libraryd serves the library catalog web application.
//
// Configuration comes from the environment (optionally via a .env file):
//
//	LIBSHELF_ADDR  listen address (default :5000)
//	LIBSHELF_DB    path to the SQLite database file (default library.db)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"libshelf/cmd/libraryd/server"
)

func main() {
	// A missing .env file is fine; the defaults cover local use.
	_ = godotenv.Load()

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	addr, err := srv.Start()
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("libraryd ready", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
