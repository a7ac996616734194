package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/arathel/wardtable/internal/app/server"
	"github.com/arathel/wardtable/internal/platform/config"
	"github.com/arathel/wardtable/internal/platform/otel"
)

func main() {
	var cfg server.Config
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse config: %v", err)
	}

	log.SetPrefix("[WARDTABLE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "wardtable")
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	if err := server.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
