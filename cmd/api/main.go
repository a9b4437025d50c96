package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/talentbridge/internhub/internal/app/server"
)

func main() {
	log.SetPrefix("[INTERNHUB] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
