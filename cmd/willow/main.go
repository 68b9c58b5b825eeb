package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/willow/pkg/commands"
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := commands.New().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("willow: %v", err)
	}
}
