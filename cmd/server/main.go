// Command server runs the protocol registry HTTP API.
//
// Configuration is read from CONFIG_PATH (YAML) overridden by environment
// variables; see internal/config. The process stops cleanly on SIGINT or
// SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sisregip/sisregip-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
