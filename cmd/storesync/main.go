// Command storesync is the Shopify store fetch and sync console.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/cli"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cli.SetVersion(Version)
	if err := cli.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
