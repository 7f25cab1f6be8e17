// cmd/profgen/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"profsearch/internal/gencli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := gencli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
