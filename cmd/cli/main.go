package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := initializer.InitializeDependencies(ctx, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	newShell(a, os.Stdin, os.Stdout).Run(ctx)
	return nil
}
