package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sunucargo/platform/internal/cli"
	"github.com/sunucargo/platform/internal/config"
	"github.com/sunucargo/platform/pkg/logger"
)

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "sunucargo: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sunucargo: %v\n", err)
		os.Exit(1)
	}
}
