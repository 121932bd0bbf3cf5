package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/finsighthq/finsight/infra/initializer"
	"github.com/finsighthq/finsight/pkg/app"
	"github.com/finsighthq/finsight/pkg/config"
	"github.com/finsighthq/finsight/webapi"
)

// @title Finsight API
// @version 1.0.0
// @description Allocation-aware financial reporting API
// @host localhost:3000
// @BasePath /
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

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	return fiberApp.Listen(addr)
}
