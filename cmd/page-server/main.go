package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexZav1327/word-of-the-day/internal/config"
	"github.com/AlexZav1327/word-of-the-day/internal/keyvault"
	"github.com/AlexZav1327/word-of-the-day/internal/logging"
	pageserver "github.com/AlexZav1327/word-of-the-day/internal/page-server"
	pageservice "github.com/AlexZav1327/word-of-the-day/internal/page-service"
	"github.com/AlexZav1327/word-of-the-day/internal/worldtime"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:   "page-server",
		Usage:  "Serve the word of the day page",
		Flags:  config.Flags,
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		logrus.StandardLogger().Fatalf("app.Run: %s", err)
	}
}

func run(cCtx *cli.Context) error {
	cfg, err := config.FromContext(cCtx)
	if err != nil {
		return fmt.Errorf("config.FromContext: %w", err)
	}

	logger, err := logging.Setup(logging.Options{
		Debug:            cfg.LogDebug,
		JSON:             cfg.LogJSON,
		Service:          cfg.LogService,
		ConnectionString: cfg.AppInsightsConnectionString,
	})
	if err != nil {
		return fmt.Errorf("logging.Setup: %w", err)
	}

	defer logging.Flush()

	ctx, cancel := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	fetcher := keyvault.New(authenticator(cfg), cfg.SecretName, logger)
	clock := worldtime.New(cfg.TimeAPIURL, cfg.TimeAPITimeout, logger)
	service := pageservice.New(fetcher, clock, logger)

	group, ctx := errgroup.WithContext(ctx)

	server := pageserver.New(cfg.ListenAddr, service, logger, cfg.MetricsAddr == "")
	group.Go(func() error {
		return server.Run(ctx)
	})

	if cfg.MetricsAddr != "" {
		metricsServer := pageserver.NewMetricsServer(cfg.MetricsAddr, logger)
		group.Go(func() error {
			return metricsServer.Run(ctx)
		})
	}

	err = group.Wait()
	if err != nil {
		return fmt.Errorf("group.Wait: %w", err)
	}

	return nil
}

// The managed identity branch is always taken, there is no credential-less mode.
func authenticator(cfg config.Config) keyvault.Authenticator {
	if cfg.SecretBackend == config.BackendHashiCorp {
		return keyvault.NewHashiCorp(cfg.VaultAddr, cfg.VaultToken, cfg.VaultMount)
	}

	return keyvault.NewAzure(cfg.KeyVaultName, cfg.MSIClientID)
}
