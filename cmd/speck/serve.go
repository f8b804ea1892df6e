package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"speck-go/pkg/api"
	"speck-go/pkg/config"
	"speck-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "starts the HTTP block and id service",
	UsageText: "speck serve [--config speck.yaml] [--listen ADDR]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration `FILE`",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "listen `ADDR`, overrides listen_address",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}

	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if cfg.LogDB != "" {
		if err := log.Init(cfg.LogDB); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer log.Close()
	} else {
		log.SetStd()
	}
	log.SetLevel(cfg.Level())

	sc, err := cfg.Cipher()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	srv, err := api.NewServer(sc, api.Options{Metrics: cfg.Metrics})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Printf("using config file %s", cfg.ConfigFile)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(cfg.ListenAddr) }()

	select {
	case err := <-errc:
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.ListenAddr).Msg("api server failed")
			return cli.Exit(err.Error(), 1)
		}
		return nil
	case <-ctx.Done():
		log.Printf("received shutdown signal, shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return cli.Exit(err.Error(), 1)
	}
	log.Printf("service has been shut down")
	return nil
}
