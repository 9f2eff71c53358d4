package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/cmd/nftraded/logging"
	"github.com/nftrade/weave/cmd/nftraded/metrics"
	"github.com/nftrade/weave/cmd/nftraded/node"
	"github.com/nftrade/weave/cmd/nftraded/publisher"
	"github.com/nftrade/weave/cmd/nftraded/server"
	"github.com/nftrade/weave/x/swap"
)

func getApp() *cli.App {
	app := cli.NewApp()
	app.Name = "nftraded"
	app.Usage = "NFT swap ledger"
	app.Version = weave.Version()
	app.Commands = []cli.Command{
		{
			Name:   "start",
			Usage:  "serve the ledger over HTTP",
			Flags:  startFlags(),
			Action: start,
		},
		{
			Name:  "operator",
			Usage: "print the operator owners approve to take part in swaps",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "condition: %s\naddress:   %s\n", swap.OperatorCondition(), swap.OperatorAddress())
				return nil
			},
		},
		{
			Name:  "version",
			Usage: "print the version",
			Action: func(c *cli.Context) error {
				fmt.Fprintln(c.App.Writer, weave.Version())
				return nil
			},
		},
	}
	return app
}

func start(c *cli.Context) error {
	cfg := configFromContext(c)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	n, err := node.Open(cfg.DBPath(), logging.NewTMLogger(logger.WithField("module", "ledger")))
	if err != nil {
		return err
	}
	defer n.Close()
	if err := node.EnsureGenesis(n.Ledger, cfg.Genesis, cfg.ChainID); err != nil {
		return err
	}

	m := metrics.New()
	if height, err := n.Height(); err == nil {
		m.Height.Set(float64(height))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.RedisURL != "" {
		client, err := publisher.Connect(gctx, cfg.RedisURL, cfg.RedisWait, logger)
		if err != nil {
			return err
		}
		defer client.Close()
		p := publisher.New(client, logger.WithField("module", "publisher"), m, cfg.QueueSize)
		unsubscribe := n.Subscribe(p.HandleEvent)
		defer unsubscribe()
		g.Go(func() error {
			return p.Run(gctx)
		})
	}

	srv := server.NewServer(
		server.NewHandlers(n, logger.WithField("module", "http"), m, cfg.Debug),
		server.ServerConfig{
			Addr:      cfg.HTTPAddr,
			RateLimit: cfg.RateLimit,
			RateBurst: cfg.RateBurst,
			Debug:     cfg.Debug,
		},
	)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	logger.WithFields(logrus.Fields{
		"addr":    cfg.HTTPAddr,
		"chain":   n.ChainID(),
		"version": weave.Version(),
	}).Info("nftraded started")

	err = g.Wait()
	logger.Info("nftraded stopped")
	return err
}

func main() {
	// a missing .env file is fine, flags and the environment still apply
	_ = godotenv.Load()

	if err := getApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
