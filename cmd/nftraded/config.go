package main

import (
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli"

	"github.com/nftrade/weave/errors"
)

const (
	defaultHTTPAddr  = ":8080"
	defaultDataDir   = "data"
	defaultChainID   = "nftrade-local"
	defaultQueueSize = 1024
)

// Config holds the settings of the start command.
type Config struct {
	HTTPAddr string
	// DataDir holds the ledger database. Empty runs from memory.
	DataDir  string
	ChainID  string
	Genesis  string
	LogLevel string
	Debug    bool

	RateLimit float64
	RateBurst int

	// RedisURL enables event publishing when set.
	RedisURL  string
	RedisWait time.Duration
	QueueSize int
}

func startFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "http-addr",
			Usage:  "address the HTTP API listens on",
			Value:  defaultHTTPAddr,
			EnvVar: "NFTRADE_HTTP_ADDR",
		},
		cli.StringFlag{
			Name:   "data-dir",
			Usage:  "directory of the ledger database, empty keeps the state in memory",
			Value:  defaultDataDir,
			EnvVar: "NFTRADE_DATA_DIR",
		},
		cli.StringFlag{
			Name:   "chain-id",
			Usage:  "chain id used when no genesis file is given",
			Value:  defaultChainID,
			EnvVar: "NFTRADE_CHAIN_ID",
		},
		cli.StringFlag{
			Name:   "genesis",
			Usage:  "genesis file loaded on the first start",
			EnvVar: "NFTRADE_GENESIS",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "debug, info, warn or error",
			Value:  "info",
			EnvVar: "NFTRADE_LOG_LEVEL",
		},
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "expose internal error details in API responses",
			EnvVar: "NFTRADE_DEBUG",
		},
		cli.Float64Flag{
			Name:   "rate-limit",
			Usage:  "requests per second allowed per client, 0 disables the limiter",
			Value:  20,
			EnvVar: "NFTRADE_RATE_LIMIT",
		},
		cli.IntFlag{
			Name:   "rate-burst",
			Usage:  "burst of requests allowed per client",
			Value:  40,
			EnvVar: "NFTRADE_RATE_BURST",
		},
		cli.StringFlag{
			Name:   "redis-url",
			Usage:  "redis URL events are published to, e.g. redis://localhost:6379/0",
			EnvVar: "NFTRADE_REDIS_URL",
		},
		cli.DurationFlag{
			Name:   "redis-wait",
			Usage:  "how long to wait for redis on startup",
			Value:  30 * time.Second,
			EnvVar: "NFTRADE_REDIS_WAIT",
		},
		cli.IntFlag{
			Name:   "queue-size",
			Usage:  "number of events buffered for publishing",
			Value:  defaultQueueSize,
			EnvVar: "NFTRADE_QUEUE_SIZE",
		},
	}
}

func configFromContext(c *cli.Context) Config {
	return Config{
		HTTPAddr:  c.String("http-addr"),
		DataDir:   c.String("data-dir"),
		ChainID:   c.String("chain-id"),
		Genesis:   c.String("genesis"),
		LogLevel:  c.String("log-level"),
		Debug:     c.Bool("debug"),
		RateLimit: c.Float64("rate-limit"),
		RateBurst: c.Int("rate-burst"),
		RedisURL:  c.String("redis-url"),
		RedisWait: c.Duration("redis-wait"),
		QueueSize: c.Int("queue-size"),
	}
}

// Validate returns all problems found in the configuration.
func (c Config) Validate() error {
	var errs error
	if c.HTTPAddr == "" {
		errs = errors.AppendField(errs, "HTTPAddr", errors.ErrEmpty)
	}
	if c.ChainID == "" && c.Genesis == "" {
		errs = errors.AppendField(errs, "ChainID", errors.Wrap(errors.ErrEmpty, "chain id or genesis required"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = errors.AppendField(errs, "LogLevel", errors.Wrap(errors.ErrInput, err.Error()))
	}
	if c.RateLimit < 0 {
		errs = errors.AppendField(errs, "RateLimit", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = errors.AppendField(errs, "RateBurst", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	if c.RedisURL != "" && c.QueueSize < 1 {
		errs = errors.AppendField(errs, "QueueSize", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	return errs
}

// DBPath returns the path of the ledger database.
func (c Config) DBPath() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "nftrade.db")
}
