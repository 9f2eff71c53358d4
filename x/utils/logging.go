package utils

import (
	"time"

	"github.com/nftrade/weave"
)

// Logging writes one entry per transaction with its path and duration.
// Failures are logged as errors, successful deliveries at info level and
// successful checks at debug level.
type Logging struct{}

var _ weave.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logTx(ctx, tx, start, log, err, true)
	return res, err
}

func (Logging) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logTx(ctx, tx, start, log, err, false)
	return res, err
}

func logTx(ctx weave.Context, tx weave.Tx, start time.Time, msg string, err error, check bool) {
	logger := weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"took_us", time.Since(start).Microseconds(),
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
