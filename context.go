// Package weave holds the interfaces shared by the ledger, its extensions
// and the node: handlers and decorators, transactions and messages, stores
// and queries, conditions and addresses.
//
// Block level information travels in a context.Context. Every value has a
// WithX setter returning a derived context and a getter. Height and chain
// id are set once by the ledger; a second attempt panics so that no
// extension can fake them.
package weave

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/nftrade/weave/errors"
)

// Context is the standard context, extended through the functions below.
type Context = context.Context

type ctxKey string

const (
	heightKey    ctxKey = "height"
	chainIDKey   ctxKey = "chain_id"
	loggerKey    ctxKey = "logger"
	blockTimeKey ctxKey = "block_time"
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	chainIDFormat = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

	// IsValidChainID reports whether id may name a chain.
	IsValidChainID = chainIDFormat.MatchString
)

// setOnce panics when key already holds a value.
func setOnce(ctx Context, key ctxKey, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", key))
	}
	return context.WithValue(ctx, key, val)
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, heightKey, height)
}

// GetHeight returns the block height, if set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime stores the block time in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time of the block being processed. Missing and
// zero times are errors, expiration checks cannot work without a clock.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	switch {
	case !ok:
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
	case t.IsZero():
		return t, errors.Wrap(errors.ErrHuman, "zero block time")
	}
	return t, nil
}

// WithChainID panics on an invalid id or when the id is already set.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id: %q", chainID))
	}
	return setOnce(ctx, chainIDKey, chainID)
}

// GetChainID panics when the chain id was never set. The ledger always
// sets it before calling a handler.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithLogInfo adds key value pairs to every entry of the context logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
