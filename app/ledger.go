package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// Event is published after every successfully committed delivery.
type Event struct {
	Height int64
	Path   string
	Tags   []common.KVPair
}

// Ledger executes transactions against a committed store. Deliveries are
// serialized and each one is committed as a separate version, so a handler
// always observes the state left by the previous transaction. Checks and
// queries run concurrently against the last committed state.
type Ledger struct {
	name    string
	handler weave.Handler
	queries weave.QueryRouter
	init    weave.Initializer
	logger  log.Logger
	now     func() time.Time

	mu      sync.RWMutex
	state   *state
	chainID string

	subsMu sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// LedgerOption configures a Ledger during construction.
type LedgerOption func(*Ledger)

// WithLogger sets the logger used by the ledger and passed to handlers.
func WithLogger(logger log.Logger) LedgerOption {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithInitializer sets the code used to load genesis state.
func WithInitializer(init weave.Initializer) LedgerOption {
	return func(l *Ledger) {
		l.init = init
	}
}

// WithClock overrides the source of block time.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger loads the latest state of given store and returns a ledger ready
// to process transactions.
func NewLedger(name string, store weave.CommitKVStore, handler weave.Handler, queries weave.QueryRouter, opts ...LedgerOption) (*Ledger, error) {
	st, err := loadState(store)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		name:    name,
		handler: handler,
		queries: queries,
		logger:  log.NewNopLogger(),
		now:     time.Now,
		state:   st,
		subs:    make(map[int]func(Event)),
	}
	for _, fn := range opts {
		fn(l)
	}

	l.chainID, err = loadChainID(st.snapshot())
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ChainID returns the chain id set by the genesis, or an empty string if
// the ledger was not initialized yet.
func (l *Ledger) ChainID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chainID
}

// Height returns the version of the last commit.
func (l *Ledger) Height() (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, err := l.state.latest()
	if err != nil {
		return 0, err
	}
	return info.Version, nil
}

// InitChain stores the chain id and loads the initial application state.
// It can be called only once for a given store.
func (l *Ledger) InitChain(gen Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "genesis already loaded for chain %q", l.chainID)
	}

	db := l.state.pendingStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		l.state.rollback()
		return err
	}
	if l.init != nil {
		if err := l.init.FromGenesis(gen.AppState, db); err != nil {
			l.state.rollback()
			return errors.Wrap(err, "genesis")
		}
	}
	info, err := l.state.commit()
	if err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	l.chainID = gen.ChainID
	l.logger.Info("Genesis loaded", "chain", gen.ChainID, "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return nil
}

// Deliver executes the transaction and commits its result. A failed
// transaction leaves no trace in the state.
func (l *Ledger) Deliver(ctx context.Context, tx weave.Tx) (*weave.DeliverResult, error) {
	res, ev, err := l.deliver(ctx, tx)
	if err != nil {
		return nil, err
	}
	l.publish(ev)
	return res, nil
}

func (l *Ledger) deliver(ctx context.Context, tx weave.Tx) (*weave.DeliverResult, Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := l.state.latest()
	if err != nil {
		return nil, Event{}, err
	}
	height := info.Version + 1
	ctx = l.txContext(ctx, height)

	res, err := l.handler.Deliver(ctx, l.state.pendingStore(), tx)
	if err != nil {
		l.state.rollback()
		return nil, Event{}, err
	}
	info, err = l.state.commit()
	if err != nil {
		l.state.rollback()
		return nil, Event{}, errors.Wrap(err, "commit")
	}
	l.logger.Debug("Commit synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))

	ev := Event{Height: info.Version, Path: weave.GetPath(tx), Tags: res.Tags}
	return res, ev, nil
}

// Check runs the transaction against the committed state without
// persisting any of its changes.
func (l *Ledger) Check(ctx context.Context, tx weave.Tx) (*weave.CheckResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	info, err := l.state.latest()
	if err != nil {
		return nil, err
	}
	db := l.state.snapshot()
	defer db.Discard()
	return l.handler.Check(l.txContext(ctx, info.Version+1), db, tx)
}

// Query dispatches a read to the query handler registered under the path.
// Path may end with "?prefix" to make a prefix query.
func (l *Ledger) Query(path string, data []byte) ([]weave.Model, error) {
	path, mod := splitPath(path)
	qh := l.queries.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %s", path)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	db := l.state.snapshot()
	defer db.Discard()
	return qh.Query(db, mod, data)
}

// View runs fn with a read only view of the committed state.
func (l *Ledger) View(fn func(db weave.ReadOnlyKVStore) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	db := l.state.snapshot()
	defer db.Discard()
	return fn(db)
}

// Subscribe registers fn to be called after every committed delivery. Calls
// are made in commit order from the delivering goroutine. The returned
// function removes the subscription.
func (l *Ledger) Subscribe(fn func(Event)) func() {
	l.subsMu.Lock()
	defer l.subsMu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	return func() {
		l.subsMu.Lock()
		defer l.subsMu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Ledger) publish(ev Event) {
	l.subsMu.Lock()
	defer l.subsMu.Unlock()
	for _, fn := range l.subs {
		fn(ev)
	}
}

func (l *Ledger) txContext(ctx context.Context, height int64) weave.Context {
	ctx = weave.WithHeight(ctx, height)
	ctx = weave.WithBlockTime(ctx, l.now())
	if l.chainID != "" {
		ctx = weave.WithChainID(ctx, l.chainID)
	}
	return weave.WithLogger(ctx, l.logger.With("height", height))
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		return chunks[0], chunks[1]
	}
	return path, weave.KeyQueryMod
}
