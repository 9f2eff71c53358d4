/*
Package node links together all the various components
to construct the nftraded ledger.
*/
package node

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/app"
	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/store/iavl"
	"github.com/nftrade/weave/x"
	"github.com/nftrade/weave/x/nft"
	"github.com/nftrade/weave/x/swap"
	"github.com/nftrade/weave/x/utils"
)

// Authenticator returns the authentication used by all handlers. Conditions
// are attached to the request context by the transport once the caller was
// verified. Extra authenticators are consulted after the context.
func Authenticator(extra ...x.Authenticator) x.Authenticator {
	return x.ChainAuth(append([]x.Authenticator{x.CtxAuth{}}, extra...)...)
}

// Chain returns a chain of decorators, to handle logging, recovery and
// state isolation of failed messages.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// a failed message leaves no partial writes behind
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Directory returns the directory used to resolve contracts referenced by
// swaps. The nft contracts are looked up first, then extra in order.
func Directory(extra ...swap.Directory) swap.Directory {
	return append(swap.Directories{nft.NewDirectory()}, extra...)
}

// Router returns a router dispatching nft and swap messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	nft.RegisterRoutes(r, authFn)
	swap.RegisterRoutes(r, authFn, Directory())
	return r
}

// QueryRouter returns a query router, allowing access to "/nft/contracts",
// "/nft/tokens", "/nft/approvals" and "/swaps" together with their
// indexes.
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		nft.RegisterQuery,
		swap.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain.
func Stack(authFn x.Authenticator) weave.Handler {
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns the code loading every extension from the genesis.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&swap.Initializer{},
		&nft.Initializer{},
	)
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path returns a memory backed store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// Node is a ledger running the full handler stack together with the store
// it persists to.
type Node struct {
	*app.Ledger
	store weave.CommitKVStore
}

// Open loads the store at dbPath and returns a node ready to process
// transactions.
func Open(dbPath string, logger log.Logger, opts ...app.LedgerOption) (*Node, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	opts = append([]app.LedgerOption{
		app.WithLogger(logger),
		app.WithInitializer(Initializers()),
	}, opts...)
	ledger, err := app.NewLedger("nftrade", kv, Stack(Authenticator()), QueryRouter(), opts...)
	if err != nil {
		return nil, err
	}
	return &Node{Ledger: ledger, store: kv}, nil
}

// Close releases the underlying store.
func (n *Node) Close() error {
	if c, ok := n.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// EnsureGenesis initializes a fresh ledger. The genesis file is used when
// given, otherwise an empty state with given chain id is created. A ledger
// that was already initialized is left untouched.
func EnsureGenesis(l *app.Ledger, genesisFile, chainID string) error {
	if l.ChainID() != "" {
		return nil
	}
	gen := app.Genesis{ChainID: chainID, AppState: weave.Options{}}
	if genesisFile != "" {
		var err error
		if gen, err = app.LoadGenesis(genesisFile); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}
	return l.InitChain(gen)
}
