package swap

import (
	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

// AssetContract is the set of operations a token contract must provide to
// take part in a swap.
type AssetContract interface {
	// OwnerOf returns the current owner of a token.
	OwnerOf(db weave.ReadOnlyKVStore, tokenID uint64) (weave.Address, error)
	// IsApprovedForAll returns true if the operator may move any token of
	// the owner.
	IsApprovedForAll(db weave.ReadOnlyKVStore, owner, operator weave.Address) (bool, error)
	// TransferFrom moves a token. The operator must be the owner or an
	// approved operator of the owner.
	TransferFrom(db weave.KVStore, operator, from, to weave.Address, tokenID uint64) error
}

// Directory knows what is deployed at an address. Lookup returns
// errors.ErrNotFound if nothing is.
type Directory interface {
	Lookup(db weave.ReadOnlyKVStore, addr weave.Address) (interface{}, error)
}

// Directories chains directories. The first one that knows an address wins.
type Directories []Directory

var _ Directory = Directories(nil)

func (ds Directories) Lookup(db weave.ReadOnlyKVStore, addr weave.Address) (interface{}, error) {
	for _, d := range ds {
		obj, err := d.Lookup(db, addr)
		switch {
		case err == nil:
			return obj, nil
		case !errors.ErrNotFound.Is(err):
			return nil, err
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no contract at %s", addr)
}

// Resolver checks that an address hosts a contract implementing
// AssetContract.
type Resolver struct {
	dir Directory
}

// NewResolver returns a resolver asking given directory.
func NewResolver(dir Directory) Resolver {
	return Resolver{dir: dir}
}

// Resolve returns the contract deployed at given address. ErrNotCompliant is
// returned if nothing is deployed there or if the deployed object lacks any
// of the AssetContract operations.
func (r Resolver) Resolve(db weave.ReadOnlyKVStore, addr weave.Address) (AssetContract, error) {
	obj, err := r.dir.Lookup(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNotCompliant, "no contract at %s", addr)
	case err != nil:
		return nil, errors.Wrapf(err, "lookup %s", addr)
	}
	c, ok := obj.(AssetContract)
	if !ok || c == nil {
		return nil, errors.Wrapf(ErrNotCompliant, "%T at %s", obj, addr)
	}
	return c, nil
}

// Session returns a resolver that remembers every resolved address. It must
// not outlive a single operation.
func (r Resolver) Session() *Session {
	return &Session{resolver: r, cache: make(map[string]AssetContract)}
}

// Session resolves each distinct address at most once.
type Session struct {
	resolver Resolver
	cache    map[string]AssetContract
	lookups  int
}

// Resolve works like Resolver.Resolve, returning a cached contract for an
// address seen before. Failures are not cached.
func (s *Session) Resolve(db weave.ReadOnlyKVStore, addr weave.Address) (AssetContract, error) {
	if c, ok := s.cache[string(addr)]; ok {
		return c, nil
	}
	s.lookups++
	c, err := s.resolver.Resolve(db, addr)
	if err != nil {
		return nil, err
	}
	s.cache[string(addr)] = c
	return c, nil
}

// Lookups returns how many times the directory was asked.
func (s *Session) Lookups() int {
	return s.lookups
}
