package swap

import (
	"github.com/nftrade/weave/errors"
)

// swap takes 1100-1110
var (
	// ErrNotCompliant is returned when an address does not host a contract
	// providing every operation a swap needs.
	ErrNotCompliant = errors.Register(1100, "contract not compliant")

	// ErrInvalidSwapSpec is returned when a swap cannot be created from
	// the requested participants and assets.
	ErrInvalidSwapSpec = errors.Register(1101, "invalid swap spec")

	// ErrNotApproved is returned when an owner has not approved the swap
	// operator to move its tokens.
	ErrNotApproved = errors.Register(1102, "token not approved")

	// ErrNotOwner is returned when a token is no longer owned by the
	// participant that offered it.
	ErrNotOwner = errors.Register(1103, "ownership mismatch")

	// ErrTransferFailed is returned when a contract rejects a transfer
	// while the swap is executed.
	ErrTransferFailed = errors.Register(1104, "transfer failed")
)

// IsPreconditionFailed returns true if the swap cannot be executed because
// the current state of the assets does not match the swap.
func IsPreconditionFailed(err error) bool {
	return ErrNotApproved.Is(err) || ErrNotOwner.Is(err)
}
