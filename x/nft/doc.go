/*
Package nft implements a non fungible token contract that can be traded
through atomic swaps.

Each contract is created with a minter. Only the minter can issue new tokens
and every token id is unique within its contract. Token owners can grant an
operator the right to move all of their tokens of a given contract. The swap
extension relies on such an approval to move tokens on behalf of both
participants.

A deployed contract is exposed to other extensions through Directory. The
resolved TokenContract provides OwnerOf, IsApprovedForAll and TransferFrom.

The wire schema of every model and message is described in codec.proto.
*/
package nft
