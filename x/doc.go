/*
Package x contains some standard extensions

Extensions are built on top of the weave framework. The
subpackages implement the nft contract registry (nft) and the
atomic swap escrow (swap), while this package provides the
authentication helpers they share.
*/
package x
