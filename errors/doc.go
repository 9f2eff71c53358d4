/*
Package errors implements the error values used across the swap ledger.

Every error returned by a handler should wrap one of the root errors declared
with Register. The registered code is what API clients see, so two errors that
must be told apart by a client need two codes. Extensions (x/nft, x/swap)
register their own codes in their errors.go.

Create errors at the point of failure with ErrXyz.New, ErrXyz.Newf or Wrap so
that a stack trace is attached once, at the innermost frame. Do not declare
package level variables with ErrXyz.New as that records a useless trace.

Formatting verbs:
	%s  the error message
	%v  the message followed by a compressed [file:line] of the origin
	%+v the message with a full stack trace

Field and Append build structured validation errors. FieldErrors lets tests
and clients find the failure for a single attribute.
*/
package errors
