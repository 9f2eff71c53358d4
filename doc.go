/*
Package weave defines the interfaces shared by the swap ledger: storage,
messages and transactions, handlers and decorators, conditions and addresses,
and the context helpers used to pass block information down the stack.

Extensions under x/ build on these interfaces. The app package wires them into
a Ledger that delivers one transaction at a time.
*/
package weave
