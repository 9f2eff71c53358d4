/*
Package swap implements atomic swaps of non fungible tokens between two
participants.

The creator offers a list of assets and names a recipient. Assets listed
before the split index belong to the creator, the remaining ones belong to
the recipient. A swap is created in the Pending state. Every referenced
contract must implement AssetContract, otherwise the swap is rejected.

Both participants approve the swap operator (see OperatorAddress) for their
tokens. Once they did, either participant can execute the swap. Execution
first verifies the owner and the approval of every asset and only then moves
all of them. Either every asset changes hands and the swap becomes Executed,
or nothing is written and the swap stays Pending.

A pending swap can be cancelled by either participant. Executed and
Cancelled swaps are final and are never deleted.

Only swaps between exactly two parties are supported.

The wire schema of every model and message is described in codec.proto.
*/
package swap
