package utils

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/nftrade/weave"
)

// ActionKey is the tag key holding the message path.
const ActionKey = "action"

// ActionTagger tags every successful delivery with action=<message path>.
// Event subscribers filter on it, for example to only publish swap/execute.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{Key: []byte(ActionKey), Value: []byte(weave.GetPath(tx))}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
