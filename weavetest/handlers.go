package weavetest

import "github.com/nftrade/weave"

// Handler returns the configured results and counts its calls. When
// WriteKey is set, every call first writes WriteValue under it, which lets
// a test see whether writes of a failed call were rolled back.
type Handler struct {
	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte

	checks     int
	deliveries int
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.checks++
	if err := h.touch(db, h.CheckErr); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.deliveries++
	if err := h.touch(db, h.DeliverErr); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, nil
}

// touch writes the configured pair and returns the first error.
func (h *Handler) touch(db weave.KVStore, result error) error {
	if h.WriteKey != nil {
		if err := db.Set(h.WriteKey, h.WriteValue); err != nil {
			return err
		}
	}
	return result
}

func (h *Handler) CheckCallCount() int   { return h.checks }
func (h *Handler) DeliverCallCount() int { return h.deliveries }
func (h *Handler) CallCount() int        { return h.checks + h.deliveries }
