package swap

import (
	"context"
	"strconv"
	"sync"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/nftrade/weave"
	"github.com/nftrade/weave/errors"
)

//go:generate mockgen -destination=mocks/emitter.go -package=mocks github.com/nftrade/weave/x/swap Emitter

// Emitter is notified about every successful swap state change.
type Emitter interface {
	SwapCreated(ctx context.Context, id uint64, creator, recipient weave.Address)
	SwapExecuted(ctx context.Context, id uint64)
	SwapCancelled(ctx context.Context, id uint64)
}

// EventKind names a swap notification.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventExecuted  EventKind = "executed"
	EventCancelled EventKind = "cancelled"
)

// Tag keys written by TagEmitter.
const (
	TagEvent     = "swap.event"
	TagID        = "swap.id"
	TagCreator   = "swap.creator"
	TagRecipient = "swap.recipient"
)

// Event is a typed swap notification.
type Event struct {
	Kind      EventKind     `json:"kind"`
	ID        uint64        `json:"id"`
	Creator   weave.Address `json:"creator,omitempty"`
	Recipient weave.Address `json:"recipient,omitempty"`
}

// Tags returns the key value representation of the event.
func (e Event) Tags() []common.KVPair {
	tags := []common.KVPair{
		{Key: []byte(TagEvent), Value: []byte(e.Kind)},
		{Key: []byte(TagID), Value: []byte(strconv.FormatUint(e.ID, 10))},
	}
	if e.Creator != nil {
		tags = append(tags, common.KVPair{Key: []byte(TagCreator), Value: []byte(e.Creator.String())})
	}
	if e.Recipient != nil {
		tags = append(tags, common.KVPair{Key: []byte(TagRecipient), Value: []byte(e.Recipient.String())})
	}
	return tags
}

// EventFromTags reads a swap event from result tags. It returns false if the
// tags do not describe a swap event.
func EventFromTags(tags []common.KVPair) (Event, bool, error) {
	var (
		ev    Event
		found bool
	)
	for _, t := range tags {
		switch string(t.Key) {
		case TagEvent:
			ev.Kind = EventKind(t.Value)
			found = true
		case TagID:
			id, err := strconv.ParseUint(string(t.Value), 10, 64)
			if err != nil {
				return ev, false, errors.Wrapf(errors.ErrInput, "swap id tag %q", t.Value)
			}
			ev.ID = id
		case TagCreator:
			addr, err := weave.ParseAddress(string(t.Value))
			if err != nil {
				return ev, false, errors.Wrap(err, "creator tag")
			}
			ev.Creator = addr
		case TagRecipient:
			addr, err := weave.ParseAddress(string(t.Value))
			if err != nil {
				return ev, false, errors.Wrap(err, "recipient tag")
			}
			ev.Recipient = addr
		}
	}
	return ev, found, nil
}

// TagEmitter collects events as tags. Create one per delivered message and
// attach Tags to the result.
type TagEmitter struct {
	tags []common.KVPair
}

var _ Emitter = (*TagEmitter)(nil)

func (t *TagEmitter) SwapCreated(_ context.Context, id uint64, creator, recipient weave.Address) {
	t.tags = append(t.tags, Event{Kind: EventCreated, ID: id, Creator: creator, Recipient: recipient}.Tags()...)
}

func (t *TagEmitter) SwapExecuted(_ context.Context, id uint64) {
	t.tags = append(t.tags, Event{Kind: EventExecuted, ID: id}.Tags()...)
}

func (t *TagEmitter) SwapCancelled(_ context.Context, id uint64) {
	t.tags = append(t.tags, Event{Kind: EventCancelled, ID: id}.Tags()...)
}

// Tags returns all collected tags.
func (t *TagEmitter) Tags() []common.KVPair {
	return t.tags
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Emitter = (*Recorder)(nil)

func (r *Recorder) SwapCreated(_ context.Context, id uint64, creator, recipient weave.Address) {
	r.record(Event{Kind: EventCreated, ID: id, Creator: creator, Recipient: recipient})
}

func (r *Recorder) SwapExecuted(_ context.Context, id uint64) {
	r.record(Event{Kind: EventExecuted, ID: id})
}

func (r *Recorder) SwapCancelled(_ context.Context, id uint64) {
	r.record(Event{Kind: EventCancelled, ID: id})
}

func (r *Recorder) record(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// MultiEmitter notifies every emitter in order.
type MultiEmitter []Emitter

var _ Emitter = MultiEmitter(nil)

func (m MultiEmitter) SwapCreated(ctx context.Context, id uint64, creator, recipient weave.Address) {
	for _, e := range m {
		e.SwapCreated(ctx, id, creator, recipient)
	}
}

func (m MultiEmitter) SwapExecuted(ctx context.Context, id uint64) {
	for _, e := range m {
		e.SwapExecuted(ctx, id)
	}
}

func (m MultiEmitter) SwapCancelled(ctx context.Context, id uint64) {
	for _, e := range m {
		e.SwapCancelled(ctx, id)
	}
}

// LogEmitter writes every event to the context logger.
type LogEmitter struct{}

var _ Emitter = LogEmitter{}

func (LogEmitter) SwapCreated(ctx context.Context, id uint64, creator, recipient weave.Address) {
	weave.GetLogger(ctx).Info("swap created", "id", id, "creator", creator, "recipient", recipient)
}

func (LogEmitter) SwapExecuted(ctx context.Context, id uint64) {
	weave.GetLogger(ctx).Info("swap executed", "id", id)
}

func (LogEmitter) SwapCancelled(ctx context.Context, id uint64) {
	weave.GetLogger(ctx).Info("swap cancelled", "id", id)
}

// deliverEmitter is used by the handlers. The returned TagEmitter holds the
// tags for the result.
func deliverEmitter() (Emitter, *TagEmitter) {
	tags := &TagEmitter{}
	return MultiEmitter{tags, LogEmitter{}}, tags
}
