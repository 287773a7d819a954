package events

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// TypedEvent is what Decode hands to the dispatcher: either an
// event-specific record or, for names this decoder does not know, the
// generic *Event carrying the raw index-to-value mapping.
type TypedEvent interface {
	EventName() string
}

// typedDecoders maps event names to their layer-2 decoding. Immutable after
// initialization.
var typedDecoders = map[string]func(*Decoder, *Event) (TypedEvent, error){
	AsyncCallCompletedEventName: (*Decoder).decodeAsyncCallCompleted,
}

// Decoder turns one complete wire message into a typed event. Decoding is
// pure computation: no I/O, no retries, safe to run on the transport's
// delivery goroutine.
type Decoder struct {
	items *wire.ItemDecoder
	log   *log.Logger
}

func NewDecoder(logger *log.Logger) *Decoder {
	return &Decoder{
		items: wire.NewItemDecoder(logger),
		log:   logger,
	}
}

// Decode validates the event envelope, runs the generic component pass, and
// applies the event-specific mapping when the name is recognized. Callers
// get either a fully decoded record or an error, never a partial one.
func (d *Decoder) Decode(v wire.Value) (TypedEvent, error) {
	generic, err := d.decodeGeneric(v)
	if err != nil {
		return nil, err
	}

	typed, ok := typedDecoders[generic.Name]
	if !ok {
		// Best-effort handling for event names newer than this decoder.
		d.log.Debug("no typed decoder for event, returning generic record",
			zap.String("event", generic.Name))
		return generic, nil
	}
	return typed(d, generic)
}

// decodeGeneric is layer 1: the `[EventName, SenderId, RecipientId|null,
// Components]` envelope plus item decoding of every components entry.
func (d *Decoder) decodeGeneric(v wire.Value) (*Event, error) {
	elems, err := v.AsSequence()
	if err != nil {
		return nil, wire.NewShapeError("event", "%v", err)
	}
	if len(elems) != 4 {
		return nil, wire.NewShapeError("event", "expected 4 elements, found %d", len(elems))
	}

	name, err := elems[0].AsString()
	if err != nil {
		return nil, wire.NewShapeError("event name", "%v", err)
	}

	sender, err := elems[1].AsUInt()
	if err != nil {
		return nil, wire.NewShapeError("sender client id", "%v", err)
	}

	var recipient *uint64
	if !elems[2].IsNull() {
		r, err := elems[2].AsUInt()
		if err != nil {
			return nil, wire.NewShapeError("recipient client id", "%v", err)
		}
		recipient = &r
	}

	componentValues, err := elems[3].AsIntMap()
	if err != nil {
		return nil, wire.NewShapeError("components map", "%v", err)
	}

	components := make(map[uint64]wire.Item, len(componentValues))
	for index, value := range componentValues {
		item, err := d.items.Decode(value)
		if err != nil {
			return nil, errors.Wrapf(err, "component %d of %s", index, name)
		}
		components[index] = item
	}

	return &Event{
		Name:              name,
		SenderClientID:    sender,
		RecipientClientID: recipient,
		Components:        components,
	}, nil
}

// decodeAsyncCallCompleted is layer 2 for the operation-completed event.
// The shape of index 1 distinguishes the layouts: a bare string is the
// legacy single-reference form, a string dictionary is the current form.
func (d *Decoder) decodeAsyncCallCompleted(generic *Event) (TypedEvent, error) {
	out := &AsyncCallCompletedEvent{Event: *generic}

	if item, ok := generic.Components[0]; ok && !item.Null {
		name, err := item.Value.AsString()
		if err != nil {
			return nil, errors.Wrap(err, "operation name")
		}
		out.OperationName = name
	}

	if item, ok := generic.Components[1]; ok && !item.Null {
		switch item.Value.Kind() {
		case replicated.KindStringMap:
			refs, _ := item.Value.AsStringMap()
			out.References = refs
			deriveLegacyReference(out)
		case replicated.KindString:
			// Legacy layout: a single reference id at 1 and its type tag at 2.
			ref, _ := item.Value.AsString()
			out.ReferenceID = ref
			out.ReferenceType = legacyReferenceTags[0].Tag
			if tagItem, ok := generic.Components[2]; ok && !tagItem.Null {
				tag, err := tagItem.Value.AsString()
				if err != nil {
					return nil, errors.Wrap(err, "reference type")
				}
				out.ReferenceType = tag
			}
			return out, nil
		default:
			return nil, wire.NewShapeError("references", "expected String or StringMap, found %s", item.Value.Kind())
		}
	}

	if item, ok := generic.Components[2]; ok && !item.Null {
		success, err := item.Value.AsBool()
		if err != nil {
			return nil, errors.Wrap(err, "success flag")
		}
		out.Success = &success
	}

	if item, ok := generic.Components[3]; ok && !item.Null {
		reason, err := item.Value.AsString()
		if err != nil {
			return nil, errors.Wrap(err, "status reason")
		}
		out.StatusReason = reason
	}

	return out, nil
}

// deriveLegacyReference back-fills the legacy single-reference fields from
// the References dictionary so pre-dictionary callers keep working.
func deriveLegacyReference(out *AsyncCallCompletedEvent) {
	for _, entry := range legacyReferenceTags {
		if ref, ok := out.References[entry.Key]; ok {
			out.ReferenceID = ref
			out.ReferenceType = entry.Tag
			return
		}
	}
}
