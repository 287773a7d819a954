// Package events decodes loosely-typed network event messages into typed
// records, tolerating both the legacy flat layout and the current
// dictionary layout of the same logical event.
package events

import (
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// Event is the generic (layer 1) decoding of a network event: the envelope
// plus every component entry decoded through the item codec, before any
// event-specific meaning is applied.
type Event struct {
	Name              string
	SenderClientID    uint64
	RecipientClientID *uint64
	Components        map[uint64]wire.Item
}

func (e *Event) EventName() string { return e.Name }

// AsyncCallCompletedEvent reports the completion of a long-running service
// operation. Two historical wire layouts decode into this one record:
//
//	legacy:  0=OperationName, 1=ReferenceId, 2=ReferenceType
//	current: 0=OperationName, 1=References dictionary, 2=Success, 3=StatusReason
//
// ReferenceId and ReferenceType are kept populated in both cases so callers
// written against the legacy shape keep working.
type AsyncCallCompletedEvent struct {
	Event

	OperationName string
	References    map[string]string
	Success       *bool
	StatusReason  string

	// Legacy single-reference fields, derived from References when the
	// current layout is used.
	ReferenceID   string
	ReferenceType string
}

// AsyncCallCompletedEventName is the wire name of the operation-completed
// event.
const AsyncCallCompletedEventName = "AsyncCallCompleted"

// legacyReferenceTags maps References dictionary keys to the reference-type
// tag the legacy record used for them. Kept as a table so future reference
// kinds extend it instead of branching the derivation.
var legacyReferenceTags = []struct {
	Key string
	Tag string
}{
	{Key: "SpaceId", Tag: "GroupId"},
}
