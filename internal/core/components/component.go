// Package components provides the networked entity components built on the
// shared property store: each component kind declares a fixed key schema
// and exposes typed accessors over it.
package components

import (
	"go.uber.org/zap"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/property"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// Type discriminates component kinds on the wire.
type Type uint32

const (
	TypeInvalid Type = iota
	TypeAnimatedModel
	TypeCollision
)

func (t Type) String() string {
	switch t {
	case TypeAnimatedModel:
		return "AnimatedModel"
	case TypeCollision:
		return "Collision"
	default:
		return "Invalid"
	}
}

// Base carries what every component shares: its type, its property store
// and the logger used when a stored value turns out to have the wrong kind.
// Component getters never fail; on a kind mismatch they log and return the
// kind default, matching the no-throw surface scripts rely on.
type Base struct {
	componentType Type
	props         *property.Store
	log           *log.Logger
}

func newBase(componentType Type, schema *property.Schema, logger *log.Logger) Base {
	return Base{
		componentType: componentType,
		props:         property.NewStore(schema),
		log:           logger.With(zap.String("component", componentType.String())),
	}
}

func (b *Base) Type() Type { return b.componentType }

// Properties exposes the store to the replication sender for dirty flushes.
func (b *Base) Properties() *property.Store { return b.props }

func (b *Base) setProperty(key property.Key, value replicated.Value) {
	if err := b.props.Set(key, value); err != nil {
		b.log.Error("property set rejected", zap.Uint32("key", key), zap.Error(err))
	}
}

func (b *Base) stringProperty(key property.Key) string {
	v, err := b.props.Get(key).AsString()
	if err != nil {
		b.logMismatch(key, err)
		return ""
	}
	return v
}

func (b *Base) boolProperty(key property.Key) bool {
	v, err := b.props.Get(key).AsBool()
	if err != nil {
		b.logMismatch(key, err)
		return false
	}
	return v
}

func (b *Base) intProperty(key property.Key) int64 {
	v, err := b.props.Get(key).AsInt()
	if err != nil {
		b.logMismatch(key, err)
		return 0
	}
	return v
}

func (b *Base) vector3Property(key property.Key) replicated.Vector3 {
	v, err := b.props.Get(key).AsVector3()
	if err != nil {
		b.logMismatch(key, err)
		return replicated.Vector3{}
	}
	return v
}

func (b *Base) vector4Property(key property.Key) replicated.Vector4 {
	v, err := b.props.Get(key).AsVector4()
	if err != nil {
		b.logMismatch(key, err)
		return replicated.Vector4{}
	}
	return v
}

func (b *Base) logMismatch(key property.Key, err error) {
	b.log.Error("underlying replicated value not valid",
		zap.Uint32("key", key), zap.Error(err))
}
