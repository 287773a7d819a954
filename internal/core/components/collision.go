package components

import (
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/property"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// Property keys replicated for a collision component. Keys are stable: new
// ones append before collisionKeyCount, retired ones become reserved slots.
const (
	CollisionPosition property.Key = iota
	CollisionRotation
	CollisionScale
	CollisionShapeKey
	CollisionModeKey
	CollisionAssetID
	CollisionAssetCollectionID
	CollisionThirdPartyComponentRef
	collisionKeyCount
)

// CollisionShape selects the collision volume geometry.
type CollisionShape int64

const (
	CollisionShapeBox CollisionShape = iota
	CollisionShapeMesh
	CollisionShapeCapsule
	CollisionShapeSphere
)

// CollisionMode selects how the volume participates in the simulation.
type CollisionMode int64

const (
	CollisionModeCollision CollisionMode = iota
	CollisionModeTrigger
)

const (
	defaultSphereRadius      = 0.5
	defaultCapsuleHalfWidth  = 0.5
	defaultCapsuleHalfHeight = 1.0
)

var collisionSchema = property.NewSchema("Collision", []property.Slot{
	CollisionPosition:               {Kind: replicated.KindVector3},
	CollisionRotation:               {Kind: replicated.KindVector4, Default: replicated.Vec4(replicated.IdentityRotation())},
	CollisionScale:                  {Kind: replicated.KindVector3, Default: replicated.Vec3(replicated.UnitScale())},
	CollisionShapeKey:               {Kind: replicated.KindInteger, Default: replicated.Int(int64(CollisionShapeBox))},
	CollisionModeKey:                {Kind: replicated.KindInteger, Default: replicated.Int(int64(CollisionModeCollision))},
	CollisionAssetID:                {Kind: replicated.KindString},
	CollisionAssetCollectionID:      {Kind: replicated.KindString},
	CollisionThirdPartyComponentRef: {Kind: replicated.KindString},
})

// CollisionComponent is the replicated collision volume of a space entity.
type CollisionComponent struct {
	Base
}

func NewCollisionComponent(logger *log.Logger) *CollisionComponent {
	return &CollisionComponent{Base: newBase(TypeCollision, collisionSchema, logger)}
}

func (c *CollisionComponent) Position() replicated.Vector3 {
	return c.vector3Property(CollisionPosition)
}

func (c *CollisionComponent) SetPosition(v replicated.Vector3) {
	c.setProperty(CollisionPosition, replicated.Vec3(v))
}

func (c *CollisionComponent) Rotation() replicated.Vector4 {
	return c.vector4Property(CollisionRotation)
}

func (c *CollisionComponent) SetRotation(v replicated.Vector4) {
	c.setProperty(CollisionRotation, replicated.Vec4(v))
}

func (c *CollisionComponent) Scale() replicated.Vector3 {
	return c.vector3Property(CollisionScale)
}

func (c *CollisionComponent) SetScale(v replicated.Vector3) {
	c.setProperty(CollisionScale, replicated.Vec3(v))
}

func (c *CollisionComponent) Shape() CollisionShape {
	return CollisionShape(c.intProperty(CollisionShapeKey))
}

func (c *CollisionComponent) SetShape(shape CollisionShape) {
	c.setProperty(CollisionShapeKey, replicated.Int(int64(shape)))
}

func (c *CollisionComponent) Mode() CollisionMode {
	return CollisionMode(c.intProperty(CollisionModeKey))
}

func (c *CollisionComponent) SetMode(mode CollisionMode) {
	c.setProperty(CollisionModeKey, replicated.Int(int64(mode)))
}

func (c *CollisionComponent) AssetID() string {
	return c.stringProperty(CollisionAssetID)
}

func (c *CollisionComponent) SetAssetID(id string) {
	c.setProperty(CollisionAssetID, replicated.String(id))
}

func (c *CollisionComponent) AssetCollectionID() string {
	return c.stringProperty(CollisionAssetCollectionID)
}

func (c *CollisionComponent) SetAssetCollectionID(id string) {
	c.setProperty(CollisionAssetCollectionID, replicated.String(id))
}

func (c *CollisionComponent) ThirdPartyComponentRef() string {
	return c.stringProperty(CollisionThirdPartyComponentRef)
}

func (c *CollisionComponent) SetThirdPartyComponentRef(ref string) {
	c.setProperty(CollisionThirdPartyComponentRef, replicated.String(ref))
}

// UnscaledBoundingBoxMin is the lower corner of the unit collision box.
func (c *CollisionComponent) UnscaledBoundingBoxMin() replicated.Vector3 {
	return replicated.Vector3{X: -0.5, Y: -0.5, Z: -0.5}
}

func (c *CollisionComponent) UnscaledBoundingBoxMax() replicated.Vector3 {
	return replicated.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
}

func (c *CollisionComponent) ScaledBoundingBoxMin() replicated.Vector3 {
	s := c.Scale()
	return replicated.Vector3{X: -0.5 * s.X, Y: -0.5 * s.Y, Z: -0.5 * s.Z}
}

func (c *CollisionComponent) ScaledBoundingBoxMax() replicated.Vector3 {
	s := c.Scale()
	return replicated.Vector3{X: 0.5 * s.X, Y: 0.5 * s.Y, Z: 0.5 * s.Z}
}

func DefaultSphereRadius() float64 { return defaultSphereRadius }

func DefaultCapsuleHalfWidth() float64 { return defaultCapsuleHalfWidth }

func DefaultCapsuleHalfHeight() float64 { return defaultCapsuleHalfHeight }
