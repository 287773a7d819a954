package components

import (
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/property"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

// Property keys replicated for an animated model component. The reserved
// slot keeps the index of a retired key so later keys never shift.
const (
	AnimatedModelName property.Key = iota
	AnimatedModelAssetID
	AnimatedModelAssetCollectionID
	AnimatedModelPosition
	AnimatedModelRotation
	AnimatedModelScale
	AnimatedModelIsLoopPlayback
	AnimatedModelIsPlaying
	AnimatedModelIsVisible
	animatedModelReserved
	AnimatedModelAnimationIndex
	AnimatedModelIsARVisible
	AnimatedModelThirdPartyComponentRef
	animatedModelKeyCount
)

// AnimatedModelAction is a playback command applied to an animated model.
type AnimatedModelAction int

const (
	AnimatedModelActionPlay AnimatedModelAction = iota
	AnimatedModelActionPause
	AnimatedModelActionRestart
)

var animatedModelSchema = property.NewSchema("AnimatedModel", []property.Slot{
	AnimatedModelName:                   {Kind: replicated.KindString},
	AnimatedModelAssetID:                {Kind: replicated.KindString},
	AnimatedModelAssetCollectionID:      {Kind: replicated.KindString},
	AnimatedModelPosition:               {Kind: replicated.KindVector3},
	AnimatedModelRotation:               {Kind: replicated.KindVector4, Default: replicated.Vec4(replicated.IdentityRotation())},
	AnimatedModelScale:                  {Kind: replicated.KindVector3, Default: replicated.Vec3(replicated.UnitScale())},
	AnimatedModelIsLoopPlayback:         {Kind: replicated.KindBoolean},
	AnimatedModelIsPlaying:              {Kind: replicated.KindBoolean},
	AnimatedModelIsVisible:              {Kind: replicated.KindBoolean, Default: replicated.Bool(true)},
	animatedModelReserved:               property.Reserved(),
	AnimatedModelAnimationIndex:         {Kind: replicated.KindInteger, Default: replicated.Int(-1)},
	AnimatedModelIsARVisible:            {Kind: replicated.KindBoolean, Default: replicated.Bool(true)},
	AnimatedModelThirdPartyComponentRef: {Kind: replicated.KindString},
})

// AnimatedModelComponent is the replicated animated model attached to a
// space entity.
type AnimatedModelComponent struct {
	Base
}

func NewAnimatedModelComponent(logger *log.Logger) *AnimatedModelComponent {
	return &AnimatedModelComponent{Base: newBase(TypeAnimatedModel, animatedModelSchema, logger)}
}

func (c *AnimatedModelComponent) Name() string {
	return c.stringProperty(AnimatedModelName)
}

func (c *AnimatedModelComponent) SetName(name string) {
	c.setProperty(AnimatedModelName, replicated.String(name))
}

// ModelAssetID is kept for senders that predate LOD collections.
func (c *AnimatedModelComponent) ModelAssetID() string {
	return c.stringProperty(AnimatedModelAssetID)
}

func (c *AnimatedModelComponent) SetModelAssetID(id string) {
	c.setProperty(AnimatedModelAssetID, replicated.String(id))
}

func (c *AnimatedModelComponent) AssetCollectionID() string {
	return c.stringProperty(AnimatedModelAssetCollectionID)
}

func (c *AnimatedModelComponent) SetAssetCollectionID(id string) {
	c.setProperty(AnimatedModelAssetCollectionID, replicated.String(id))
}

func (c *AnimatedModelComponent) Position() replicated.Vector3 {
	return c.vector3Property(AnimatedModelPosition)
}

func (c *AnimatedModelComponent) SetPosition(v replicated.Vector3) {
	c.setProperty(AnimatedModelPosition, replicated.Vec3(v))
}

func (c *AnimatedModelComponent) Rotation() replicated.Vector4 {
	return c.vector4Property(AnimatedModelRotation)
}

func (c *AnimatedModelComponent) SetRotation(v replicated.Vector4) {
	c.setProperty(AnimatedModelRotation, replicated.Vec4(v))
}

func (c *AnimatedModelComponent) Scale() replicated.Vector3 {
	return c.vector3Property(AnimatedModelScale)
}

func (c *AnimatedModelComponent) SetScale(v replicated.Vector3) {
	c.setProperty(AnimatedModelScale, replicated.Vec3(v))
}

func (c *AnimatedModelComponent) IsLoopPlayback() bool {
	return c.boolProperty(AnimatedModelIsLoopPlayback)
}

func (c *AnimatedModelComponent) SetIsLoopPlayback(v bool) {
	c.setProperty(AnimatedModelIsLoopPlayback, replicated.Bool(v))
}

func (c *AnimatedModelComponent) IsPlaying() bool {
	return c.boolProperty(AnimatedModelIsPlaying)
}

func (c *AnimatedModelComponent) SetIsPlaying(v bool) {
	c.setProperty(AnimatedModelIsPlaying, replicated.Bool(v))
}

func (c *AnimatedModelComponent) IsVisible() bool {
	return c.boolProperty(AnimatedModelIsVisible)
}

func (c *AnimatedModelComponent) SetIsVisible(v bool) {
	c.setProperty(AnimatedModelIsVisible, replicated.Bool(v))
}

func (c *AnimatedModelComponent) AnimationIndex() int64 {
	return c.intProperty(AnimatedModelAnimationIndex)
}

func (c *AnimatedModelComponent) SetAnimationIndex(v int64) {
	c.setProperty(AnimatedModelAnimationIndex, replicated.Int(v))
}

func (c *AnimatedModelComponent) IsARVisible() bool {
	return c.boolProperty(AnimatedModelIsARVisible)
}

func (c *AnimatedModelComponent) SetIsARVisible(v bool) {
	c.setProperty(AnimatedModelIsARVisible, replicated.Bool(v))
}

func (c *AnimatedModelComponent) ThirdPartyComponentRef() string {
	return c.stringProperty(AnimatedModelThirdPartyComponentRef)
}

func (c *AnimatedModelComponent) SetThirdPartyComponentRef(ref string) {
	c.setProperty(AnimatedModelThirdPartyComponentRef, replicated.String(ref))
}

// Apply translates a playback action into the replicated playback flags.
func (c *AnimatedModelComponent) Apply(action AnimatedModelAction) {
	switch action {
	case AnimatedModelActionPlay:
		c.SetIsPlaying(true)
	case AnimatedModelActionPause:
		c.SetIsPlaying(false)
	case AnimatedModelActionRestart:
		c.SetIsPlaying(true)
		c.SetAnimationIndex(c.AnimationIndex())
	}
}
