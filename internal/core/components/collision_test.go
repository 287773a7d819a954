package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/replicated"
)

func TestCollisionComponent_Defaults(t *testing.T) {
	c := NewCollisionComponent(log.Nop())

	require.Equal(t, replicated.Vector3{}, c.Position())
	require.Equal(t, replicated.Vector4{W: 1}, c.Rotation())
	require.Equal(t, replicated.Vector3{X: 1, Y: 1, Z: 1}, c.Scale())
	require.Equal(t, CollisionShapeBox, c.Shape())
	require.Equal(t, CollisionModeCollision, c.Mode())
	require.Equal(t, "", c.AssetID())
	require.Equal(t, "", c.AssetCollectionID())
	require.Equal(t, "", c.ThirdPartyComponentRef())
}

func TestCollisionComponent_SetAndGet(t *testing.T) {
	c := NewCollisionComponent(log.Nop())

	c.SetPosition(replicated.Vector3{X: 10, Y: 0, Z: -4})
	require.Equal(t, replicated.Vector3{X: 10, Y: 0, Z: -4}, c.Position())

	c.SetShape(CollisionShapeSphere)
	require.Equal(t, CollisionShapeSphere, c.Shape())

	c.SetMode(CollisionModeTrigger)
	require.Equal(t, CollisionModeTrigger, c.Mode())

	c.SetAssetID("collision-mesh-9")
	require.Equal(t, "collision-mesh-9", c.AssetID())
}

func TestCollisionComponent_DirtyTracking(t *testing.T) {
	c := NewCollisionComponent(log.Nop())

	c.SetPosition(replicated.Vector3{X: 1})
	c.SetAssetCollectionID("col-1")

	entries := c.Properties().TakeDirty()
	require.Len(t, entries, 2)
	require.Empty(t, c.Properties().TakeDirty())
}

func TestCollisionComponent_BoundingBoxes(t *testing.T) {
	c := NewCollisionComponent(log.Nop())
	c.SetScale(replicated.Vector3{X: 2, Y: 4, Z: 6})

	require.Equal(t, replicated.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, c.UnscaledBoundingBoxMin())
	require.Equal(t, replicated.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, c.UnscaledBoundingBoxMax())
	require.Equal(t, replicated.Vector3{X: -1, Y: -2, Z: -3}, c.ScaledBoundingBoxMin())
	require.Equal(t, replicated.Vector3{X: 1, Y: 2, Z: 3}, c.ScaledBoundingBoxMax())
}

func TestCollisionComponent_DefaultVolumeConstants(t *testing.T) {
	require.Equal(t, 0.5, DefaultSphereRadius())
	require.Equal(t, 0.5, DefaultCapsuleHalfWidth())
	require.Equal(t, 1.0, DefaultCapsuleHalfHeight())
}
