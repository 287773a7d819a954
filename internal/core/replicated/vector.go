package replicated

import "fmt"

// Vector2 is a two-component float vector property payload.
type Vector2 struct {
	X, Y float64
}

// Vector3 is a three-component float vector property payload.
type Vector3 struct {
	X, Y, Z float64
}

// Vector4 is a four-component float vector property payload,
// conventionally used for quaternion rotations.
type Vector4 struct {
	X, Y, Z, W float64
}

func (v Vector2) String() string {
	return fmt.Sprintf("{%.2f, %.2f}", v.X, v.Y)
}

func (v Vector3) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f}", v.X, v.Y, v.Z)
}

func (v Vector4) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f, %.2f}", v.X, v.Y, v.Z, v.W)
}

// IdentityRotation is the quaternion that leaves orientation unchanged.
func IdentityRotation() Vector4 {
	return Vector4{X: 0, Y: 0, Z: 0, W: 1}
}

// UnitScale is the scale vector that leaves dimensions unchanged.
func UnitScale() Vector3 {
	return Vector3{X: 1, Y: 1, Z: 1}
}
