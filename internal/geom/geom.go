// Package geom provides the pose math used by the camera engine and
// placement spots: 3D vectors, position+orientation poses, and linear
// interpolation between them.
//
// Orientation is stored as Euler angles in degrees. The orchestration core
// treats poses as opaque coordinate/orientation pairs; no physics or
// projection math lives here.
package geom

// Vec3 is a 3-component vector.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Lerp returns the linear interpolation between a and b at parameter t.
// t is not clamped; callers are expected to pass values in [0, 1].
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Pose is a position and orientation pair.
type Pose struct {
	Position    Vec3
	Orientation Vec3
}

// Lerp interpolates position and orientation independently between p and
// target at parameter t.
func (p Pose) Lerp(target Pose, t float64) Pose {
	return Pose{
		Position:    p.Position.Lerp(target.Position, t),
		Orientation: p.Orientation.Lerp(target.Orientation, t),
	}
}
