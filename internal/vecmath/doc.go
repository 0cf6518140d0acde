// Package vecmath provides the small vector types used by the simulator.
//
// Two fixed-dimension value types cover everything the physics needs:
//
//   - [Vector2]: positions, velocities and accelerations in the plane
//   - [Vector3]: colors and the occasional 3-component quantity
//
// [VecN] is a slice-backed vector whose dimension is only known at run time.
// It is the only type whose operations can fail with [ErrDimensionMismatch];
// the fixed types are dimension-matched by construction.
//
// Construction from a component list zero-fills missing components and
// rejects extra ones:
//
//	v, err := vecmath.NewVector2(1)      // {1, 0}, nil
//	_, err = vecmath.NewVector2(1, 2, 3) // ErrDimensionIncorrect
package vecmath
