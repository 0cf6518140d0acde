// Package physics holds the bodies of a gravitational simulation and the
// pairwise force model acting between them.
//
//   - [Body]: a point/disc mass with position, velocity and initial state
//   - [BodySpec]: the serialisable description a [Body] is built from
//   - [Body.ForceExertedBy]: acceleration contribution from one other body
//   - [Potential], [Force], [SoftenedForce]: pairwise magnitudes
//   - [ScaledG]: the gravitational constant in non-SI units
//
// # Softening
//
// Motion uses a Plummer-softened force by default so that close approaches
// stay finite. The softening length is [Softening] in simulation length
// units. Energy diagnostics always use the unsoftened [Potential].
package physics
