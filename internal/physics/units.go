package physics

// GravitationalConstant is G in m³·kg⁻¹·s⁻².
const GravitationalConstant = 6.67408e-11

// Unit scales in SI base units, for ScaledG.
const (
	Kilogram         = 1.0
	EarthMass        = 5.9722e24
	SolarMass        = 1.98847e30
	Second           = 1.0
	Day              = 86400.0
	Year             = 365.25 * Day
	Metre            = 1.0
	AstronomicalUnit = 1.495978707e11
)

// ScaledG returns G for a unit system where one mass unit is massScale kg,
// one time unit is timeScale s and one length unit is lengthScale m.
//
//	g := physics.ScaledG(physics.SolarMass, physics.Year, physics.AstronomicalUnit) // ≈ 4π²
func ScaledG(massScale, timeScale, lengthScale float64) float64 {
	return GravitationalConstant * massScale * timeScale * timeScale / (lengthScale * lengthScale * lengthScale)
}
