package beresheet

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidBody is returned when a celestial body has a non positive mass or radius.
	ErrInvalidBody = errors.New("beresheet: invalid celestial body")
	// ErrUnknownBody is returned when looking up a body which is not defined.
	ErrUnknownBody = errors.New("beresheet: unknown celestial body")
)

// CelestialBody defines the body being landed on.
// Gravity is the surface acceleration and is negative (i.e. downward).
type CelestialBody struct {
	Name            string
	Mass            float64 // kg
	Radius          float64 // m
	Gravity         float64 // m/s²
	EquatorialSpeed float64 // m/s
	OrbitalSpeed    float64 // m/s
}

// EffectiveGravity returns the surface gravity attenuated by the horizontal speed: it is nil when
// flying at the equatorial speed. The control policy does not use it.
func (c CelestialBody) EffectiveGravity(hSpeed float64) float64 {
	n := math.Abs(hSpeed) / c.EquatorialSpeed
	return (1 - n) * c.Gravity
}

// GravitationalForce returns the force pulling a vehicle of the provided mass toward the surface
// from the provided altitude. The returned value is negative.
func (c CelestialBody) GravitationalForce(mass, altitude float64) float64 {
	return -GravitationalForce(mass, c.Mass, c.Radius+altitude)
}

// Validate returns an error if this body cannot be landed on.
func (c CelestialBody) Validate() error {
	if c.Mass <= 0 {
		return fmt.Errorf("%w: %s mass is %f", ErrInvalidBody, c.Name, c.Mass)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: %s radius is %f", ErrInvalidBody, c.Name, c.Radius)
	}
	return nil
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// CelestialBodyFromString returns the body from its name.
func CelestialBodyFromString(name string) (CelestialBody, error) {
	switch strings.ToLower(name) {
	case "moon":
		return Moon, nil
	default:
		return CelestialBody{}, fmt.Errorf("%w: '%s'", ErrUnknownBody, name)
	}
}

/* Definitions */

// Moon is where Beresheet was headed.
// NOTE: Radius is the historical mission value, which is the lunar diameter.
var Moon = CelestialBody{"Moon", 7.3477e22, 3475e3, -1.622, 1700, 1022}
