package beresheet

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState is returned when an initial state cannot be propagated.
var ErrInvalidState = errors.New("beresheet: invalid state")

const (
	// maxAngSpeed is the angular speed (deg/s) above which the attitude control stops accelerating the rotation.
	maxAngSpeed = 0.3
)

// State is the mutable state of a landing. Speeds are positive upward and forward, angles are in degrees.
type State struct {
	Time     int     // s
	Altitude float64 // m, negative once the ground has been reached
	Fuel     float64
	VSpeed   float64 // m/s
	HSpeed   float64 // m/s
	VAcc     float64 // m/s², recomputed every tick
	HAcc     float64 // m/s², recomputed every tick
	Angle    float64 // deg, in [-180, 180]
	AngSpeed float64 // deg/s
	AngAcc   float64 // deg/s², recomputed every tick
}

// InitialState returns the state at the start of the landing maneuver above the provided body.
func InitialState(body CelestialBody) State {
	return State{
		Altitude: 30000,
		Fuel:     420 / 2,
		HSpeed:   body.EquatorialSpeed,
		Angle:    90,
	}
}

// Validate returns an error if the state contains NaN or infinite values.
func (s State) Validate() error {
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"altitude", s.Altitude},
		{"fuel", s.Fuel},
		{"vertical speed", s.VSpeed},
		{"horizontal speed", s.HSpeed},
		{"angle", s.Angle},
		{"angular speed", s.AngSpeed},
	} {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			return fmt.Errorf("%w: %s is %f", ErrInvalidState, c.name, c.val)
		}
	}
	return nil
}

// Weight returns the total mass of the provided vehicle in this state.
func (s State) Weight(v Vehicle) float64 {
	return v.TotalWeight(s.Fuel)
}

// verticalThreshold returns the descent speed below which the engines fire at the provided altitude.
func verticalThreshold(altitude float64) float64 {
	switch {
	case altitude > 10000:
		return -100
	case altitude > 1000:
		return -50
	case altitude > 100:
		return -10
	default:
		return -5
	}
}

// Tick returns the state after dt seconds. The accelerations are computed from the provided state,
// the rotation is integrated before the translation and the fuel is burnt whether or not engines fired.
func Tick(s State, body CelestialBody, v Vehicle, dt float64) State {
	// Gravity only, there is no gravitational acceleration on the horizontal axis.
	weight := v.TotalWeight(s.Fuel)
	s.HAcc = 0
	s.VAcc = AccelerationFromForce(body.GravitationalForce(weight, s.Altitude), weight)

	// Engines are either off or at full thrust.
	thrust := v.EngineAcceleration(s.Fuel)
	if s.HSpeed > body.OrbitalSpeed {
		s.HAcc -= thrust
	}
	if s.VSpeed < verticalThreshold(s.Altitude) {
		s.VAcc += thrust
	}

	// Attitude control, clockwise when tilted positively.
	angular := v.AngularAcceleration(s.Fuel)
	switch {
	case s.Angle > 0 && s.AngSpeed > -maxAngSpeed:
		s.AngAcc = -angular
	case s.Angle < 0 && s.AngSpeed < maxAngSpeed:
		s.AngAcc = angular
	default:
		s.AngAcc = 0
	}
	s.AngSpeed += VelocityDelta(dt, s.AngAcc)
	s.Angle = NormalizeAngle(s.Angle + Displacement(dt, s.AngSpeed, s.AngAcc))

	s.Altitude += Displacement(dt, s.VSpeed, s.VAcc)
	s.Fuel -= dt * v.FuelRate()
	s.HSpeed += VelocityDelta(dt, s.HAcc)
	s.VSpeed += VelocityDelta(dt, s.VAcc)
	return s
}
