package beresheet

import (
	"errors"
	"fmt"
)

// ErrInvalidVehicle is returned when a vehicle has a non positive constant.
var ErrInvalidVehicle = errors.New("beresheet: invalid vehicle")

// Vehicle defines a lander with one main engine and SideCount identical side thrusters.
// Fuel is counted as mass: one unit of fuel weighs one kilogram.
type Vehicle struct {
	Name      string
	DryMass   float64 // kg
	Radius    float64 // m
	Main      Thruster
	Side      Thruster
	SideCount float64
}

// TotalWeight returns the mass of the vehicle carrying the provided fuel.
func (v Vehicle) TotalWeight(fuel float64) float64 {
	return v.DryMass + fuel
}

// TotalThrust returns the thrust of all engines firing together.
func (v Vehicle) TotalThrust() float64 {
	return v.Main.Thrust() + v.Side.Thrust()*v.SideCount
}

// FuelRate returns the fuel burnt per second.
func (v Vehicle) FuelRate() float64 {
	return v.Main.BurnRate() + v.Side.BurnRate()*v.SideCount
}

// EngineAcceleration returns the acceleration of all engines firing with the provided fuel on board.
func (v Vehicle) EngineAcceleration(fuel float64) float64 {
	return AccelerationFromForce(v.TotalThrust(), v.TotalWeight(fuel))
}

// AngularAcceleration returns the angular acceleration available to the attitude control.
// The engine acceleration is used as the torque force, which is how Beresheet's controller was tuned.
func (v Vehicle) AngularAcceleration(fuel float64) float64 {
	torque := Torque(v.Radius, v.EngineAcceleration(fuel))
	moment := DiscMoment(v.Radius, v.TotalWeight(fuel))
	return AccelerationFromForce(torque, moment)
}

// Validate returns an error if any of the vehicle constants is not strictly positive.
func (v Vehicle) Validate() error {
	if v.Main == nil || v.Side == nil {
		return fmt.Errorf("%w: %s is missing thrusters", ErrInvalidVehicle, v.Name)
	}
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"dry mass", v.DryMass},
		{"radius", v.Radius},
		{"main thrust", v.Main.Thrust()},
		{"main burn rate", v.Main.BurnRate()},
		{"side thrust", v.Side.Thrust()},
		{"side burn rate", v.Side.BurnRate()},
		{"side thruster count", v.SideCount},
	} {
		if c.val <= 0 {
			return fmt.Errorf("%w: %s %s is %f", ErrInvalidVehicle, v.Name, c.name, c.val)
		}
	}
	return nil
}

// String implements the Stringer interface.
func (v Vehicle) String() string {
	return fmt.Sprintf("%s (dry %.1f kg, thrust %.1f N)", v.Name, v.DryMass, v.TotalThrust())
}

/* Definitions */

// Beresheet is SpaceIL's lander.
var Beresheet = Vehicle{"Beresheet", 165, 0.925, MainEngine, SideEngine, 8}
