package beresheet

// Thruster defines a thruster interface.
type Thruster interface {
	// Returns the thrust in Newtons.
	Thrust() float64
	// Returns the fuel consumed per second of firing.
	BurnRate() float64
}

/* Available thrusters */

// Engine is a fixed thrust chemical engine.
type Engine struct {
	thrust float64
	burn   float64
}

// Thrust implements the Thruster interface.
func (e Engine) Thrust() float64 {
	return e.thrust
}

// BurnRate implements the Thruster interface.
func (e Engine) BurnRate() float64 {
	return e.burn
}

// NewEngine returns a fixed thrust engine.
func NewEngine(thrust, burn float64) Engine {
	return Engine{thrust, burn}
}

// MainEngine is Beresheet's main engine: 430 N for 12 liters per minute.
var MainEngine = NewEngine(430, 0.15)

// SideEngine is one of Beresheet's attitude thrusters: 25 N for 0.6 liters per minute.
var SideEngine = NewEngine(25, 0.009)
