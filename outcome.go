package beresheet

const (
	msgSuccess    = "The Eagle has landed!"
	msgError      = "Houston.. We have a problem."
	msgErrorSpeed = "We crashed! :(\nThe speed was too high."
	msgErrorAngle = "We crashed! :(\nCouldn't land on our feet."
	msgErrorFuel  = "Out of fuel!"

	// maxLandingSpeed is the fastest safe descent speed at touchdown (m/s, downward).
	maxLandingSpeed = 5.
	// maxLandingAngle is the largest safe tilt at touchdown (deg).
	maxLandingAngle = 5.
)

// Outcome is the terminal result of a landing.
type Outcome uint8

const (
	// Success means the vehicle touched down slowly enough and upright.
	Success Outcome = iota
	// OutOfFuel means the fuel ran out before touchdown, or on the same tick.
	OutOfFuel
	// CrashSpeed means the vehicle hit the ground too fast.
	CrashSpeed
	// CrashAngle means the vehicle hit the ground too tilted.
	CrashAngle
)

// Failed returns whether this outcome is a failure.
func (o Outcome) Failed() bool {
	return o != Success
}

// Message returns the message shown to the crew.
func (o Outcome) Message() string {
	switch o {
	case Success:
		return msgSuccess
	case OutOfFuel:
		return msgError + "\n" + msgErrorFuel
	case CrashSpeed:
		return msgError + "\n" + msgErrorSpeed
	case CrashAngle:
		return msgError + "\n" + msgErrorAngle
	default:
		return msgError
	}
}

// String implements the Stringer interface.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case OutOfFuel:
		return "out-of-fuel"
	case CrashSpeed:
		return "crash-speed"
	case CrashAngle:
		return "crash-angle"
	default:
		return "unknown"
	}
}

// Classify returns the outcome of a landing which ended in the provided state.
// Running out of fuel takes priority over anything which happened at touchdown.
func Classify(s State) Outcome {
	if s.Fuel <= 0 {
		return OutOfFuel
	}
	if s.VSpeed < -maxLandingSpeed {
		return CrashSpeed
	}
	if s.Angle < -maxLandingAngle || s.Angle > maxLandingAngle {
		return CrashAngle
	}
	return Success
}
