package beresheet

const (
	// G is Newton's gravitational constant in m³/(kg·s²).
	G = 6.674e-11
)

/* Kinematics. All functions take the time step dt in seconds. */

// VelocityDelta returns the velocity gained over dt under a constant acceleration.
func VelocityDelta(dt, acc float64) float64 {
	return dt * acc
}

// Displacement returns the distance covered over dt from velocity v under a constant acceleration.
func Displacement(dt, v, acc float64) float64 {
	return dt*v + 0.5*dt*dt*acc
}

// AccelerationFromForce is Newton's second law: a = F/m.
// The caller must ensure that mass is not zero.
func AccelerationFromForce(force, mass float64) float64 {
	return force / mass
}

// Torque returns the torque of a force applied at the provided radius.
func Torque(radius, force float64) float64 {
	return radius * force
}

// DiscMoment returns the moment of inertia of a uniform disc about its center.
func DiscMoment(radius, mass float64) float64 {
	return 0.5 * mass * radius * radius
}

// GravitationalForce returns the magnitude of the attraction between two point masses r meters apart.
func GravitationalForce(m1, m2, r float64) float64 {
	return G * m1 * m2 / (r * r)
}

// NormalizeAngle brings an angle in degrees into [-180, 180].
func NormalizeAngle(a float64) float64 {
	for a < -180 {
		a += 360
	}
	for a > 180 {
		a -= 360
	}
	return a
}
