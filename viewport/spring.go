// Package viewport implements the horizontal scroll offset and spring
// animation associated with a scroll-kind layout. Both types are pure
// functions of a caller-supplied clock: nothing here starts a timer or
// spawns a goroutine, matching the engine's single-threaded,
// clock-driven concurrency model.
package viewport

import (
	"math"
	"time"
)

// Spring is a damped-harmonic-oscillator animator. Its value and velocity
// at any instant are closed-form functions of the elapsed time since the
// spring was created or last retargeted.
type Spring struct {
	initialValue    float64
	targetValue     float64
	initialVelocity float64
	startTime       time.Time
	response        float64
	dampingFraction float64
	omegaN          float64
	omegaD          float64
	zeta            float64
}

// NewSpring builds a spring with explicit response and damping fraction.
// response is the characteristic settling time in seconds; dampingFraction
// >= 1 is critically/over-damped, < 1 is under-damped (oscillates).
func NewSpring(initialValue, targetValue, initialVelocity, response, dampingFraction float64, now time.Time) Spring {
	omegaN := 2 * math.Pi / response
	zeta := dampingFraction
	omegaD := omegaN * math.Sqrt(math.Max(1-zeta*zeta, 0))
	return Spring{
		initialValue:    initialValue,
		targetValue:     targetValue,
		initialVelocity: initialVelocity,
		startTime:       now,
		response:        response,
		dampingFraction: dampingFraction,
		omegaN:          omegaN,
		omegaD:          omegaD,
		zeta:            zeta,
	}
}

// NewSpringWithDefaults builds a spring using the viewport's standard feel
// (response 0.5s, critically damped, zero initial velocity).
func NewSpringWithDefaults(initialValue, targetValue float64, now time.Time) Spring {
	return NewSpring(initialValue, targetValue, 0, 0.5, 1.0, now)
}

// Retarget samples the spring's current value and velocity at now, then
// relaunches it toward newTarget from there — preserving continuity of
// both position and velocity across the retarget.
func (s *Spring) Retarget(newTarget float64, now time.Time) {
	current := s.ValueAt(now)
	vel := s.VelocityAt(now)
	s.initialValue = current
	s.targetValue = newTarget
	s.initialVelocity = vel
	s.startTime = now
}

// ValueAt returns the spring's displacement at the given instant.
func (s Spring) ValueAt(at time.Time) float64 {
	t := at.Sub(s.startTime).Seconds()
	x0 := s.initialValue - s.targetValue
	v0 := s.initialVelocity

	var displacement float64
	if s.zeta >= 1.0 {
		decay := math.Exp(-s.omegaN * t)
		displacement = decay * (x0 + (v0+s.omegaN*x0)*t)
	} else {
		decay := math.Exp(-s.zeta * s.omegaN * t)
		cosPart := x0 * math.Cos(s.omegaD*t)
		sinPart := ((v0 + s.zeta*s.omegaN*x0) / s.omegaD) * math.Sin(s.omegaD*t)
		displacement = decay * (cosPart + sinPart)
	}
	return s.targetValue + displacement
}

// VelocityAt returns the spring's velocity at the given instant.
func (s Spring) VelocityAt(at time.Time) float64 {
	t := at.Sub(s.startTime).Seconds()
	x0 := s.initialValue - s.targetValue
	v0 := s.initialVelocity

	if s.zeta >= 1.0 {
		decay := math.Exp(-s.omegaN * t)
		a := v0 + s.omegaN*x0
		return decay * (a - s.omegaN*(x0+a*t))
	}
	decay := math.Exp(-s.zeta * s.omegaN * t)
	b := (v0 + s.zeta*s.omegaN*x0) / s.omegaD
	cosT := math.Cos(s.omegaD * t)
	sinT := math.Sin(s.omegaD * t)
	return decay * ((-s.zeta*s.omegaN)*(x0*cosT+b*sinT) + (-x0*s.omegaD*sinT + b*s.omegaD*cosT))
}

// IsComplete reports whether the spring has settled: both displacement
// and velocity are within 0.5 units of target, and at least 10ms have
// elapsed since the spring started (so a retarget never reports complete
// on the same tick it was issued).
func (s Spring) IsComplete(at time.Time) bool {
	t := at.Sub(s.startTime).Seconds()
	if t < 0.01 {
		return false
	}
	val := s.ValueAt(at)
	vel := s.VelocityAt(at)
	return math.Abs(val-s.targetValue) < 0.5 && math.Abs(vel) < 0.5
}

// Target returns the spring's resting value.
func (s Spring) Target() float64 { return s.targetValue }

// Current is an alias for ValueAt, read as "the spring's value right now".
func (s Spring) Current(now time.Time) float64 { return s.ValueAt(now) }
