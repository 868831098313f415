package control

import "github.com/san-kum/pendsim/internal/dynamo"

// PID regulates state component Index towards Target.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	Index    int
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

func (p *PID) Compute(x dynamo.State, t float64) float64 {
	if p.Index < 0 || p.Index >= len(x) {
		return 0
	}

	err := p.Target - x[p.Index]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return u
	}
	return p.Kp * err
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}

// Params returns tunable parameters for live adjustment
func (p *PID) Params() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	default:
		return errUnknownParam(name)
	}
	return nil
}
