package tuning

import (
	"fmt"
	"math"
)

// Settings keys.
const (
	KeyKc   = "Kc"
	KeyTauI = "tau_I"
	KeyTauD = "tau_D"
)

var keyOrder = [...]string{KeyKc, KeyTauI, KeyTauD}

// Settings maps a setting name to its value. An empty Settings means the
// input/controller combination had no correlation.
type Settings map[string]float64

func (s Settings) Empty() bool { return len(s) == 0 }

// Keys returns the present keys in P, I, D order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, k := range keyOrder {
		if _, ok := s[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Process is a FOPTD model: gain K, dead time Theta, time constant Tau.
type Process struct {
	K     float64 `json:"k" yaml:"k"`
	Theta float64 `json:"theta" yaml:"theta"`
	Tau   float64 `json:"tau" yaml:"tau"`
}

// Ratio is θ/τ, the controllability ratio every correlation is built on.
func (p Process) Ratio() float64 {
	return p.Theta / p.Tau
}

// Validate rejects parameters the correlations are undefined for.
func (p Process) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"K", p.K},
		{"theta", p.Theta},
		{"tau", p.Tau},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 1) {
			return &ParameterError{Name: f.name, Value: f.v}
		}
	}
	return nil
}

func (p Process) String() string {
	return fmt.Sprintf("K=%g θ=%g τ=%g", p.K, p.Theta, p.Tau)
}

// Evaluate applies the correlation to p. Inputs are not validated.
func (c Correlation) Evaluate(p Process) Settings {
	r := p.Ratio()
	s := make(Settings, 3)
	for _, m := range c.Modes() {
		co, _ := c.Coefficient(m)
		switch m {
		case ModeP:
			s[KeyKc] = co.A * math.Pow(r, co.B) / p.K
		case ModeI:
			if c.Input == SetPoint {
				s[KeyTauI] = p.Tau / (co.A + co.B*r)
			} else {
				s[KeyTauI] = p.Tau / (co.A * math.Pow(r, co.B))
			}
		case ModeD:
			s[KeyTauD] = co.A * math.Pow(r, co.B)
		}
	}
	return s
}

// Evaluate computes controller settings for the named input type
// ("Disturbance" or "Set point") and controller type ("PI" or "PID").
// Names are matched exactly; any other pair yields an empty Settings.
func Evaluate(inputType, controllerType string, k, theta, tau float64) Settings {
	in, ok := exactInputType(inputType)
	if !ok {
		return Settings{}
	}
	ctrl, ok := exactControllerType(controllerType)
	if !ok {
		return Settings{}
	}
	c, ok := Lookup(in, ctrl)
	if !ok {
		return Settings{}
	}
	return c.Evaluate(Process{K: k, Theta: theta, Tau: tau})
}

// Calculate is the typed form of Evaluate. It validates p and reports an
// unknown pair as ErrInvalidCombination.
func Calculate(in InputType, ctrl ControllerType, p Process) (Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, ok := Lookup(in, ctrl)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrInvalidCombination, in, ctrl)
	}
	return c.Evaluate(p), nil
}

func exactInputType(s string) (InputType, bool) {
	for _, t := range InputTypes() {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

func exactControllerType(s string) (ControllerType, bool) {
	for _, t := range ControllerTypes() {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}
