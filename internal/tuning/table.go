package tuning

// Coefficient is one (A, B) pair of a correlation.
type Coefficient struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// Correlation holds the coefficients for one input/controller combination.
// D is only meaningful when HasD is set.
type Correlation struct {
	Input      InputType
	Controller ControllerType
	P          Coefficient
	I          Coefficient
	D          Coefficient
	HasD       bool
}

// ITAE correlations (Smith & Corripio).
var table = [...]Correlation{
	{
		Input: Disturbance, Controller: PI,
		P: Coefficient{0.859, -0.977},
		I: Coefficient{0.674, -0.680},
	},
	{
		Input: Disturbance, Controller: PID,
		P:    Coefficient{1.357, -0.947},
		I:    Coefficient{0.842, -0.738},
		D:    Coefficient{0.381, 0.995},
		HasD: true,
	},
	{
		Input: SetPoint, Controller: PI,
		P: Coefficient{0.586, -0.916},
		I: Coefficient{1.03, -0.165},
	},
	{
		Input: SetPoint, Controller: PID,
		P:    Coefficient{0.965, -0.850},
		I:    Coefficient{0.796, -0.1465},
		D:    Coefficient{0.308, 0.929},
		HasD: true,
	},
}

// Lookup returns the correlation for an input/controller pair.
func Lookup(in InputType, ctrl ControllerType) (Correlation, bool) {
	for _, c := range table {
		if c.Input == in && c.Controller == ctrl {
			return c, true
		}
	}
	return Correlation{}, false
}

// Table returns a copy of every correlation in table order.
func Table() []Correlation {
	out := make([]Correlation, len(table))
	copy(out, table[:])
	return out
}

// Modes returns the controller terms this correlation covers, in P, I, D order.
func (c Correlation) Modes() []Mode {
	if c.HasD {
		return []Mode{ModeP, ModeI, ModeD}
	}
	return []Mode{ModeP, ModeI}
}

func (c Correlation) Coefficient(m Mode) (Coefficient, bool) {
	switch m {
	case ModeP:
		return c.P, true
	case ModeI:
		return c.I, true
	case ModeD:
		return c.D, c.HasD
	}
	return Coefficient{}, false
}
