// Package sweep evaluates one controller setting across a range of θ/τ
// ratios for a fixed process gain and time constant.
package sweep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/itaetune/internal/tuning"
)

var ErrRange = errors.New("sweep: ratio range must satisfy 0 < from < to and points >= 2")

type Config struct {
	Input      tuning.InputType
	Controller tuning.ControllerType
	K          float64
	Tau        float64
	From       float64
	To         float64
	Points     int
}

// Series holds one value per swept ratio. Values is keyed by setting name.
type Series struct {
	Ratios []float64
	Values map[string][]float64
}

func Run(cfg Config) (*Series, error) {
	if !(cfg.From > 0) || !(cfg.To > cfg.From) || cfg.Points < 2 {
		return nil, fmt.Errorf("%w: from=%g to=%g points=%d", ErrRange, cfg.From, cfg.To, cfg.Points)
	}
	corr, ok := tuning.Lookup(cfg.Input, cfg.Controller)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", tuning.ErrInvalidCombination, cfg.Input, cfg.Controller)
	}
	base := tuning.Process{K: cfg.K, Theta: cfg.From * cfg.Tau, Tau: cfg.Tau}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	ratios := floats.Span(make([]float64, cfg.Points), cfg.From, cfg.To)

	s := &Series{
		Ratios: ratios,
		Values: make(map[string][]float64),
	}
	for _, m := range corr.Modes() {
		s.Values[m.Key()] = make([]float64, 0, cfg.Points)
	}

	for _, r := range ratios {
		p := tuning.Process{K: cfg.K, Theta: r * cfg.Tau, Tau: cfg.Tau}
		for k, v := range corr.Evaluate(p) {
			s.Values[k] = append(s.Values[k], v)
		}
	}

	return s, nil
}

// Range returns the minimum and maximum of one swept setting.
func (s *Series) Range(key string) (lo, hi float64, ok bool) {
	v, ok := s.Values[key]
	if !ok || len(v) == 0 {
		return 0, 0, false
	}
	return floats.Min(v), floats.Max(v), true
}
