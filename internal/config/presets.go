package config

import (
	"sort"

	"github.com/san-kum/itaetune/internal/tuning"
)

// Preset is a named example process with the loop objective it is usually
// tuned for.
type Preset struct {
	Description string
	Input       string
	Controller  string
	Process     tuning.Process
}

var Presets = map[string]Preset{
	"heat-exchanger": {
		Description: "steam-heated exchanger, outlet temperature",
		Input:       "Disturbance", Controller: "PID",
		Process: tuning.Process{K: 1.8, Theta: 0.9, Tau: 6.5},
	},
	"level-tank": {
		Description: "surge tank level on outflow",
		Input:       "Disturbance", Controller: "PI",
		Process: tuning.Process{K: 0.6, Theta: 0.4, Tau: 12.0},
	},
	"flow-loop": {
		Description: "liquid flow through a control valve",
		Input:       "Set point", Controller: "PI",
		Process: tuning.Process{K: 1.1, Theta: 0.2, Tau: 1.5},
	},
	"distillation": {
		Description: "column top composition from reflux",
		Input:       "Set point", Controller: "PID",
		Process: tuning.Process{K: 2.4, Theta: 4.0, Tau: 18.0},
	},
	"equal-lag": {
		Description: "dead time equal to the time constant",
		Input:       "Disturbance", Controller: "PID",
		Process: tuning.Process{K: 1.0, Theta: 3.0, Tau: 3.0},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Input = p.Input
	cfg.Controller = p.Controller
	cfg.Process = p.Process
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
