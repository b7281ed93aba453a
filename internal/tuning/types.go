package tuning

import (
	"fmt"
	"strings"
)

type InputType int

const (
	Disturbance InputType = iota
	SetPoint
)

func (t InputType) String() string {
	switch t {
	case Disturbance:
		return "Disturbance"
	case SetPoint:
		return "Set point"
	default:
		return fmt.Sprintf("InputType(%d)", int(t))
	}
}

type ControllerType int

const (
	PI ControllerType = iota
	PID
)

func (c ControllerType) String() string {
	switch c {
	case PI:
		return "PI"
	case PID:
		return "PID"
	default:
		return fmt.Sprintf("ControllerType(%d)", int(c))
	}
}

// Mode is one term of the controller.
type Mode int

const (
	ModeP Mode = iota
	ModeI
	ModeD
)

func (m Mode) String() string {
	switch m {
	case ModeP:
		return "P"
	case ModeI:
		return "I"
	case ModeD:
		return "D"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Key returns the settings key a mode produces.
func (m Mode) Key() string {
	switch m {
	case ModeP:
		return KeyKc
	case ModeI:
		return KeyTauI
	case ModeD:
		return KeyTauD
	default:
		return ""
	}
}

// InputTypes lists the input types in table order.
func InputTypes() []InputType { return []InputType{Disturbance, SetPoint} }

// ControllerTypes lists the controller types in table order.
func ControllerTypes() []ControllerType { return []ControllerType{PI, PID} }

// ParseInputType accepts the canonical names plus the spellings people type
// on a command line ("setpoint", "set-point", "servo", "regulator").
func ParseInputType(s string) (InputType, error) {
	switch normalize(s) {
	case "disturbance", "load", "regulator":
		return Disturbance, nil
	case "setpoint", "sp", "servo":
		return SetPoint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInputType, s)
}

func ParseControllerType(s string) (ControllerType, error) {
	switch normalize(s) {
	case "pi":
		return PI, nil
	case "pid":
		return PID, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownControllerType, s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
