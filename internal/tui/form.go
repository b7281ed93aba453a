package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/itaetune/internal/tuning"
	"github.com/san-kum/itaetune/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type field int

const (
	fieldK field = iota
	fieldTheta
	fieldTau
	fieldInput
	fieldController
	fieldCalculate
)

var fieldLabels = [...]string{
	fieldK:          "K (process gain)",
	fieldTheta:      "θ (dead time)",
	fieldTau:        "τ (time constant)",
	fieldInput:      "type of input",
	fieldController: "type of controller",
	fieldCalculate:  "calculate settings",
}

const numFields = int(fieldCalculate) + 1

// Form is the interactive calculator. It holds the five inputs and the
// outcome of the last calculation.
type Form struct {
	cursor  field
	editing bool
	editBuf string

	k, theta, tau float64
	input         tuning.InputType
	controller    tuning.ControllerType
	step          float64
	precision     int

	settings tuning.Settings
	errMsg   string
}

func NewForm(input tuning.InputType, ctrl tuning.ControllerType, p tuning.Process, precision int) Form {
	return Form{
		k:          p.K,
		theta:      p.Theta,
		tau:        p.Tau,
		input:      input,
		controller: ctrl,
		step:       0.1,
		precision:  precision,
	}
}

func (f Form) Init() tea.Cmd { return nil }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if f.editing {
			return f.editKey(msg), nil
		}
		return f.navKey(msg)
	}
	return f, nil
}

func (f Form) navKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return f, tea.Quit
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j", "tab":
		if int(f.cursor) < numFields-1 {
			f.cursor++
		}
	case "left", "h":
		f.adjust(-1)
	case "right", "l":
		f.adjust(1)
	case "c":
		f.calculate()
	case "enter", " ":
		switch f.cursor {
		case fieldK, fieldTheta, fieldTau:
			f.editing = true
			f.editBuf = strconv.FormatFloat(*f.value(f.cursor), 'g', -1, 64)
		case fieldInput, fieldController:
			f.adjust(1)
		case fieldCalculate:
			f.calculate()
		}
	}
	return f, nil
}

func (f Form) editKey(msg tea.KeyMsg) Form {
	switch msg.String() {
	case "enter":
		if v, err := strconv.ParseFloat(f.editBuf, 64); err == nil {
			*f.value(f.cursor) = v
		}
		f.editing = false
		f.editBuf = ""
	case "esc":
		f.editing = false
		f.editBuf = ""
	case "backspace":
		if len(f.editBuf) > 0 {
			f.editBuf = f.editBuf[:len(f.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
				f.editBuf += string(c)
			}
		}
	}
	return f
}

func (f *Form) value(fl field) *float64 {
	switch fl {
	case fieldTheta:
		return &f.theta
	case fieldTau:
		return &f.tau
	default:
		return &f.k
	}
}

func (f *Form) adjust(dir int) {
	switch f.cursor {
	case fieldK, fieldTheta, fieldTau:
		*f.value(f.cursor) += float64(dir) * f.step
	case fieldInput:
		f.input = cycle(tuning.InputTypes(), f.input, dir)
	case fieldController:
		f.controller = cycle(tuning.ControllerTypes(), f.controller, dir)
	}
}

func cycle[T comparable](all []T, cur T, dir int) T {
	for i, v := range all {
		if v == cur {
			return all[(i+dir+len(all))%len(all)]
		}
	}
	return all[0]
}

// calculate mirrors the web calculator: non-positive inputs and unknown
// combinations each get their own message.
func (f *Form) calculate() {
	f.settings = nil
	f.errMsg = ""

	if !(f.k > 0 && f.theta > 0 && f.tau > 0) {
		f.errMsg = viz.MsgNonPositive
		return
	}
	s := tuning.Evaluate(f.input.String(), f.controller.String(), f.k, f.theta, f.tau)
	if s.Empty() {
		f.errMsg = viz.MsgInvalidCombination
		return
	}
	f.settings = s
}

// Settings returns the result of the last successful calculation.
func (f Form) Settings() tuning.Settings { return f.settings }

func (f Form) Err() string { return f.errMsg }

func (f Form) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render("FOPTD Model Controller Settings Calculator") + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 42)) + "\n\n")

	for i := 0; i < numFields; i++ {
		fl := field(i)
		label := fmt.Sprintf("%-20s", fieldLabels[fl])
		val := f.fieldValue(fl)
		if fl == fieldCalculate {
			label, val = "["+fieldLabels[fl]+"]", ""
		}
		if fl == f.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(label) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(label) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case f.errMsg != "":
		b.WriteString("      " + viz.ErrorLine(f.errMsg) + "\n")
	case f.settings != nil:
		for _, line := range strings.Split(viz.ResultPanel(f.settings, f.precision), "\n") {
			b.WriteString("      " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("      " + viz.KeyHint.Render("↑↓ select  ←→ adjust  enter edit  c calculate  q quit") + "\n")

	return b.String()
}

func (f Form) fieldValue(fl field) string {
	switch fl {
	case fieldK, fieldTheta, fieldTau:
		if f.editing && fl == f.cursor {
			return fmt.Sprintf("%10s", f.editBuf+"▋")
		}
		return fmt.Sprintf("%10.5f", *f.value(fl))
	case fieldInput:
		return fmt.Sprintf("%10s", "‹ "+f.input.String()+" ›")
	case fieldController:
		return fmt.Sprintf("%10s", "‹ "+f.controller.String()+" ›")
	}
	return ""
}

func Run(f Form) error {
	p := tea.NewProgram(f, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
