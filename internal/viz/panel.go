package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/itaetune/internal/tuning"
)

// Messages shown when a calculation cannot be made.
const (
	MsgInvalidCombination = "Invalid input combination. Please check your selections."
	MsgNonPositive        = "Please enter positive values for K, θ, and τ."
	MsgSuccess            = "Calculation Successful!"
)

// ResultPanel renders settings in P, I, D order with the given number of
// decimals.
func ResultPanel(s tuning.Settings, precision int) string {
	var b strings.Builder
	b.WriteString(Title.Render("Controller Settings") + "\n")
	b.WriteString(Success.Render(MsgSuccess) + "\n\n")

	for _, k := range s.Keys() {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-6s", k+":")))
		b.WriteString(" ")
		b.WriteString(MetricValue.Render(fmt.Sprintf("%.*f", precision, s[k])))
		b.WriteString("\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func ErrorLine(msg string) string {
	return Failure.Render("✗ " + msg)
}
