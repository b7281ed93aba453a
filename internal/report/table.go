package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/itaetune/internal/tuning"
)

// WriteCorrelations prints the coefficient table, one row per mode.
func WriteCorrelations(w io.Writer, table []tuning.Correlation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tCTRL\tMODE\tA\tB\tFORMULA")

	for _, c := range table {
		for _, m := range c.Modes() {
			co, _ := c.Coefficient(m)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%s\n", c.Input, c.Controller, m, co.A, co.B, formula(c.Input, m))
		}
	}

	return tw.Flush()
}

func formula(in tuning.InputType, m tuning.Mode) string {
	switch m {
	case tuning.ModeP:
		return "Kc = A(θ/τ)^B / K"
	case tuning.ModeI:
		if in == tuning.SetPoint {
			return "τI = τ / (A + B(θ/τ))"
		}
		return "τI = τ / (A(θ/τ)^B)"
	case tuning.ModeD:
		return "τD = A(θ/τ)^B"
	}
	return ""
}
