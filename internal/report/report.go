package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/itaetune/internal/tuning"
)

// Result is one evaluated case. Err is set when the case could not be
// evaluated; Settings is then empty.
type Result struct {
	Name       string
	Input      string
	Controller string
	Process    tuning.Process
	Settings   tuning.Settings
	Err        error
}

type exportSetting struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type exportData struct {
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Input      string          `json:"input" yaml:"input"`
	Controller string          `json:"controller" yaml:"controller"`
	K          float64         `json:"k" yaml:"k"`
	Theta      float64         `json:"theta" yaml:"theta"`
	Tau        float64         `json:"tau" yaml:"tau"`
	Settings   []exportSetting `json:"settings" yaml:"settings"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Write renders results in the given format. Values are rounded to
// precision decimals in every format.
func Write(w io.Writer, format string, precision int, results []Result) error {
	switch format {
	case "table", "":
		return writeTable(w, precision, results)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(export(precision, results))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export(precision, results)); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return writeCSV(w, precision, results)
	}
	return fmt.Errorf("report: unknown format %q", format)
}

// FormatValue formats a setting the way every renderer does.
func FormatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func export(precision int, results []Result) []exportData {
	out := make([]exportData, 0, len(results))
	for _, r := range results {
		d := exportData{
			Name:       r.Name,
			Input:      r.Input,
			Controller: r.Controller,
			K:          r.Process.K,
			Theta:      r.Process.Theta,
			Tau:        r.Process.Tau,
			Settings:   make([]exportSetting, 0, len(r.Settings)),
		}
		for _, k := range r.Settings.Keys() {
			v, _ := strconv.ParseFloat(FormatValue(r.Settings[k], precision), 64)
			d.Settings = append(d.Settings, exportSetting{Name: k, Value: v})
		}
		if r.Err != nil {
			d.Error = r.Err.Error()
		}
		out = append(out, d)
	}
	return out
}

func writeTable(w io.Writer, precision int, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUT\tCTRL\tK\tTHETA\tTAU\tKc\ttau_I\ttau_D")

	for _, r := range results {
		row := fmt.Sprintf("%s\t%s\t%s\t%g\t%g\t%g",
			orDash(r.Name), r.Input, r.Controller, r.Process.K, r.Process.Theta, r.Process.Tau)
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\n", row, r.Err)
			continue
		}
		for _, k := range []string{tuning.KeyKc, tuning.KeyTauI, tuning.KeyTauD} {
			v, ok := r.Settings[k]
			if !ok {
				row += "\t-"
				continue
			}
			row += "\t" + FormatValue(v, precision)
		}
		fmt.Fprintln(tw, row)
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, precision int, results []Result) error {
	cw := csv.NewWriter(w)

	header := []string{"name", "input", "controller", "k", "theta", "tau", "Kc", "tau_I", "tau_D", "error"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Name,
			r.Input,
			r.Controller,
			strconv.FormatFloat(r.Process.K, 'g', -1, 64),
			strconv.FormatFloat(r.Process.Theta, 'g', -1, 64),
			strconv.FormatFloat(r.Process.Tau, 'g', -1, 64),
		}
		for _, k := range []string{tuning.KeyKc, tuning.KeyTauI, tuning.KeyTauD} {
			if v, ok := r.Settings[k]; ok {
				row = append(row, FormatValue(v, precision))
			} else {
				row = append(row, "")
			}
		}
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		row = append(row, errText)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
