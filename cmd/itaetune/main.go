package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/itaetune/internal/config"
	"github.com/san-kum/itaetune/internal/export"
	"github.com/san-kum/itaetune/internal/logging"
	"github.com/san-kum/itaetune/internal/report"
	"github.com/san-kum/itaetune/internal/server"
	"github.com/san-kum/itaetune/internal/sweep"
	"github.com/san-kum/itaetune/internal/tui"
	"github.com/san-kum/itaetune/internal/tuning"
	"github.com/san-kum/itaetune/internal/viz"
)

var (
	logLevel   string
	configFile string
	preset     string

	inputType  string
	controller string
	gain       float64
	theta      float64
	tau        float64
	format     string
	precision  int

	// sweep
	ratioFrom float64
	ratioTo   float64
	points    int
	setting   string
	svgPath   string

	addr string

	logger *slog.Logger
)

// shownError marks an error whose message has already been written for the
// user.
type shownError struct{ err error }

func (e shownError) Error() string { return e.err.Error() }
func (e shownError) Unwrap() error { return e.err }

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

var processFlags = []string{"preset", "input", "controller", "k", "theta", "tau"}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "itaetune",
		Short:        "ITAE tuning for PI/PID controllers on FOPTD processes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range processFlags {
				if cmd.Flags().Changed(name) {
					return runCalc(cmd, args)
				}
			}
			// Default to the interactive form when no command given
			return runTUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	addProcessFlags(rootCmd)

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "compute controller settings",
		Args:  cobra.NoArgs,
		RunE:  runCalc,
	}
	addProcessFlags(calcCmd)
	calcCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (panel|table|json|csv|yaml)")
	calcCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "decimal places")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the correlation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.WriteCorrelations(cmd.OutOrStdout(), tuning.Table())
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot a setting across a range of θ/τ ratios",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addProcessFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&ratioFrom, "from", 0.1, "first θ/τ ratio")
	sweepCmd.Flags().Float64Var(&ratioTo, "to", 1.0, "last θ/τ ratio")
	sweepCmd.Flags().IntVar(&points, "points", 60, "number of ratios")
	sweepCmd.Flags().StringVar(&setting, "setting", tuning.KeyKc, "setting to plot (Kc|tau_I|tau_D)")
	sweepCmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart to an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list example processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINPUT\tCTRL\tK\tTHETA\tTAU\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%s\n",
					name, p.Input, p.Controller, p.Process.K, p.Process.Theta, p.Process.Tau, p.Description)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive calculator",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addProcessFlags(tuiCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "decimal places")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "evaluate every case in a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&format, "format", "table", "output format (table|json|csv|yaml)")
	batchCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "decimal places")

	rootCmd.AddCommand(calcCmd, tableCmd, sweepCmd, presetsCmd, tuiCmd, serveCmd, batchCmd)
	return rootCmd
}

func addProcessFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset process")
	cmd.Flags().StringVar(&inputType, "input", config.DefaultInput, "type of input (disturbance|setpoint)")
	cmd.Flags().StringVar(&controller, "controller", config.DefaultController, "type of controller (PI|PID)")
	cmd.Flags().Float64Var(&gain, "k", config.DefaultK, "process gain K")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "dead time θ")
	cmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "time constant τ")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		logger.Debug("applied preset", "preset", preset)
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		logger.Debug("loaded config", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = inputType
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("k") {
		cfg.Process.K = gain
	}
	if flags.Changed("theta") {
		cfg.Process.Theta = theta
	}
	if flags.Changed("tau") {
		cfg.Process.Tau = tau
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = precision
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}

	return cfg, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), viz.ErrorLine(userMessage(err)))
		return shownError{err}
	}

	res, err := calculate(cfg.Input, cfg.Controller, cfg.Process)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), viz.ErrorLine(userMessage(err)))
		return shownError{err}
	}
	logger.Info("calculated", "input", res.Input, "controller", res.Controller, "process", res.Process.String())

	out := cmd.OutOrStdout()
	if cfg.Output.Format == "panel" {
		fmt.Fprintln(out, viz.ResultPanel(res.Settings, cfg.Output.Precision))
		return nil
	}
	return report.Write(out, cfg.Output.Format, cfg.Output.Precision, []report.Result{res})
}

// calculate validates user input the way the calculator form does and then
// evaluates the correlation.
func calculate(input, ctrl string, p tuning.Process) (report.Result, error) {
	res := report.Result{Input: input, Controller: ctrl, Process: p, Settings: tuning.Settings{}}

	in, err := tuning.ParseInputType(input)
	if err != nil {
		return res, fmt.Errorf("%w: %v", tuning.ErrInvalidCombination, err)
	}
	ct, err := tuning.ParseControllerType(ctrl)
	if err != nil {
		return res, fmt.Errorf("%w: %v", tuning.ErrInvalidCombination, err)
	}
	res.Input, res.Controller = in.String(), ct.String()

	if err := p.Validate(); err != nil {
		return res, err
	}

	res.Settings = tuning.Evaluate(res.Input, res.Controller, p.K, p.Theta, p.Tau)
	if res.Settings.Empty() {
		return res, tuning.ErrInvalidCombination
	}
	return res, nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, tuning.ErrInvalidParameter):
		return viz.MsgNonPositive
	case errors.Is(err, tuning.ErrInvalidCombination),
		errors.Is(err, tuning.ErrUnknownInputType),
		errors.Is(err, tuning.ErrUnknownControllerType):
		return viz.MsgInvalidCombination
	}
	return err.Error()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	in, ct, err := cfg.Types()
	if err != nil {
		return err
	}

	series, err := sweep.Run(sweep.Config{
		Input:      in,
		Controller: ct,
		K:          cfg.Process.K,
		Tau:        cfg.Process.Tau,
		From:       ratioFrom,
		To:         ratioTo,
		Points:     points,
	})
	if err != nil {
		return err
	}

	values, ok := series.Values[setting]
	if !ok {
		return fmt.Errorf("%s has no %s setting", ct, setting)
	}
	lo, hi, _ := series.Range(setting)
	logger.Debug("sweep", "setting", setting, "points", len(values), "min", lo, "max", hi)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s, K=%g τ=%g, θ/τ from %g to %g\n\n", in, ct, cfg.Process.K, cfg.Process.Tau, ratioFrom, ratioTo)
	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s vs θ/τ", setting)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintf(out, "\nrange: %.5f .. %.5f\n", lo, hi)

	fmt.Fprintln(out, viz.Separator(70))
	for _, m := range []tuning.Mode{tuning.ModeP, tuning.ModeI, tuning.ModeD} {
		if v, ok := series.Values[m.Key()]; ok {
			fmt.Fprintf(out, "%-6s %s\n", viz.MetricLabel.Render(m.Key()), viz.SparklineChart(v, 60))
		}
	}

	if svgPath == "" {
		return nil
	}
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()
	chart := export.DefaultChart(fmt.Sprintf("%s %s: %s vs θ/τ", in, ct, setting))
	if err := chart.WriteSVG(f, series.Ratios, values); err != nil {
		return err
	}
	logger.Info("wrote chart", "path", svgPath)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	in, ct, err := cfg.Types()
	if err != nil {
		return err
	}
	return tui.Run(tui.NewForm(in, ct, cfg.Process, cfg.Output.Precision))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateOutput(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(logger, cfg.Output.Precision)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateOutput(); err != nil {
		return err
	}

	b, err := config.LoadBatch(args[0])
	if err != nil {
		return err
	}

	results := evaluateBatch(b)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Warn("case failed", "case", r.Name, "err", r.Err)
		}
	}

	f := cfg.Output.Format
	if f == "panel" {
		f = "table"
	}
	if err := report.Write(cmd.OutOrStdout(), f, cfg.Output.Precision, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(results))
	}
	return nil
}

func evaluateBatch(b *config.Batch) []report.Result {
	results := make([]report.Result, 0, len(b.Cases))
	for _, c := range b.Cases {
		res, err := calculate(c.Input, c.Controller, tuning.Process{K: c.K, Theta: c.Theta, Tau: c.Tau})
		res.Name = c.Name
		res.Err = err
		results = append(results, res)
	}
	return results
}
