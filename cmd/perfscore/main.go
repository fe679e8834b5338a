package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"perfscore/pkg/config"
	"perfscore/pkg/parser"
	"perfscore/pkg/report"
	"perfscore/pkg/schema"
)

type rootFlags struct {
	configPath        string
	sales             string
	internet          string
	applications      string
	includeTerminated bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "perfscore",
		Short:         "Reconcile sales and usage reports into per-employee scores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (yaml, toml or json)")
	pf.StringVar(&flags.sales, "sales", "", "sales ledger (.xlsx, .xls or .csv)")
	pf.StringVar(&flags.internet, "internet", "", "internet usage report")
	pf.StringVar(&flags.applications, "applications", "", "application usage report")
	pf.BoolVar(&flags.includeTerminated, "include-terminated", false, "keep employees with a termination note")

	root.AddCommand(
		newAnalyzeCmd(flags),
		newVariantsCmd(flags),
		newCanonicalCmd(flags),
		newCityCmd(flags),
	)
	return root
}

// runSession loads configuration and input files and runs one analysis.
func runSession(cmd *cobra.Command, flags *rootFlags) (*report.Analysis, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.sales != "" {
		cfg.Sales.Path = flags.sales
	}
	if flags.internet != "" {
		cfg.Internet.Path = flags.internet
	}
	if flags.applications != "" {
		cfg.Applications.Path = flags.applications
	}
	if cmd.Flags().Changed("include-terminated") {
		cfg.IncludeTerminated = flags.includeTerminated
	}
	if cfg.Sales.Path == "" {
		return nil, eris.New("no sales ledger given (--sales or sales.path)")
	}

	logger := cfg.Logger()
	var in report.Input

	salesRows, warnings, err := parser.LoadSales(cfg.Sales.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load sales ledger")
	}
	in.Sales = salesRows
	in.Diagnostics = append(in.Diagnostics, parser.WarningDiagnostics(cfg.Sales.Path, warnings)...)

	for _, src := range []struct {
		path string
		ds   schema.Dataset
		dst  *[]schema.MonitoringRow
	}{
		{cfg.Internet.Path, schema.DatasetInternet, &in.Internet},
		{cfg.Applications.Path, schema.DatasetApplications, &in.Applications},
	} {
		if src.path == "" {
			continue
		}
		rows, warnings, err := parser.LoadMonitoring(src.path, src.ds)
		if err != nil {
			// A broken monitoring file must not sink the sales scores.
			logger.Error("monitoring dataset skipped", "dataset", string(src.ds), "error", err)
			continue
		}
		*src.dst = rows
		in.Diagnostics = append(in.Diagnostics, parser.WarningDiagnostics(src.path, warnings)...)
	}

	return report.Analyze(in, cfg.Options(logger)), nil
}
