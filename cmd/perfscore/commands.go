package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"perfscore/pkg/report"
	"perfscore/pkg/schema"
)

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score every employee of the sales ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := runSession(cmd, flags)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), a)
			case "table":
				return writeTable(cmd.OutOrStdout(), a)
			}
			return eris.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

func newVariantsCmd(flags *rootFlags) *cobra.Command {
	var dataset string
	cmd := &cobra.Command{
		Use:   "variants NAME",
		Short: "List the monitoring names that belong to an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := schema.Dataset(dataset)
			if ds != schema.DatasetInternet && ds != schema.DatasetApplications {
				return eris.Errorf("unknown dataset %q", dataset)
			}
			a, err := runSession(cmd, flags)
			if err != nil {
				return err
			}
			for _, v := range a.FindVariants(args[0], ds) {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", string(schema.DatasetInternet), "internet or applications")
	return cmd
}

func newCanonicalCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "canonical NAME",
		Short: "Print the ledger name a spelling resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := runSession(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.CanonicalName(args[0]))
			return nil
		},
	}
}

func newCityCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "city NAME",
		Short: "Print the workplace of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := runSession(cmd, flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.CityOf(args[0]))
			return nil
		},
	}
}

func writeJSON(w io.Writer, a *report.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

func writeTable(w io.Writer, a *report.Analysis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "benchmark\tinternet %.2f%%\tapplications %.2f%%\n\n", a.Benchmark.Internet, a.Benchmark.App)
	fmt.Fprintln(tw, "NAME\tCITY\tSALES\tSALES\tMAIL\tCHAT\tINTERNET\tREL.INT\tREL.APP\tOVERALL")
	for _, r := range a.Ranked() {
		s := r.Scores
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%.2f\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\t%.2f\n",
			r.Employee.Name, r.Employee.Workplace, r.Employee.TotalSales,
			s.Sales, s.Mail, s.ChatRisk, s.InternetProductivity,
			s.RelativeInternet, s.RelativeApp, s.Overall)
	}
	if len(a.Diagnostics) > 0 {
		fmt.Fprintln(tw)
		for _, d := range a.Diagnostics {
			fmt.Fprintf(tw, "! %s\t%s\t%s\n", d.Kind, d.Subject, d.Message)
		}
	}
	return tw.Flush()
}
