package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/go-sif/preduce/datasource"
	"github.com/go-sif/preduce/harness"
	"github.com/go-sif/preduce/internal/util"
	"github.com/go-sif/preduce/partition"
	"github.com/go-sif/preduce/report"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var length, workers int
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the partitions a threaded strategy would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := partition.Plan(length, workers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, p := range parts {
				fmt.Fprintf(out, "%d\t%s\t%d\n", i, p, p.Len())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", 0, "input length")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "number of workers")
	return cmd
}

func newRunCmd() *cobra.Command {
	var configPath string
	flagged := defaultRunConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark reduction strategies over one dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadRunConfig(configPath)
			if err != nil {
				return err
			}
			conf.overrideFrom(cmd, flagged)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runBenchmarks(ctx, cmd.OutOrStdout(), conf)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file; explicit flags take precedence")
	flagged.bindFlags(cmd)
	return cmd
}

func runBenchmarks(ctx context.Context, out io.Writer, conf *runConfig) error {
	tags, err := conf.strategyTags()
	if err != nil {
		return err
	}
	sweep, err := conf.harnessOptions()
	if err != nil {
		return err
	}
	defer sweep[0].Logger.Sync()
	job, err := buildJob(conf)
	if err != nil {
		return err
	}
	digest := datasource.Digest(job.Input)
	reports := make([]*harness.Report[float64], 0, len(tags)*len(sweep))
	for _, opts := range sweep {
		for _, tag := range tags {
			r, err := harness.Run(ctx, tag, job, opts)
			if err != nil {
				return fmt.Errorf("%s with %d workers failed: %w", tag, opts.Workers, err)
			}
			r.InputDigest = digest
			reports = append(reports, r)
		}
	}
	printReports(out, reports)
	verifyErr := printVerification(out, reports)
	if len(conf.Out) > 0 {
		if err := report.SaveFile(conf.Out, report.NewFile(conf.Label, reports...)); err != nil {
			return err
		}
	}
	return verifyErr
}

func printReports(out io.Writer, reports []*harness.Report[float64]) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tWORKERS\tMIN\tMEDIAN\tMEAN\tSTDDEV\tALLOCS\tRESULT")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%.1f\t%g\n",
			r.Strategy, r.Workers, r.Elapsed.Min, r.Elapsed.Median, r.Elapsed.Mean, r.Elapsed.StdDev, r.MeanAllocs, r.Result())
	}
	w.Flush()
}

func printVerification(out io.Writer, reports []*harness.Report[float64]) error {
	err := harness.Verify(harness.DefaultTolerance, reports...)
	if err == nil {
		fmt.Fprintf(out, "%s all strategies agree within %g\n", pass("PASS"), harness.DefaultTolerance)
		return nil
	}
	fmt.Fprintf(out, "%s strategies disagree\n", fail("FAIL"))
	if merr, ok := err.(*multierror.Error); ok {
		fmt.Fprint(out, util.FormatMultiError(merr.Errors))
	}
	return err
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <report-file>",
		Short: "Check that the strategies in a saved report agree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.LoadFile[float64](args[0])
			if err != nil {
				return err
			}
			return printVerification(cmd.OutOrStdout(), f.Reports)
		},
	}
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <baseline-file> <current-file>",
		Short: "Compare median times of a saved report against a baseline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, err := report.LoadFile[float64](args[0])
			if err != nil {
				return err
			}
			current, err := report.LoadFile[float64](args[1])
			if err != nil {
				return err
			}
			comparisons, err := report.Compare(baseline, current)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STRATEGY\tWORKERS\tBASELINE\tCURRENT\tSPEEDUP")
			for _, c := range comparisons {
				speedup := fmt.Sprintf("%.2fx", c.Speedup)
				if c.Speedup >= 1 {
					speedup = pass(speedup)
				} else {
					speedup = fail(speedup)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", c.Strategy, c.Workers, c.BaselineMedian, c.CurrentMedian, speedup)
			}
			return w.Flush()
		},
	}
}
