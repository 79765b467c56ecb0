// Command preduce plans partitions, benchmarks reduction strategies, and compares saved
// benchmark reports
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pass = color.New(color.FgGreen, color.Bold).SprintFunc()
	fail = color.New(color.FgRed, color.Bold).SprintFunc()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "preduce",
		Short:         "Benchmark parallel reduction strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPlanCmd(), newRunCmd(), newVerifyCmd(), newCompareCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", fail("error:"), err)
		os.Exit(1)
	}
}
