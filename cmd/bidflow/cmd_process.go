package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/workflow"
)

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().Bool("approve", false, "approve the bid")
	processCmd.Flags().Bool("reject", false, "reject the bid")
	processCmd.Flags().Float64("auto-min-confidence", 0, "approve when confidence reaches this percentage, reject otherwise")
	processCmd.Flags().Bool("export", false, "export the proposal document")
	processCmd.MarkFlagsMutuallyExclusive("approve", "reject", "auto-min-confidence")
}

var processCmd = &cobra.Command{
	Use:   "process <rfp-id>",
	Short: "Process an RFP and optionally decide and export its bid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		listener := app.Listen(ctx, notificationPrinter(os.Stdout))
		defer listener.Stop()

		machine := app.Machine()
		if err := machine.Refresh(ctx); err != nil {
			return err
		}
		run, err := machine.Select(ctx, args[0])
		if err != nil {
			return err
		}
		if err = run.Wait(ctx); err != nil {
			return fmt.Errorf("process %s: %w", args[0], err)
		}
		printBid(os.Stdout, machine.Session().Bid)

		var decide approval.DecisionFunc
		switch {
		case cmd.Flags().Changed("approve"):
			decide = approval.ApproveAll()
		case cmd.Flags().Changed("reject"):
			decide = approval.RejectAll("rejected by operator")
		case cmd.Flags().Changed("auto-min-confidence"):
			minConfidence, _ := cmd.Flags().GetFloat64("auto-min-confidence")
			decide = approval.ConfidenceAtLeast(minConfidence)
		}
		if decide != nil {
			if err = machine.Decide(ctx, decide); err != nil {
				return fmt.Errorf("decide: %w", err)
			}
		}
		if doExport, _ := cmd.Flags().GetBool("export"); doExport {
			result, err := machine.Export(ctx)
			if err != nil && !errors.Is(err, workflow.ErrNoBidToExport) {
				return fmt.Errorf("export: %w", err)
			}
			if result != nil {
				fmt.Fprintf(os.Stdout, "Proposal written to %s\n", result.URL)
			}
		}
		fmt.Fprintf(os.Stdout, "Final phase: %s\n", machine.Session().Phase)
		return nil
	},
}
