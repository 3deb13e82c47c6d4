package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/bidflow"
)

func init() {
	rootCmd.AddCommand(reviewCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactive review console",
	Long: `Interactive review console. Commands:
  list               list RFPs
  select <id>        process an RFP (cancels the current run)
  approve | reject   decide the bid awaiting approval
  export             export the current bid
  stage <path>       stage a PDF for upload
  upload             upload the staged file
  status             show the session
  quit               leave the console`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		listener := app.Listen(ctx, notificationPrinter(os.Stdout))
		defer listener.Stop()
		stopDecisions := app.WatchDecisions(ctx, decisionPrinter(os.Stdout))
		defer stopDecisions()
		if err := app.Machine().Refresh(ctx); err != nil {
			fmt.Fprintf(os.Stdout, "refresh failed: %v\n", err)
		}
		return console(ctx, app, os.Stdin, os.Stdout)
	},
}

func console(ctx context.Context, app *bidflow.Service, in io.Reader, out io.Writer) error {
	machine := app.Machine()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprint(out, "> ")
			continue
		}
		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "list":
			if err = machine.Refresh(ctx); err != nil {
				break
			}
			rfps, listErr := machine.RFPs(ctx)
			err = listErr
			printRFPs(out, rfps)
		case "select":
			if len(fields) != 2 {
				err = fmt.Errorf("usage: select <id>")
				break
			}
			_, err = machine.Select(ctx, fields[1])
		case "approve":
			err = machine.Approve(ctx)
		case "reject":
			err = machine.Reject(ctx)
		case "export":
			result, exportErr := machine.Export(ctx)
			if err = exportErr; err == nil {
				fmt.Fprintf(out, "Proposal written to %s\n", result.URL)
			}
		case "stage":
			if len(fields) != 2 {
				err = fmt.Errorf("usage: stage <path>")
				break
			}
			file, loadErr := app.LoadFile(ctx, fields[1])
			if err = loadErr; err == nil {
				machine.StageUpload(file)
			}
		case "upload":
			rfp, uploadErr := machine.Upload(ctx)
			if err = uploadErr; err == nil {
				fmt.Fprintf(out, "RFP %s created.\n", rfp.ID)
			}
		case "status":
			printSession(out, machine.Session())
			printAffordances(out, machine.Affordances())
		default:
			err = fmt.Errorf("unknown command %q", fields[0])
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
