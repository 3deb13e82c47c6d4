package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uploadCmd)
}

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload an RFP document (PDF only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := app.LoadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		machine := app.Machine()
		machine.StageUpload(file)
		rfp, err := machine.Upload(cmd.Context())
		if err != nil {
			return fmt.Errorf("upload: %w", err)
		}
		fmt.Fprintf(os.Stdout, "RFP %s created for %q.\n", rfp.ID, rfp.Client)
		return nil
	},
}
