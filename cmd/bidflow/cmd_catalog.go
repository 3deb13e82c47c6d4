package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/viant/bidflow/model"
)

func init() {
	rootCmd.AddCommand(rfpsCmd, productsCmd, analyticsCmd, exportsCmd)
	rfpsCmd.Flags().StringSlice("status", nil, "only list RFPs with these statuses")
}

var rfpsCmd = &cobra.Command{
	Use:   "rfps",
	Short: "List RFPs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machine := app.Machine()
		if err := machine.Refresh(cmd.Context()); err != nil {
			return err
		}
		values, _ := cmd.Flags().GetStringSlice("status")
		statuses := make([]model.Status, len(values))
		for i, value := range values {
			statuses[i] = model.Status(value)
		}
		rfps, err := machine.RFPs(cmd.Context(), statuses...)
		if err != nil {
			return err
		}
		printRFPs(os.Stdout, rfps)
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := app.Client().ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		printProducts(os.Stdout, products)
		return nil
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show pipeline analytics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analytics, err := app.Client().GetAnalytics(cmd.Context())
		if err != nil {
			return err
		}
		printAnalytics(os.Stdout, analytics)
		return nil
	},
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List exported proposals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := app.Exporter().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No exported proposals.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED\tURL")
		for _, result := range results {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", result.Name, result.Size, result.ModTime.Format("2006-01-02 15:04"), result.URL)
		}
		return w.Flush()
	},
}
