package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prism/internal/view"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print startups whose name or industry matches query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			records := a.store.List(query)
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				if query == "" {
					fmt.Fprintln(out, "No startups yet.")
				} else {
					fmt.Fprintln(out, "No startups found matching your search.")
				}
				return nil
			}
			format, err := view.NewFormatter(a.cfg.View.Locale, a.cfg.View.Currency)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tINDUSTRY\tSTAGE\tFUNDING\tSTATUS")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Name, r.Industry, r.FundingStage, format.CompactCurrency(r.FundingAmount), r.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Bool("json", false, "print records as JSON")
	return cmd
}
