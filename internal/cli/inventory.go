package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInventoryCommand(withHub hubRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory records",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Args:  cobra.NoArgs,
		RunE: withHub(func(cmd *cobra.Command, _ []string, s *Session) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tSKU\tNAME\tQTY\tPRICE\tSTATUS")
			for _, item := range s.Hub.SearchInventory(query) {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f\t%s\n",
					item.ID, item.SKU, item.Name, item.Quantity, item.Price, item.Status)
			}
			return tw.Flush()
		}),
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter by name or SKU")

	recompute := &cobra.Command{
		Use:   "recompute",
		Short: "Reclassify stock statuses and persist corrections",
		Args:  cobra.NoArgs,
		RunE: withHub(func(cmd *cobra.Command, _ []string, s *Session) error {
			changed, err := s.Hub.RecomputeInventory(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) reclassified\n", changed)
			return err
		}),
	}

	cmd.AddCommand(list, recompute)
	return cmd
}
