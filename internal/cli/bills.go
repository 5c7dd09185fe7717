package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
)

func newBillsCommand(withHub hubRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Generated bills",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent bills",
		Args:  cobra.NoArgs,
		RunE: withHub(func(cmd *cobra.Command, _ []string, s *Session) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tITEMS\tTOTAL")
			for _, b := range s.Hub.RecentBills(limit) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\n",
					b.ID, b.Date.Format("2006-01-02 15:04"), b.Customer.Name, len(b.Products), b.Total)
			}
			return tw.Flush()
		}),
	}
	list.Flags().IntVarP(&limit, "limit", "n", 10, "number of bills to show")

	var output string
	invoice := &cobra.Command{
		Use:   "invoice <bill-id>",
		Short: "Write a bill's PDF invoice",
		Args:  cobra.ExactArgs(1),
		RunE: withHub(func(cmd *cobra.Command, args []string, s *Session) error {
			bill, err := s.Hub.Bill(args[0])
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = bill.ID + ".pdf"
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := billing.RenderInvoice(f, bill, s.Business); err != nil {
				_ = f.Close()
				return fmt.Errorf("render invoice %s: %w", bill.ID, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		}),
	}
	invoice.Flags().StringVarP(&output, "output", "o", "", "output file (default <bill-id>.pdf)")

	cmd.AddCommand(list, invoice)
	return cmd
}
