package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/model"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}
	accountsCmd.AddCommand(newAccountsListCommand(opts))
	return accountsCmd
}

func newAccountsListCommand(opts *rootOptions) *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			list := b.chart.All()
			if accountType != "" {
				t := model.AccountType(accountType)
				if !t.Valid() {
					return fmt.Errorf("unknown account type %q", accountType)
				}
				list = b.chart.ByType(t)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tTYPE")
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Code, a.Name, a.Type)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "only list accounts of this type")
	return cmd
}
