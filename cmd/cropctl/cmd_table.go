package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/crop-advisor-service/internal/adapter/tablefile"
	"github.com/spf13/cobra"
)

func newTableCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the crop table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(cmd)
			if err != nil {
				return err
			}
			if asYAML {
				return tablefile.Encode(cmd.OutOrStdout(), table)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SOIL\tRAINFALL\tPH\tCROPS")
			for _, e := range table.Entries() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Soil, e.Rainfall, e.Ph, strings.Join(e.Crops, ", "))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print in the YAML table file format")

	return cmd
}
