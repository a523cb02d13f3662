package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

var barTypesCmd = &cobra.Command{
	Use:   "bartypes",
	Short: "List the bar type catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := barTypeRows()
		if err != nil {
			return err
		}
		t := newTable("ID", "Bar type", "Lugs", "Tooth", "Cams").Rows(rows...)
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func barTypeRows() ([][]string, error) {
	rows := make([][]string, 0, len(hagelin.BarTypes))
	for _, bt := range hagelin.BarTypes {
		d, err := hagelin.Decode(bt, hagelin.DisplaceWhenShifted)
		if err != nil {
			return nil, err
		}
		lugs := "no"
		if d.HasLugs {
			lugs = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(d.CatalogID),
			string(bt),
			lugs,
			d.ToothType.String(),
			d.CamPattern,
		})
	}
	return rows, nil
}

func init() {
	rootCmd.AddCommand(barTypesCmd)
}
