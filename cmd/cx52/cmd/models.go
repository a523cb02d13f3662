package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the machine models and their layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := modelRows()
		if err != nil {
			return err
		}
		t := newTable("Model", "Name", "Wheels", "Bars", "Wheel types").Rows(rows...)
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

// modelRows applies every model to a scratch machine and reports the
// result.
func modelRows() ([][]string, error) {
	machine, err := hagelin.NewMachine(hagelin.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(hagelin.MachineModels))
	for _, model := range hagelin.MachineModels {
		if err := machine.SetModel(model); err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			model.String(),
			model.DisplayName(),
			strconv.Itoa(machine.NumberOfWheels()),
			strconv.Itoa(machine.NumberOfBars()),
			strings.Join(machine.SupportedWheelTypeNames(), ","),
		})
	}
	return rows, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
