package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

var presetFormat string

var presetCmd = &cobra.Command{
	Use:   "preset <model>",
	Short: "Print the configuration a machine model starts from",
	Long:  `Apply a machine model to a fresh configuration and print every wheel and bar as YAML or JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := hagelin.ParseMachineModel(args[0])
		if err != nil {
			return err
		}
		out, err := renderPreset(model, presetFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func renderPreset(model hagelin.MachineModel, format string) ([]byte, error) {
	machine, err := hagelin.NewMachine(hagelin.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := machine.SetModel(model); err != nil {
		return nil, err
	}
	snapshot := machine.Snapshot()

	switch format {
	case "yaml":
		return yaml.Marshal(snapshot)
	case "json":
		out, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format %q, expected yaml or json", format)
}

func init() {
	presetCmd.Flags().StringVarP(&presetFormat, "format", "f", "yaml", "output format: yaml or json")
	rootCmd.AddCommand(presetCmd)
}
