package cmd

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	cx52wizard "github.com/cryptosim/hagelin/cmd/cx52-wizard"
	hagelin "github.com/cryptosim/hagelin/pkg"
	"github.com/cryptosim/hagelin/pkg/logging"
)

var (
	wizardModel string
	wizardSeed  int64
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Start the interactive setup wizard",
	Long:  `Walk through model, wheel, bar, pin, lug and key selection one step at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		machine, err := newWizardMachine()
		if err != nil {
			return err
		}
		p := tea.NewProgram(cx52wizard.NewModel(machine), cx52wizard.ProgramOptions()...)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run wizard TUI: %w", err)
		}
		return nil
	},
}

func newWizardMachine() (*hagelin.Machine, error) {
	// Log lines on stderr would be drawn over the TUI.
	wizardLogger := logger
	if config.LogFile == "" {
		wizardLogger = logging.Discard()
	}

	seed := wizardSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	machine, err := hagelin.NewMachine(
		hagelin.WithLogger(wizardLogger),
		hagelin.WithRand(rand.New(rand.NewSource(seed))),
	)
	if err != nil {
		return nil, err
	}

	if wizardModel != "" {
		model, err := hagelin.ParseMachineModel(wizardModel)
		if err != nil {
			return nil, err
		}
		if err := machine.SetModel(model); err != nil {
			return nil, err
		}
	}
	return machine, nil
}

func init() {
	wizardCmd.Flags().StringVarP(&wizardModel, "model", "m", "", "machine model to start from (default CX52a)")
	wizardCmd.Flags().Int64Var(&wizardSeed, "seed", 0, "seed for pin and lug randomisation (0 uses the clock)")
	rootCmd.AddCommand(wizardCmd)
}
