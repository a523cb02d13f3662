package cx52wizard

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/sirupsen/logrus"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

// ProgramOptions returns default program options.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithAltScreen()}
}

// NewModel creates a wizard bound to machine.
func NewModel(machine *hagelin.Machine) tea.Model {
	return newWizardModel(machine)
}

func newWizardModel(machine *hagelin.Machine) wizardModel {
	changes := &changeLog{}
	machine.Events().OnAll(changes.record)
	return wizardModel{
		machine: machine,
		changes: changes,
		barsVP:  viewport.New(0, 0),
	}
}

// WishHandler exposes the wizard over an SSH session. Every session gets
// its own machine.
func WishHandler(logger logrus.FieldLogger) func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		sessionLog := logger.WithFields(logrus.Fields{
			"user":   s.User(),
			"remote": s.RemoteAddr().String(),
		})
		machine, err := hagelin.NewMachine(hagelin.WithLogger(sessionLog))
		if err != nil {
			sessionLog.WithError(err).Error("failed to create machine")
			return errorModel{err: err}, ProgramOptions()
		}
		sessionLog.Info("wizard session started")
		return NewModel(machine), ProgramOptions()
	}
}

// errorModel reports a session that could not be set up and exits on any key.
type errorModel struct {
	err error
}

func (m errorModel) Init() tea.Cmd { return nil }

func (m errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m errorModel) View() string {
	return errorStyle.Render("Error: "+m.err.Error()) + "\n" + helpStyle.Render("Any key: Exit")
}
