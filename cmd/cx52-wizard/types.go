package cx52wizard

import (
	"github.com/charmbracelet/bubbles/viewport"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

// listKind says which rows the arrow keys move through in the current state.
type listKind int

const (
	listNone listKind = iota
	listModels
	listWheels
	listBars
	listSettings
)

// settingRow is one editable line of the operating settings group.
type settingRow int

const (
	rowMode settingRow = iota
	rowOffset
	rowUnknown
	rowCase
	rowGroupSize
	settingRowCount
)

// wizardModel holds the UI state around one machine configuration.
type wizardModel struct {
	machine *hagelin.Machine
	changes *changeLog

	// UI state
	cursor        int
	width, height int
	err           error
	barsVP        viewport.Model
}

// changeLog remembers the latest notifications so the footer can show what
// an edit touched. It is shared by pointer because the model is copied on
// every update.
type changeLog struct {
	names []string
	seq   uint64
}

const changeLogSize = 4

func (c *changeLog) record(ch hagelin.Change) {
	c.seq = ch.Seq
	c.names = append(c.names, ch.Name)
	if len(c.names) > changeLogSize {
		c.names = c.names[len(c.names)-changeLogSize:]
	}
}
