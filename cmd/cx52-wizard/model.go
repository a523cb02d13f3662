package cx52wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	hagelin "github.com/cryptosim/hagelin/pkg"
)

// Init initializes the model and returns initial commands
func (m wizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for headers/help; clamp to sensible minimums
		listHeight := msg.Height - 14
		if listHeight < 3 {
			listHeight = 3
		}
		listWidth := msg.Width - 4
		if listWidth < 20 {
			listWidth = 20
		}
		m.barsVP.Width = listWidth
		m.barsVP.Height = listHeight

		m.refreshBarsViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m wizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		err = m.machine.Apply()
		m.cursor = 0
	case "esc":
		err = m.machine.Back()
		m.cursor = 0
	case "ctrl+r":
		err = m.machine.Reset()
		m.cursor = 0
	case "a":
		err = m.machine.SetShowAll(!m.machine.ShowAll())
	case "p":
		m.machine.RandomizePins()
	case "l":
		m.machine.RandomizeLugs()
	case "w":
		m.machine.ResetWheels()
	case "+":
		if m.activeList() == listWheels {
			err = m.machine.RotateWheelUp(m.cursor)
		}
	case "-":
		if m.activeList() == listWheels {
			err = m.machine.RotateWheelDown(m.cursor)
		}
	case " ":
		if m.machine.State() == hagelin.InnerKeySetupPins {
			err = m.togglePin()
		}
	case "up", "k":
		err = m.moveCursor(-1)
	case "down", "j":
		err = m.moveCursor(1)
	case "left":
		err = m.edit(-1)
	case "right":
		err = m.edit(1)
	case "<":
		err = m.resize(-1)
	case ">":
		err = m.resize(1)
	default:
		return m, nil
	}

	m.err = err
	m.clampCursor()
	m.refreshBarsViewport()
	return m, nil
}

// activeList maps the wizard state to the rows the arrow keys address.
func (m wizardModel) activeList() listKind {
	switch m.machine.State() {
	case hagelin.ModelSelection:
		return listModels
	case hagelin.WheelsSelection, hagelin.InnerKeySetupPins, hagelin.ExternalKeySetup:
		return listWheels
	case hagelin.BarsSelection, hagelin.InnerKeySetupLugs:
		return listBars
	case hagelin.ModeOpGroup:
		return listSettings
	}
	return listNone
}

func (m wizardModel) listLen() int {
	switch m.activeList() {
	case listModels:
		return len(hagelin.MachineModels)
	case listWheels:
		return m.machine.NumberOfWheels()
	case listBars:
		return m.machine.NumberOfBars()
	case listSettings:
		return int(settingRowCount)
	}
	return 0
}

func (m *wizardModel) moveCursor(delta int) error {
	if m.activeList() == listModels {
		return m.machine.SetModel(cycleModel(m.machine.Model(), delta))
	}
	m.cursor += delta
	return nil
}

func (m *wizardModel) clampCursor() {
	n := m.listLen()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// edit changes the value on the cursor row.
func (m *wizardModel) edit(delta int) error {
	switch m.machine.State() {
	case hagelin.ModelSelection:
		return m.machine.SetModel(cycleModel(m.machine.Model(), delta))
	case hagelin.WheelsSelection:
		names := m.machine.SupportedWheelTypeNames()
		idx := wrap(m.machine.WheelTypeIndex(m.cursor)+delta, len(names))
		return m.machine.SetWheelTypeName(m.cursor, idx)
	case hagelin.InnerKeySetupPins, hagelin.ExternalKeySetup:
		if delta > 0 {
			return m.machine.RotateWheelUp(m.cursor)
		}
		return m.machine.RotateWheelDown(m.cursor)
	case hagelin.BarsSelection:
		bar, err := m.machine.Bar(m.cursor)
		if err != nil {
			return err
		}
		return m.machine.SetBarTypeID(m.cursor, cycleBarType(bar.CatalogID, delta))
	case hagelin.InnerKeySetupLugs:
		bar, err := m.machine.Bar(m.cursor)
		if err != nil {
			return err
		}
		options := lugOptions(m.machine.NumberOfWheels())
		return m.machine.SetBarLugs(m.cursor, options[wrap(indexOf(options, bar.LugPositions)+delta, len(options))])
	case hagelin.ModeOpGroup:
		return m.editSetting(delta)
	}
	return nil
}

func (m *wizardModel) editSetting(delta int) error {
	s := m.machine.Settings()
	switch settingRow(m.cursor) {
	case rowMode:
		return m.machine.SetMode(hagelin.Mode(wrap(int(s.Mode)+delta, 2)))
	case rowOffset:
		return m.machine.SetOffset(wrap(s.Offset+delta, hagelin.MaxOffset+1))
	case rowUnknown:
		return m.machine.SetUnknownSymbolHandling(hagelin.UnknownSymbolHandling(wrap(int(s.UnknownSymbol)+delta, 3)))
	case rowCase:
		return m.machine.SetCaseHandling(hagelin.CaseHandling(wrap(int(s.Case)+delta, 3)))
	case rowGroupSize:
		size := s.GroupSize + delta
		if size < 0 || size > hagelin.MaxGroupSize {
			return nil
		}
		return m.machine.SetGroupSize(size)
	}
	return nil
}

// resize changes the wheel or bar count; the machine ignores it outside
// the Custom model.
func (m *wizardModel) resize(delta int) error {
	switch m.machine.State() {
	case hagelin.WheelsSelection:
		n := m.machine.NumberOfWheels() + delta
		if n < hagelin.MinWheels || n > hagelin.MaxWheels {
			return nil
		}
		return m.machine.SetNumberOfWheels(n)
	case hagelin.BarsSelection:
		n := m.machine.NumberOfBars() + delta
		if n < hagelin.MinBars || n > hagelin.MaxBars {
			return nil
		}
		return m.machine.SetNumberOfBars(n)
	}
	return nil
}

// togglePin flips the pin under the reading position of the selected wheel.
func (m *wizardModel) togglePin() error {
	w, err := m.machine.Wheel(m.cursor)
	if err != nil {
		return err
	}
	pos := w.Position()
	pins := w.ActivePins
	if strings.Contains(pins, pos) {
		pins = strings.Replace(pins, pos, "", 1)
	} else {
		pins += pos
	}
	return m.machine.SetWheelPins(m.cursor, pins)
}

func cycleModel(current hagelin.MachineModel, delta int) hagelin.MachineModel {
	idx := 0
	for i, model := range hagelin.MachineModels {
		if model == current {
			idx = i
			break
		}
	}
	return hagelin.MachineModels[wrap(idx+delta, len(hagelin.MachineModels))]
}

// cycleBarType steps through catalog ids 1..32. A custom bar (id 0) starts
// from either end.
func cycleBarType(id, delta int) int {
	if id == 0 {
		if delta > 0 {
			return 1
		}
		return len(hagelin.BarTypes)
	}
	return wrap(id-1+delta, len(hagelin.BarTypes)) + 1
}

// lugOptions lists every legal lug setting for n wheels: none, one lug, or
// two lugs on distinct wheels.
func lugOptions(n int) []string {
	options := []string{""}
	for a := 1; a <= n; a++ {
		options = append(options, strconv.Itoa(a))
	}
	for a := 1; a <= n; a++ {
		for b := a + 1; b <= n; b++ {
			options = append(options, fmt.Sprintf("%d,%d", a, b))
		}
	}
	return options
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// refreshBarsViewport rebuilds the bar list view and keeps the selected bar
// in view.
func (m *wizardModel) refreshBarsViewport() {
	m.barsVP.SetContent(m.barsContent())
	selected := -1
	if m.activeList() == listBars {
		selected = m.cursor
	}
	adjustViewportOffset(&m.barsVP, selected, m.machine.NumberOfBars())
}

// adjustViewportOffset scrolls the viewport so the selected index is visible.
func adjustViewportOffset(vp *viewport.Model, selected, total int) {
	if vp.Height <= 0 || total == 0 {
		vp.SetYOffset(0)
		return
	}

	if selected < 0 {
		selected = 0
	}
	if selected >= total {
		selected = total - 1
	}

	maxYOffset := max(total-vp.Height, 0)

	// Scroll up if selection moved above current view
	if selected < vp.YOffset {
		vp.SetYOffset(selected)
		return
	}

	// Scroll down if selection moved below current view
	if selected >= vp.YOffset+vp.Height {
		vp.SetYOffset(min(selected-vp.Height+1, maxYOffset))
		return
	}

	// Clamp if window shrunk
	if vp.YOffset > maxYOffset {
		vp.SetYOffset(maxYOffset)
	}
}
