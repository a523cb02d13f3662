package hagelin

import "strings"

// SelectedModel is the display name of the current model.
func (m *Machine) SelectedModel() string { return m.model.DisplayName() }

// SelectedWheels lists the active wheel types, e.g. "47,43,41,37,31,29".
func (m *Machine) SelectedWheels() string { return m.selectedWheels }

// SelectedBars lists every active bar as its symbol, with "@" and the lug
// positions appended when lugs are set: "ldB00000@1,4 ud000000".
func (m *Machine) SelectedBars() string { return m.selectedBars }

// WheelsState is the label at the reading position of each active wheel.
func (m *Machine) WheelsState() string { return m.wheelsState }

func (m *Machine) updateSummaries() {
	m.updateSelectedWheels()
	m.updateSelectedBars()
	m.updateWheelsState()
}

// Each aggregate only notifies when its text differs from before.

func (m *Machine) updateSelectedWheels() {
	names := make([]string, 0, m.numberOfWheels)
	for _, w := range m.wheels[:m.numberOfWheels] {
		names = append(names, w.TypeName)
	}
	text := strings.Join(names, ",")
	if text == m.selectedWheels {
		return
	}
	m.selectedWheels = text
	m.events.emit("SelectedWheels", text)
}

func (m *Machine) updateSelectedBars() {
	parts := make([]string, 0, m.numberOfBars)
	for _, b := range m.bars[:m.numberOfBars] {
		s := b.Symbol()
		if b.LugPositions != "" {
			s += "@" + b.LugPositions
		}
		parts = append(parts, s)
	}
	text := strings.Join(parts, " ")
	if text == m.selectedBars {
		return
	}
	m.selectedBars = text
	m.events.emit("SelectedBars", text)
}

func (m *Machine) updateWheelsState() {
	var b strings.Builder
	for _, w := range m.wheels[:m.numberOfWheels] {
		b.WriteString(w.Position())
	}
	text := b.String()
	if text == m.wheelsState {
		return
	}
	m.wheelsState = text
	m.events.emit("WheelsState", text)
}
