package hagelin

import "fmt"

// PluginState is the current step of the setup wizard. States are ordered.
type PluginState int

const (
	ModelSelection PluginState = iota
	WheelsSelection
	BarsSelection
	InnerKeySetupPins
	InnerKeySetupLugs
	ExternalKeySetup
	ModeOpGroup
	Encryption
	EncryptionDone
)

var stateNames = [...]string{
	ModelSelection:    "ModelSelection",
	WheelsSelection:   "WheelsSelection",
	BarsSelection:     "BarsSelection",
	InnerKeySetupPins: "InnerKeySetupPins",
	InnerKeySetupLugs: "InnerKeySetupLugs",
	ExternalKeySetup:  "ExternalKeySetup",
	ModeOpGroup:       "ModeOpGroup",
	Encryption:        "Encryption",
	EncryptionDone:    "EncryptionDone",
}

func (s PluginState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("PluginState(%d)", int(s))
}

// Group is a set of related settings the wizard shows or hides together.
type Group int

const (
	GroupModel Group = iota
	GroupWheels
	GroupBars
	GroupPins
	GroupLugs
	GroupExternalKey
	GroupModeOp
	GroupText
	GroupSummary
)

// Groups lists every group in display order.
var Groups = []Group{
	GroupModel, GroupWheels, GroupBars, GroupPins, GroupLugs,
	GroupExternalKey, GroupModeOp, GroupText, GroupSummary,
}

var groupNames = [...]string{
	GroupModel:       "Model",
	GroupWheels:      "Wheels",
	GroupBars:        "Bars",
	GroupPins:        "Pins",
	GroupLugs:        "Lugs",
	GroupExternalKey: "ExternalKey",
	GroupModeOp:      "ModeOp",
	GroupText:        "Text",
	GroupSummary:     "Summary",
}

func (g Group) String() string {
	if g >= 0 && int(g) < len(groupNames) {
		return groupNames[g]
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

type stateView struct {
	groups []Group
	hint   string
}

var stateViews = map[PluginState]stateView{
	ModelSelection: {
		groups: []Group{GroupModel},
		hint:   "Select the machine model and press Apply.",
	},
	WheelsSelection: {
		groups: []Group{GroupModel, GroupWheels},
		hint:   "Choose the wheel types for each wheel position.",
	},
	BarsSelection: {
		groups: []Group{GroupBars},
		hint:   "Choose the number of bars and the type of each bar.",
	},
	InnerKeySetupPins: {
		groups: []Group{GroupWheels, GroupPins},
		hint:   "Set the active pins of every wheel (inner key, part 1).",
	},
	InnerKeySetupLugs: {
		groups: []Group{GroupBars, GroupLugs},
		hint:   "Set the lugs and cams of every bar (inner key, part 2).",
	},
	ExternalKeySetup: {
		groups: []Group{GroupExternalKey},
		hint:   "Turn the wheels to the message key (external key).",
	},
	ModeOpGroup: {
		groups: []Group{GroupModeOp},
		hint:   "Choose encryption or decryption, the offset and the text options.",
	},
	Encryption: {
		groups: []Group{GroupText, GroupSummary},
		hint:   "The machine is configured. Enter the text to process.",
	},
	EncryptionDone: {
		groups: []Group{GroupText, GroupSummary},
		hint:   "Done. Press Back to change the configuration or Reset to start over.",
	},
}

func (m *Machine) State() PluginState { return m.state }

// Hint is the help message of the current state.
func (m *Machine) Hint() string { return m.hint }

// ShowAll reports whether the show-all override is on.
func (m *Machine) ShowAll() bool { return m.showAll }

// Visible reports whether group g is currently shown.
func (m *Machine) Visible(g Group) bool { return m.visible[g] }

// VisibleGroups lists the shown groups in display order.
func (m *Machine) VisibleGroups() []Group {
	var out []Group
	for _, g := range Groups {
		if m.visible[g] {
			out = append(out, g)
		}
	}
	return out
}

// skipsBars reports whether the bar step is skipped: bars are fixed for
// every model except Custom.
func (m *Machine) skipsBars(s PluginState) bool {
	return s == BarsSelection && m.model != ModelCustom
}

// Apply advances the wizard by one step.
func (m *Machine) Apply() error {
	if m.state >= Encryption {
		return nil
	}
	next := m.state + 1
	if m.skipsBars(next) {
		next++
	}
	return m.moveTo(next)
}

// Back returns the wizard to the previous step.
func (m *Machine) Back() error {
	if m.state <= ModelSelection {
		return nil
	}
	prev := m.state - 1
	if m.skipsBars(prev) {
		prev--
	}
	return m.moveTo(prev)
}

// Reset returns to the CX-52a preset, default settings and the first step.
func (m *Machine) Reset() error {
	if err := m.SetModel(ModelCX52a); err != nil {
		return err
	}
	m.resetSettings()
	m.logger.Info("wizard reset")
	return m.moveTo(ModelSelection)
}

func (m *Machine) moveTo(s PluginState) error {
	if err := m.SetPluginToState(s); err != nil {
		return err
	}
	if m.state != s {
		m.logger.WithField("from", m.state).WithField("to", s).Debug("wizard transition")
		m.state = s
		m.events.emit("PluginState", s)
	}
	return nil
}

// SetPluginToState hides every group and shows the ones belonging to s,
// together with its hint. It does not change the current state. With the
// show-all override on, every group stays visible.
func (m *Machine) SetPluginToState(s PluginState) error {
	view, ok := stateViews[s]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownState, s)
	}
	shown := make(map[Group]bool, len(view.groups))
	for _, g := range view.groups {
		shown[g] = true
	}
	for _, g := range Groups {
		m.setGroupVisible(g, shown[g] || m.showAll)
	}
	if m.hint != view.hint {
		m.hint = view.hint
		m.events.emit("Hint", view.hint)
	}
	return nil
}

// SetShowAll turns the show-all override on or off. Turning it off restores
// exactly what the current state shows.
func (m *Machine) SetShowAll(v bool) error {
	if m.showAll != v {
		m.showAll = v
		m.events.emit("ShowAll", v)
	}
	if v {
		m.revealAll()
		return nil
	}
	return m.SetPluginToState(m.state)
}

func (m *Machine) revealAll() {
	for _, g := range Groups {
		m.setGroupVisible(g, true)
	}
}

func (m *Machine) setGroupVisible(g Group, v bool) {
	if m.visible[g] == v {
		return
	}
	m.visible[g] = v
	m.events.emit("Visible"+g.String(), v)
}
