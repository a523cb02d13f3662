package hagelin

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// Machine is the configuration store of one simulator session: the wheel
// and bar tables, the derived summary strings, the operating settings and
// the setup wizard state. It has a single writer and is not safe for
// concurrent use.
type Machine struct {
	model          MachineModel
	numberOfWheels int
	numberOfBars   int
	wheels         [MaxWheels]Wheel
	bars           [MaxBars]Bar

	supportedWheelTypeNames []string

	selectedWheels string
	selectedBars   string
	wheelsState    string

	settings Settings

	state    PluginState
	visible  map[Group]bool
	showAll  bool
	hint     string
	editable bool

	events *Notifier
	logger logrus.FieldLogger
	rand   *rand.Rand
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithRand sets the random source used by RandomizePins and RandomizeLugs.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) { m.rand = r }
}

// NewMachine creates a store initialised to the CX-52a preset with the
// wizard at ModelSelection.
func NewMachine(opts ...Option) (*Machine, error) {
	m := &Machine{
		events:  newNotifier(),
		visible: make(map[Group]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		m.logger = l
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if err := m.Initialize(); err != nil {
		return nil, err
	}
	return m, nil
}

// Initialize performs the bulk construction with notifications suppressed.
func (m *Machine) Initialize() error {
	release := m.events.Suppress()
	defer release()

	if err := m.SetModel(ModelCX52a); err != nil {
		return err
	}
	m.setVisibility()
	m.settings = DefaultSettings()
	m.state = ModelSelection
	return m.SetPluginToState(m.state)
}

// Events exposes the change notifier for listeners.
func (m *Machine) Events() *Notifier { return m.events }

func (m *Machine) Model() MachineModel { return m.model }

func (m *Machine) NumberOfWheels() int { return m.numberOfWheels }

func (m *Machine) NumberOfBars() int { return m.numberOfBars }

// CountsEditable reports whether wheel and bar counts may be changed, which
// is only the case for the Custom model.
func (m *Machine) CountsEditable() bool { return m.editable }

// SupportedWheelTypeNames lists the wheel types selectable for the model.
func (m *Machine) SupportedWheelTypeNames() []string {
	return append([]string(nil), m.supportedWheelTypeNames...)
}

// setVisibility derives what the model lets the user edit.
func (m *Machine) setVisibility() {
	editable := m.model == ModelCustom
	if editable != m.editable {
		m.editable = editable
		m.events.emit("CountsEditable", editable)
	}
}

// SetNumberOfWheels changes the wheel count. Ignored unless the model is Custom.
func (m *Machine) SetNumberOfWheels(n int) error {
	if n < MinWheels || n > MaxWheels {
		return fmt.Errorf("%w: wheel count %d outside [%d, %d]", ErrMalformedAttribute, n, MinWheels, MaxWheels)
	}
	if !m.editable {
		m.logger.WithField("model", m.model).Debug("wheel count is fixed for model")
		return nil
	}
	m.setWheelCount(n)
	m.updateSummaries()
	return nil
}

// SetNumberOfBars changes the active bar count. Ignored unless the model is Custom.
func (m *Machine) SetNumberOfBars(n int) error {
	if n < MinBars || n > MaxBars {
		return fmt.Errorf("%w: bar count %d outside [%d, %d]", ErrMalformedAttribute, n, MinBars, MaxBars)
	}
	if !m.editable {
		m.logger.WithField("model", m.model).Debug("bar count is fixed for model")
		return nil
	}
	m.setBarCount(n)
	m.updateSummaries()
	return nil
}

// setWheelCount keeps every cam pattern as long as the wheel count.
func (m *Machine) setWheelCount(n int) {
	if n == m.numberOfWheels {
		return
	}
	m.numberOfWheels = n
	m.events.emit("NumberOfWheels", n)
	for i := range m.bars {
		m.setCams(i, fitCams(m.bars[i].CamPattern, n))
	}
}

func (m *Machine) setBarCount(n int) {
	if n == m.numberOfBars {
		return
	}
	m.numberOfBars = n
	m.events.emit("NumberOfBars", n)
}

// Wheel returns a copy of wheel i.
func (m *Machine) Wheel(i int) (Wheel, error) {
	if err := checkWheelIndex(i); err != nil {
		return Wheel{}, err
	}
	return m.wheels[i], nil
}

// Wheels returns copies of the active wheels.
func (m *Machine) Wheels() []Wheel {
	return append([]Wheel(nil), m.wheels[:m.numberOfWheels]...)
}

func checkWheelIndex(i int) error {
	if i < 0 || i >= MaxWheels {
		return fmt.Errorf("%w: wheel index %d", ErrMalformedAttribute, i)
	}
	return nil
}

func wheelProp(i int, attr string) string {
	return fmt.Sprintf("Wheel%d%s", i+1, attr)
}

// WheelTypeIndex is the Wheel{i}TypeName property: the index of the wheel's
// type in SupportedWheelTypeNames, or -1.
func (m *Machine) WheelTypeIndex(i int) int {
	if checkWheelIndex(i) != nil {
		return -1
	}
	for idx, name := range m.supportedWheelTypeNames {
		if name == m.wheels[i].TypeName {
			return idx
		}
	}
	return -1
}

// applyWheelSizes rebuilds the selectable names and assigns catalog entries
// cyclically to every wheel slot.
func (m *Machine) applyWheelSizes(catalog []string) {
	var before [MaxWheels]int
	for i := range m.wheels {
		before[i] = m.WheelTypeIndex(i)
	}
	names := dedupeNames(catalog)
	if !slices.Equal(names, m.supportedWheelTypeNames) {
		m.supportedWheelTypeNames = names
		m.events.emit("SupportedWheelTypeNames", m.SupportedWheelTypeNames())
	}
	for i := range m.wheels {
		name := catalog[i%len(catalog)]
		if m.wheels[i].TypeName != name {
			m.assignWheelType(i, name)
			continue
		}
		// Same wheel, but its position in the new name list may differ.
		if idx := m.WheelTypeIndex(i); idx != before[i] {
			m.events.emit(wheelProp(i, "TypeName"), idx)
		}
	}
}

// SetWheelTypeName selects the wheel type by index into
// SupportedWheelTypeNames. Ignored on the M-209.
func (m *Machine) SetWheelTypeName(i, idx int) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	if idx < 0 || idx >= len(m.supportedWheelTypeNames) {
		return fmt.Errorf("%w: wheel type index %d", ErrMalformedAttribute, idx)
	}
	return m.SetWheelType(i, m.supportedWheelTypeNames[idx])
}

// SetWheelType selects the wheel type by name. Ignored on the M-209, whose
// wheels are not interchangeable.
func (m *Machine) SetWheelType(i int, name string) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	if m.model == ModelM209 {
		m.logger.WithField("wheel", i+1).Debug("wheel types are fixed on the M-209")
		return nil
	}
	if !slices.Contains(m.supportedWheelTypeNames, name) {
		return fmt.Errorf("%w: wheel type %q not available for %v", ErrMalformedAttribute, name, m.model)
	}
	m.assignWheelType(i, name)
	return nil
}

func (m *Machine) assignWheelType(i int, name string) {
	if m.wheels[i].TypeName == name {
		return
	}
	wt, ok := LookupWheelType(name)
	if !ok {
		m.logger.WithField("type", name).Error("wheel type missing from catalog")
		return
	}
	m.wheels[i].TypeName = name
	m.events.emit(wheelProp(i, "TypeName"), m.WheelTypeIndex(i))
	m.setInitialState(i, wt.Labels)
	m.setPins(i, defaultPins(wt, i))
	m.updateSelectedWheels()
}

func (m *Machine) setInitialState(i int, state string) {
	if m.wheels[i].InitialState == state {
		return
	}
	m.wheels[i].InitialState = state
	m.events.emit(wheelProp(i, "InitialState"), state)
	m.updateWheelsState()
}

func (m *Machine) setPins(i int, pins string) {
	if m.wheels[i].ActivePins == pins {
		return
	}
	m.wheels[i].ActivePins = pins
	m.events.emit(wheelProp(i, "Pins"), pins)
}

// SetWheelInitialState sets the label sequence of wheel i. The value must
// be a rotation of the wheel's labels.
func (m *Machine) SetWheelInitialState(i int, state string) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	wt, _ := LookupWheelType(m.wheels[i].TypeName)
	if len(state) != wt.Size() || !containsRotation(wt.Labels, state) {
		return fmt.Errorf("%w: %q is not a rotation of wheel %s", ErrMalformedAttribute, state, wt.Name)
	}
	m.setInitialState(i, state)
	return nil
}

func containsRotation(labels, state string) bool {
	if state == "" {
		return labels == ""
	}
	rotated, ok := rotateTo(labels, state[:1])
	return ok && rotated == state
}

// SetWheelPins sets the engaged pins of wheel i as a list of labels.
func (m *Machine) SetWheelPins(i int, pins string) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	wt, _ := LookupWheelType(m.wheels[i].TypeName)
	normalized, err := normalizePins(wt, pins)
	if err != nil {
		return err
	}
	m.setPins(i, normalized)
	return nil
}

// RotateWheelUp advances wheel i by one position.
func (m *Machine) RotateWheelUp(i int) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	m.setInitialState(i, rotateUp(m.wheels[i].InitialState))
	return nil
}

// RotateWheelDown moves wheel i back by one position.
func (m *Machine) RotateWheelDown(i int) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	m.setInitialState(i, rotateDown(m.wheels[i].InitialState))
	return nil
}

// RotateWheelTo turns wheel i until label is at the reading position. A
// label that is not on the wheel is ignored.
func (m *Machine) RotateWheelTo(i int, label string) error {
	if err := checkWheelIndex(i); err != nil {
		return err
	}
	state, ok := rotateTo(m.wheels[i].InitialState, label)
	if !ok {
		return nil
	}
	m.setInitialState(i, state)
	return nil
}

// ResetWheels turns every wheel back to its canonical start state.
func (m *Machine) ResetWheels() {
	for i := range m.wheels {
		wt, ok := LookupWheelType(m.wheels[i].TypeName)
		if !ok {
			continue
		}
		m.setInitialState(i, wt.Labels)
	}
}

// RandomizePins engages each pin of every active wheel with probability 1/2.
func (m *Machine) RandomizePins() {
	for i := 0; i < m.numberOfWheels; i++ {
		wt, _ := LookupWheelType(m.wheels[i].TypeName)
		pins := make([]byte, 0, wt.Size())
		for p := 0; p < wt.Size(); p++ {
			if m.rand.Intn(2) == 1 {
				pins = append(pins, wt.Labels[p])
			}
		}
		m.setPins(i, string(pins))
	}
	m.logger.Debug("pins randomized")
}

// RandomizeLugs places two lugs on distinct wheels for every active bar
// that carries lugs. With a single wheel each bar gets one lug.
func (m *Machine) RandomizeLugs() {
	for i := 0; i < m.numberOfBars; i++ {
		if !m.bars[i].HasLugs {
			continue
		}
		perm := m.rand.Perm(m.numberOfWheels)
		wheels := perm
		if len(wheels) > 2 {
			wheels = perm[:2]
		}
		positions := make([]int, len(wheels))
		for k, w := range wheels {
			positions[k] = w + 1
		}
		m.setLugs(i, formatLugs(positions))
	}
	m.updateSelectedBars()
	m.logger.Debug("lugs randomized")
}
