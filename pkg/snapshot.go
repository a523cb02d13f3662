package hagelin

// Snapshot is a plain copy of the configuration, suitable for printing as
// JSON or YAML.
type Snapshot struct {
	Model          MachineModel    `json:"model" yaml:"model"`
	SelectedModel  string          `json:"selectedModel" yaml:"selectedModel"`
	NumberOfWheels int             `json:"numberOfWheels" yaml:"numberOfWheels"`
	NumberOfBars   int             `json:"numberOfBars" yaml:"numberOfBars"`
	Wheels         []WheelSnapshot `json:"wheels" yaml:"wheels"`
	Bars           []BarSnapshot   `json:"bars" yaml:"bars"`
	SelectedWheels string          `json:"selectedWheels" yaml:"selectedWheels"`
	SelectedBars   string          `json:"selectedBars" yaml:"selectedBars"`
	WheelsState    string          `json:"wheelsState" yaml:"wheelsState"`
	Settings       Settings        `json:"settings" yaml:"settings"`
	State          PluginState     `json:"state" yaml:"state"`
}

type WheelSnapshot struct {
	Index        int    `json:"index" yaml:"index"`
	TypeName     string `json:"typeName" yaml:"typeName"`
	InitialState string `json:"initialState" yaml:"initialState"`
	Pins         string `json:"pins" yaml:"pins"`
}

type BarSnapshot struct {
	Index     int       `json:"index" yaml:"index"`
	Type      int       `json:"type" yaml:"type"`
	HasLugs   bool      `json:"hasLugs" yaml:"hasLugs"`
	CamTypes  string    `json:"camTypes" yaml:"camTypes"`
	Lugs      string    `json:"lugs,omitempty" yaml:"lugs,omitempty"`
	ToothType ToothType `json:"toothType" yaml:"toothType"`
}

// Snapshot copies the active part of the configuration. Indexes are 1-based
// to match the property names.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		Model:          m.model,
		SelectedModel:  m.SelectedModel(),
		NumberOfWheels: m.numberOfWheels,
		NumberOfBars:   m.numberOfBars,
		SelectedWheels: m.selectedWheels,
		SelectedBars:   m.selectedBars,
		WheelsState:    m.wheelsState,
		Settings:       m.settings,
		State:          m.state,
	}
	for i, w := range m.wheels[:m.numberOfWheels] {
		s.Wheels = append(s.Wheels, WheelSnapshot{
			Index:        i + 1,
			TypeName:     w.TypeName,
			InitialState: w.InitialState,
			Pins:         w.ActivePins,
		})
	}
	for i, b := range m.bars[:m.numberOfBars] {
		s.Bars = append(s.Bars, BarSnapshot{
			Index:     i + 1,
			Type:      b.CatalogID,
			HasLugs:   b.HasLugs,
			CamTypes:  b.CamPattern,
			Lugs:      b.LugPositions,
			ToothType: b.ToothType,
		})
	}
	return s
}

// Enumerations print by name in JSON and YAML.

func (m MachineModel) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (t ToothType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (s PluginState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (u UnknownSymbolHandling) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (c CaseHandling) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
