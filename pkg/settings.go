package hagelin

import (
	"fmt"
	"strings"
)

// Mode is the direction of operation.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "Encrypt"
	case Decrypt:
		return "Decrypt"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// UnknownSymbolHandling decides what happens to characters outside the
// machine alphabet.
type UnknownSymbolHandling int

const (
	IgnoreUnknown UnknownSymbolHandling = iota
	RemoveUnknown
	ReplaceUnknown
)

func (u UnknownSymbolHandling) String() string {
	switch u {
	case IgnoreUnknown:
		return "Ignore"
	case RemoveUnknown:
		return "Remove"
	case ReplaceUnknown:
		return "Replace"
	}
	return fmt.Sprintf("UnknownSymbolHandling(%d)", int(u))
}

// CaseHandling decides the letter case of the output.
type CaseHandling int

const (
	PreserveCase CaseHandling = iota
	UpperCase
	LowerCase
)

func (c CaseHandling) String() string {
	switch c {
	case PreserveCase:
		return "Preserve"
	case UpperCase:
		return "Upper"
	case LowerCase:
		return "Lower"
	}
	return fmt.Sprintf("CaseHandling(%d)", int(c))
}

const (
	MaxOffset    = 25
	MaxGroupSize = 10
)

// Settings are the operating options of the ModeOpGroup wizard step.
type Settings struct {
	Mode          Mode                  `json:"mode" yaml:"mode"`
	Offset        int                   `json:"offset" yaml:"offset"`
	UnknownSymbol UnknownSymbolHandling `json:"unknownSymbol" yaml:"unknownSymbol"`
	Case          CaseHandling          `json:"case" yaml:"case"`
	GroupSize     int                   `json:"groupSize" yaml:"groupSize"`
}

// DefaultSettings are the values restored by Reset.
func DefaultSettings() Settings {
	return Settings{
		Mode:          Encrypt,
		Offset:        0,
		UnknownSymbol: IgnoreUnknown,
		Case:          PreserveCase,
		GroupSize:     5,
	}
}

func (m *Machine) Settings() Settings { return m.settings }

func (m *Machine) SetMode(v Mode) error {
	if v != Encrypt && v != Decrypt {
		return fmt.Errorf("%w: mode %d", ErrMalformedAttribute, int(v))
	}
	if m.settings.Mode != v {
		m.settings.Mode = v
		m.events.emit("Mode", v)
	}
	return nil
}

// SetOffset sets the letter offset of the external key.
func (m *Machine) SetOffset(v int) error {
	if v < 0 || v > MaxOffset {
		return fmt.Errorf("%w: offset %d outside [0, %d]", ErrMalformedAttribute, v, MaxOffset)
	}
	if m.settings.Offset != v {
		m.settings.Offset = v
		m.events.emit("Offset", v)
	}
	return nil
}

func (m *Machine) SetUnknownSymbolHandling(v UnknownSymbolHandling) error {
	if v < IgnoreUnknown || v > ReplaceUnknown {
		return fmt.Errorf("%w: unknown symbol handling %d", ErrMalformedAttribute, int(v))
	}
	if m.settings.UnknownSymbol != v {
		m.settings.UnknownSymbol = v
		m.events.emit("UnknownSymbolHandling", v)
	}
	return nil
}

func (m *Machine) SetCaseHandling(v CaseHandling) error {
	if v < PreserveCase || v > LowerCase {
		return fmt.Errorf("%w: case handling %d", ErrMalformedAttribute, int(v))
	}
	if m.settings.Case != v {
		m.settings.Case = v
		m.events.emit("CaseHandling", v)
	}
	return nil
}

// SetGroupSize sets the output grouping; 0 disables grouping.
func (m *Machine) SetGroupSize(v int) error {
	if v < 0 || v > MaxGroupSize {
		return fmt.Errorf("%w: group size %d outside [0, %d]", ErrMalformedAttribute, v, MaxGroupSize)
	}
	if m.settings.GroupSize != v {
		m.settings.GroupSize = v
		m.events.emit("GroupSize", v)
	}
	return nil
}

// resetSettings restores the defaults, notifying each field that changes.
func (m *Machine) resetSettings() {
	d := DefaultSettings()
	_ = m.SetMode(d.Mode)
	_ = m.SetOffset(d.Offset)
	_ = m.SetUnknownSymbolHandling(d.UnknownSymbol)
	_ = m.SetCaseHandling(d.Case)
	_ = m.SetGroupSize(d.GroupSize)
}

// ParseMode accepts "encrypt" or "decrypt" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt":
		return Encrypt, nil
	case "decrypt":
		return Decrypt, nil
	}
	return Encrypt, fmt.Errorf("%w: mode %q", ErrMalformedAttribute, s)
}
