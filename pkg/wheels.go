package hagelin

import (
	"fmt"
	"slices"
	"strings"
)

const (
	MinWheels     = 1
	MaxWheels     = 6
	DefaultWheels = 6
)

const (
	upperLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerLabels = "abcdefghijklmnopqrstuvwxyz"
)

// WheelType is a physical pin wheel: its name and the labels engraved on
// its rim, in rotational order. The labels are also its canonical start state.
type WheelType struct {
	Name   string
	Labels string
}

// Size is the number of pin positions.
func (w WheelType) Size() int { return len(w.Labels) }

// sizedLabels labels a CX-52 wheel: capitals first, then lower case.
func sizedLabels(n int) string {
	return (upperLabels + lowerLabels)[:n]
}

// WheelTypes is the full catalog of known wheel types.
var WheelTypes = []WheelType{
	{Name: "25", Labels: sizedLabels(25)},
	{Name: "26", Labels: sizedLabels(26)},
	{Name: "29", Labels: sizedLabels(29)},
	{Name: "31", Labels: sizedLabels(31)},
	{Name: "34", Labels: sizedLabels(34)},
	{Name: "37", Labels: sizedLabels(37)},
	{Name: "38", Labels: sizedLabels(38)},
	{Name: "41", Labels: sizedLabels(41)},
	{Name: "42", Labels: sizedLabels(42)},
	{Name: "43", Labels: sizedLabels(43)},
	{Name: "46", Labels: sizedLabels(46)},
	{Name: "47", Labels: sizedLabels(47)},
	// M-209 wheels skip letters that do not fit their pin count.
	{Name: "M209-26", Labels: upperLabels},
	{Name: "M209-25", Labels: "ABCDEFGHIJKLMNOPQRSTUVXYZ"},
	{Name: "M209-23", Labels: "ABCDEFGHIJKLMNOPQRSTUVX"},
	{Name: "M209-21", Labels: upperLabels[:21]},
	{Name: "M209-19", Labels: upperLabels[:19]},
	{Name: "M209-17", Labels: upperLabels[:17]},
}

// LookupWheelType finds a wheel type by name.
func LookupWheelType(name string) (WheelType, bool) {
	for _, wt := range WheelTypes {
		if wt.Name == name {
			return wt, true
		}
	}
	return WheelType{}, false
}

func allWheelTypeNames() []string {
	names := make([]string, 0, len(WheelTypes))
	for _, wt := range WheelTypes {
		names = append(names, wt.Name)
	}
	return names
}

// dedupeNames keeps the first occurrence of each name, preserving order,
// because wheel type selection is index based.
func dedupeNames(catalog []string) []string {
	out := make([]string, 0, len(catalog))
	for _, name := range catalog {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Wheel is one pin wheel slot of the machine.
type Wheel struct {
	TypeName string
	// InitialState is the label sequence starting at the current position.
	InitialState string
	// ActivePins lists the labels of engaged pins in wheel order.
	ActivePins string
}

// Position is the label currently at the reading position.
func (w Wheel) Position() string {
	if w.InitialState == "" {
		return ""
	}
	return w.InitialState[:1]
}

// defaultPins marks every other absolute position active, offset by the
// wheel index.
func defaultPins(wt WheelType, index int) string {
	var b strings.Builder
	for p := 0; p < wt.Size(); p++ {
		if (p+index)%2 == 0 {
			b.WriteByte(wt.Labels[p])
		}
	}
	return b.String()
}

// normalizePins validates a pin list against the wheel labels and returns
// it in wheel order.
func normalizePins(wt WheelType, pins string) (string, error) {
	active := make(map[byte]bool, len(pins))
	for i := 0; i < len(pins); i++ {
		c := pins[i]
		if strings.IndexByte(wt.Labels, c) < 0 {
			return "", fmt.Errorf("%w: pin %q not on wheel %s", ErrMalformedAttribute, c, wt.Name)
		}
		if active[c] {
			return "", fmt.Errorf("%w: pin %q listed twice", ErrMalformedAttribute, c)
		}
		active[c] = true
	}
	var b strings.Builder
	for i := 0; i < len(wt.Labels); i++ {
		if active[wt.Labels[i]] {
			b.WriteByte(wt.Labels[i])
		}
	}
	return b.String(), nil
}

// rotateTo returns state rotated so label is first, or false when the
// label is not on the wheel.
func rotateTo(state, label string) (string, bool) {
	if len(label) != 1 {
		return state, false
	}
	idx := strings.Index(state, label)
	if idx < 0 {
		return state, false
	}
	return state[idx:] + state[:idx], true
}

func rotateUp(state string) string {
	if len(state) < 2 {
		return state
	}
	return state[1:] + state[:1]
}

func rotateDown(state string) string {
	if len(state) < 2 {
		return state
	}
	n := len(state) - 1
	return state[n:] + state[:n]
}
