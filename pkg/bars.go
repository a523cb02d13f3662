package hagelin

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinBars = 1
	MaxBars = 32
)

// Bar is one slide of the drum cage.
type Bar struct {
	HasLugs bool
	// CamPattern has one cam character per wheel.
	CamPattern string
	// LugPositions lists the 1-based wheels the lugs engage, e.g. "1,4".
	LugPositions string
	ToothType    ToothType
	// CatalogID is the BarType id the bar was last decoded from, 0 if the bar
	// has been edited away from a catalog entry.
	CatalogID int
}

// Symbol renders the bar's attributes in BarType form without the id.
func (b Bar) Symbol() string {
	return Symbol(b.HasLugs, b.ToothType, b.CamPattern)
}

func checkBarIndex(i int) error {
	if i < 0 || i >= MaxBars {
		return fmt.Errorf("%w: bar index %d", ErrMalformedAttribute, i)
	}
	return nil
}

func barProp(i int, attr string) string {
	return fmt.Sprintf("Bar%d%s", i+1, attr)
}

// Bar returns a copy of bar i. Inactive bars keep their last configuration.
func (m *Machine) Bar(i int) (Bar, error) {
	if err := checkBarIndex(i); err != nil {
		return Bar{}, err
	}
	return m.bars[i], nil
}

// Bars returns copies of the active bars.
func (m *Machine) Bars() []Bar {
	return append([]Bar(nil), m.bars[:m.numberOfBars]...)
}

// SetBarType decodes bt into bar i, replacing lug presence, tooth type, cam
// pattern and catalog id together. The id must name a catalog entry.
func (m *Machine) SetBarType(i int, bt BarType) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	d, err := Decode(bt, m.bars[i].ToothType)
	if err != nil {
		return err
	}
	if _, ok := LookupBarType(d.CatalogID); !ok {
		return fmt.Errorf("%w: bar type %q is not in the catalog", ErrMalformedAttribute, bt)
	}
	m.setCatalogID(i, d.CatalogID)
	m.setHasLugs(i, d.HasLugs)
	m.setCams(i, fitCams(d.CamPattern, m.numberOfWheels))
	m.setTooth(i, d.ToothType)
	m.updateSelectedBars()
	return nil
}

// SetBarTypeID is the Bar{i}Type property. 0 only marks the bar as custom.
func (m *Machine) SetBarTypeID(i, id int) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	if id == 0 {
		m.setCatalogID(i, 0)
		return nil
	}
	bt, ok := LookupBarType(id)
	if !ok {
		return fmt.Errorf("%w: no bar type with id %d", ErrMalformedAttribute, id)
	}
	return m.SetBarType(i, bt)
}

// CanonicalBarType re-encodes bar i against the catalog. Unlike CatalogID
// it always reflects the bar's current attributes.
func (m *Machine) CanonicalBarType(i int) int {
	if checkBarIndex(i) != nil {
		return 0
	}
	b := m.bars[i]
	return Encode(b.HasLugs, b.ToothType, b.CamPattern, m.numberOfWheels)
}

// SetBarHasLugs edits lug presence directly, which leaves the catalog.
func (m *Machine) SetBarHasLugs(i int, v bool) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	if m.bars[i].HasLugs == v {
		return nil
	}
	m.setHasLugs(i, v)
	m.setCatalogID(i, 0)
	m.updateSelectedBars()
	return nil
}

// SetCamTypes edits the cam pattern directly, which leaves the catalog. The
// pattern must hold one of 0, A, B, C per wheel.
func (m *Machine) SetCamTypes(i int, cams string) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	if err := validateCams(cams, m.numberOfWheels); err != nil {
		return err
	}
	if m.bars[i].CamPattern == cams {
		return nil
	}
	m.setCams(i, cams)
	m.setCatalogID(i, 0)
	m.updateSelectedBars()
	return nil
}

// SetBarToothType edits the tooth type. CatalogID is deliberately left as
// is; use CanonicalBarType to learn whether the bar still matches.
func (m *Machine) SetBarToothType(i int, t ToothType) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	switch t {
	case DisplaceWhenShifted, NeverDisplace, DisplaceWhenNotShifted:
	default:
		return fmt.Errorf("%w: tooth type %d", ErrMalformedAttribute, int(t))
	}
	m.setTooth(i, t)
	m.updateSelectedBars()
	return nil
}

// SetBarLugs sets the lug positions of bar i, e.g. "2,5". Ignored when the
// bar has no lugs.
func (m *Machine) SetBarLugs(i int, lugs string) error {
	if err := checkBarIndex(i); err != nil {
		return err
	}
	if !m.bars[i].HasLugs {
		m.logger.WithField("bar", i+1).Debug("bar has no lugs, ignoring lug edit")
		return nil
	}
	positions, err := parseLugs(lugs)
	if err != nil {
		return err
	}
	m.setLugs(i, formatLugs(positions))
	m.updateSelectedBars()
	return nil
}

func (m *Machine) setCatalogID(i, id int) {
	if m.bars[i].CatalogID == id {
		return
	}
	m.bars[i].CatalogID = id
	m.events.emit(barProp(i, "Type"), id)
}

func (m *Machine) setHasLugs(i int, v bool) {
	if m.bars[i].HasLugs == v {
		return
	}
	m.bars[i].HasLugs = v
	m.events.emit(barProp(i, "HasLugs"), v)
}

func (m *Machine) setCams(i int, cams string) {
	if m.bars[i].CamPattern == cams {
		return
	}
	m.bars[i].CamPattern = cams
	m.events.emit(barProp(i, "CamTypes"), cams)
}

func (m *Machine) setTooth(i int, t ToothType) {
	if m.bars[i].ToothType == t {
		return
	}
	m.bars[i].ToothType = t
	m.events.emit(barProp(i, "ToothType"), t)
}

func (m *Machine) setLugs(i int, lugs string) {
	if m.bars[i].LugPositions == lugs {
		return
	}
	m.bars[i].LugPositions = lugs
	m.events.emit(barProp(i, "Lugs"), lugs)
}

// parseLugs reads up to two distinct 1-based wheel numbers.
func parseLugs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q has more than two lugs", ErrMalformedAttribute, s)
	}
	positions := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > MaxWheels {
			return nil, fmt.Errorf("%w: lug position %q", ErrMalformedAttribute, p)
		}
		for _, have := range positions {
			if have == n {
				return nil, fmt.Errorf("%w: lug position %d repeated", ErrMalformedAttribute, n)
			}
		}
		positions = append(positions, n)
	}
	return positions, nil
}

func formatLugs(positions []int) string {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for k, n := range sorted {
		parts[k] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
