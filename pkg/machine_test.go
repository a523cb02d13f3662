package hagelin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordChanges collects the names of every change fired while fn runs.
func recordChanges(m *Machine, fn func()) []string {
	var names []string
	unsubscribe := m.Events().OnAll(func(c Change) {
		names = append(names, c.Name)
	})
	defer unsubscribe()
	fn()
	return names
}

func TestSetBarHasLugsDecanonicalizes(t *testing.T) {
	m := newTestMachine(t)

	names := recordChanges(m, func() {
		require.NoError(t, m.SetBarHasLugs(4, false))
	})
	bar, _ := m.Bar(4)
	assert.Equal(t, 0, bar.CatalogID)
	assert.False(t, bar.HasLugs)
	assert.ElementsMatch(t, []string{"Bar5HasLugs", "Bar5Type", "SelectedBars"}, names)
}

func TestSetBarHasLugsSameValueIsNoop(t *testing.T) {
	m := newTestMachine(t)

	names := recordChanges(m, func() {
		require.NoError(t, m.SetBarHasLugs(4, true))
	})
	bar, _ := m.Bar(4)
	assert.Equal(t, 2, bar.CatalogID)
	assert.Empty(t, names)
}

func TestSetCamTypesDecanonicalizes(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.SetCamTypes(0, "A0000C"))
	bar, _ := m.Bar(0)
	assert.Equal(t, "A0000C", bar.CamPattern)
	assert.Equal(t, 0, bar.CatalogID)
	assert.Equal(t, "ldA0000C", strings.Split(m.SelectedBars(), " ")[0])
}

func TestSetCamTypesRejectsMalformed(t *testing.T) {
	m := newTestMachine(t)

	for _, cams := range []string{"A0000", "A0000C0", "A000xC", ""} {
		assert.ErrorIs(t, m.SetCamTypes(0, cams), ErrMalformedAttribute, "cams %q", cams)
	}
	bar, _ := m.Bar(0)
	assert.Equal(t, "000000", bar.CamPattern)
	assert.Equal(t, 1, bar.CatalogID)
}

func TestToothTypeEditKeepsCatalogID(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.SetBarToothType(4, NeverDisplace))
	bar, _ := m.Bar(4)
	assert.Equal(t, NeverDisplace, bar.ToothType)
	assert.Equal(t, 2, bar.CatalogID)
	// The bar now really is lnB00000.
	assert.Equal(t, 21, m.CanonicalBarType(4))

	assert.ErrorIs(t, m.SetBarToothType(4, ToothType(7)), ErrMalformedAttribute)
}

func TestSetBarTypeNotifiesChangedAttributes(t *testing.T) {
	m := newTestMachine(t)

	names := recordChanges(m, func() {
		require.NoError(t, m.SetBarType(0, BarUdCCCCCCNum17))
	})
	assert.ElementsMatch(t, []string{"Bar1Type", "Bar1HasLugs", "Bar1CamTypes", "SelectedBars"}, names)

	bar, _ := m.Bar(0)
	assert.Equal(t, Bar{HasLugs: false, CamPattern: "CCCCCC", ToothType: DisplaceWhenShifted, CatalogID: 17}, bar)
}

func TestSetBarTypeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		bt   BarType
	}{
		{"bad cam characters", "ldZZZZZZnum7"},
		{"bad lug flag", "xd000000num9"},
		{"negative id", "ld000000num-3"},
		{"id outside catalog", "ld000000num99"},
		{"zero id", "ld000000num0"},
		{"truncated", "ldB00000num"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			before, err := m.Bar(0)
			require.NoError(t, err)

			var setErr error
			names := recordChanges(m, func() {
				setErr = m.SetBarType(0, tt.bt)
			})
			assert.ErrorIs(t, setErr, ErrMalformedAttribute)
			assert.Empty(t, names)

			after, err := m.Bar(0)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestSetBarTypeUnknownToothKeepsCurrent(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetBarToothType(0, NeverDisplace))

	require.NoError(t, m.SetBarType(0, "lxB00000num2"))
	bar, err := m.Bar(0)
	require.NoError(t, err)
	assert.Equal(t, NeverDisplace, bar.ToothType)
	assert.Equal(t, "B00000", bar.CamPattern)
	assert.Equal(t, 2, bar.CatalogID)
}

func TestSetBarTypeID(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.SetBarTypeID(3, 22))
	bar, _ := m.Bar(3)
	assert.Equal(t, NeverDisplace, bar.ToothType)
	assert.Equal(t, "CCCCCC", bar.CamPattern)

	require.NoError(t, m.SetBarTypeID(3, 0))
	bar, _ = m.Bar(3)
	assert.Equal(t, 0, bar.CatalogID)
	assert.Equal(t, "CCCCCC", bar.CamPattern)

	assert.ErrorIs(t, m.SetBarTypeID(3, 99), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetBarTypeID(32, 1), ErrMalformedAttribute)
}

func TestSetBarLugs(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.SetBarLugs(0, " 4, 1"))
	bar, _ := m.Bar(0)
	assert.Equal(t, "1,4", bar.LugPositions)
	assert.Equal(t, 1, bar.CatalogID)
	assert.True(t, strings.HasPrefix(m.SelectedBars(), "ld000000@1,4 "))

	require.NoError(t, m.SetBarLugs(0, ""))
	bar, _ = m.Bar(0)
	assert.Equal(t, "", bar.LugPositions)

	for _, lugs := range []string{"1,2,3", "0", "7", "2,2", "x"} {
		assert.ErrorIs(t, m.SetBarLugs(0, lugs), ErrMalformedAttribute, "lugs %q", lugs)
	}
}

func TestSetBarLugsIgnoredWithoutLugs(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52b))

	names := recordChanges(m, func() {
		require.NoError(t, m.SetBarLugs(31, "1,2"))
	})
	bar, _ := m.Bar(31)
	assert.Equal(t, "", bar.LugPositions)
	assert.Empty(t, names)
}

func TestCamLengthFollowsWheelCount(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCustom))
	require.NoError(t, m.SetCamTypes(0, "BACBAC"))

	require.NoError(t, m.SetNumberOfWheels(4))
	bar, _ := m.Bar(0)
	assert.Equal(t, "BACB", bar.CamPattern)
	assert.Len(t, m.Wheels(), 4)
	assert.Len(t, m.WheelsState(), 4)

	require.NoError(t, m.SetNumberOfWheels(6))
	bar, _ = m.Bar(0)
	assert.Equal(t, "BACB00", bar.CamPattern)

	for w1 := MinWheels; w1 <= MaxWheels; w1++ {
		for w2 := MinWheels; w2 <= MaxWheels; w2++ {
			if w1 == w2 {
				continue
			}
			require.NoError(t, m.SetNumberOfWheels(w1))
			require.NoError(t, m.SetNumberOfWheels(w2))
			for i := 0; i < MaxBars; i++ {
				bar, _ := m.Bar(i)
				assert.Len(t, bar.CamPattern, w2, "%d -> %d bar %d", w1, w2, i)
			}
		}
	}
}

func TestCountsFixedOutsideCustom(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.SetNumberOfWheels(3))
	require.NoError(t, m.SetNumberOfBars(10))
	assert.Equal(t, 6, m.NumberOfWheels())
	assert.Equal(t, 32, m.NumberOfBars())

	assert.ErrorIs(t, m.SetNumberOfWheels(7), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetNumberOfBars(0), ErrMalformedAttribute)
}

func TestSetNumberOfBarsCustom(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCustom))

	require.NoError(t, m.SetNumberOfBars(10))
	assert.Len(t, m.Bars(), 10)
	assert.Len(t, strings.Split(m.SelectedBars(), " "), 10)
}

func TestSetWheelType(t *testing.T) {
	m := newTestMachine(t)

	names := recordChanges(m, func() {
		require.NoError(t, m.SetWheelTypeName(0, 11))
	})
	w, _ := m.Wheel(0)
	assert.Equal(t, "25", w.TypeName)
	assert.Equal(t, sizedLabels(25), w.InitialState)
	assert.Equal(t, "ACEGIKMOQSUWY", w.ActivePins)
	assert.Equal(t, 11, m.WheelTypeIndex(0))
	assert.Equal(t, "25,43,41,37,31,29", m.SelectedWheels())
	assert.Contains(t, names, "Wheel1TypeName")
	assert.Contains(t, names, "Wheel1InitialState")
	assert.Contains(t, names, "Wheel1Pins")
	assert.Contains(t, names, "SelectedWheels")

	names = recordChanges(m, func() {
		require.NoError(t, m.SetWheelType(0, "25"))
	})
	assert.Empty(t, names)

	assert.ErrorIs(t, m.SetWheelType(0, "M209-17"), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetWheelTypeName(0, 12), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetWheelTypeName(6, 0), ErrMalformedAttribute)
}

func TestSelectedWheelsOnlyNotifiesOnTextChange(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCustom))
	require.NoError(t, m.SetNumberOfWheels(3))

	// Wheel 6 is inactive, so the aggregate text stays the same.
	names := recordChanges(m, func() {
		require.NoError(t, m.SetWheelType(5, "25"))
	})
	assert.Contains(t, names, "Wheel6TypeName")
	assert.NotContains(t, names, "SelectedWheels")
	assert.Equal(t, "25,26,29", m.SelectedWheels())
}

func TestDefaultPinsAlternateByWheel(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelM209))

	w0, _ := m.Wheel(0)
	w1, _ := m.Wheel(1)
	assert.Equal(t, "ACEGIKMOQSUWY", w0.ActivePins)
	assert.Equal(t, "BDFHJLNPRTVY", w1.ActivePins)
}

func TestRotateWheel(t *testing.T) {
	m := newTestMachine(t)

	require.NoError(t, m.RotateWheelUp(0))
	w, _ := m.Wheel(0)
	assert.Equal(t, "B", w.Position())
	assert.Equal(t, "BAAAAA", m.WheelsState())

	require.NoError(t, m.RotateWheelDown(0))
	require.NoError(t, m.RotateWheelDown(0))
	w, _ = m.Wheel(0)
	assert.Equal(t, "u", w.Position())

	require.NoError(t, m.RotateWheelTo(1, "Z"))
	assert.Equal(t, "uZAAAA", m.WheelsState())

	names := recordChanges(m, func() {
		require.NoError(t, m.RotateWheelTo(1, "?"))
		require.NoError(t, m.RotateWheelTo(1, "ZA"))
	})
	assert.Empty(t, names)
	assert.Equal(t, "uZAAAA", m.WheelsState())

	m.ResetWheels()
	assert.Equal(t, "AAAAAA", m.WheelsState())
}

func TestSetWheelInitialState(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelM209))

	require.NoError(t, m.SetWheelInitialState(5, "FGHIJKLMNOPQABCDE"))
	assert.Equal(t, "AAAAAF", m.WheelsState())

	assert.ErrorIs(t, m.SetWheelInitialState(5, "ABCDEFGHIJKLMNOPP"), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetWheelInitialState(5, "ABC"), ErrMalformedAttribute)
}

func TestSetWheelPins(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelM209))

	require.NoError(t, m.SetWheelPins(5, "QCA"))
	w, _ := m.Wheel(5)
	assert.Equal(t, "ACQ", w.ActivePins)

	require.NoError(t, m.SetWheelPins(5, ""))
	w, _ = m.Wheel(5)
	assert.Equal(t, "", w.ActivePins)

	assert.ErrorIs(t, m.SetWheelPins(5, "AR"), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetWheelPins(5, "AA"), ErrMalformedAttribute)
	// W is not on the second M-209 wheel.
	assert.ErrorIs(t, m.SetWheelPins(1, "W"), ErrMalformedAttribute)
}

func TestRandomizePins(t *testing.T) {
	m := newTestMachine(t)

	m.RandomizePins()
	for i, w := range m.Wheels() {
		wt, ok := LookupWheelType(w.TypeName)
		require.True(t, ok)
		normalized, err := normalizePins(wt, w.ActivePins)
		require.NoError(t, err, "wheel %d", i)
		assert.Equal(t, normalized, w.ActivePins)
	}
}

func TestRandomizeLugs(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52b))

	m.RandomizeLugs()
	for i, b := range m.Bars() {
		if !b.HasLugs {
			assert.Equal(t, "", b.LugPositions, "bar %d", i)
			continue
		}
		positions, err := parseLugs(b.LugPositions)
		require.NoError(t, err, "bar %d", i)
		assert.Len(t, positions, 2, "bar %d", i)
	}
}

func TestRandomizeLugsSingleWheel(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCustom))
	require.NoError(t, m.SetNumberOfWheels(1))

	m.RandomizeLugs()
	bar, _ := m.Bar(0)
	assert.Equal(t, "1", bar.LugPositions)
}

func TestIndexBounds(t *testing.T) {
	m := newTestMachine(t)

	_, err := m.Bar(-1)
	assert.ErrorIs(t, err, ErrMalformedAttribute)
	_, err = m.Wheel(6)
	assert.ErrorIs(t, err, ErrMalformedAttribute)
	assert.ErrorIs(t, m.RotateWheelUp(6), ErrMalformedAttribute)
	assert.ErrorIs(t, m.SetCamTypes(32, "000000"), ErrMalformedAttribute)
	assert.Equal(t, -1, m.WheelTypeIndex(9))
}
