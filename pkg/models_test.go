package hagelin

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine(WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return m
}

func TestNewMachineDefaultsToCX52a(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, ModelCX52a, m.Model())
	assert.Equal(t, "CX-52a", m.SelectedModel())
	assert.Equal(t, ModelSelection, m.State())
	assert.Equal(t, DefaultSettings(), m.Settings())
	assert.False(t, m.CountsEditable())
}

func TestScenarioCX52a(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52a))

	assert.Equal(t, 6, m.NumberOfWheels())
	assert.Equal(t, 32, m.NumberOfBars())

	bar, err := m.Bar(4)
	require.NoError(t, err)
	assert.True(t, bar.HasLugs)
	assert.Equal(t, "B00000", bar.CamPattern)
	assert.Equal(t, DisplaceWhenShifted, bar.ToothType)
	assert.Equal(t, 2, bar.CatalogID)

	bar, err = m.Bar(0)
	require.NoError(t, err)
	assert.Equal(t, 1, bar.CatalogID)
	assert.Equal(t, "000000", bar.CamPattern)
}

func TestScenarioM209(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelM209))

	assert.Equal(t, 27, m.NumberOfBars())
	assert.Equal(t, "M209-26,M209-25,M209-23,M209-21,M209-19,M209-17", m.SelectedWheels())

	before, err := m.Wheel(0)
	require.NoError(t, err)
	for idx := range m.SupportedWheelTypeNames() {
		require.NoError(t, m.SetWheelTypeName(0, idx))
	}
	after, err := m.Wheel(0)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, m.WheelTypeIndex(0))
}

func TestScenarioCX52b(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52b))

	bar, err := m.Bar(31)
	require.NoError(t, err)
	assert.False(t, bar.HasLugs)
	assert.Equal(t, "CCCCCC", bar.CamPattern)
	assert.Equal(t, 17, bar.CatalogID)

	bar, err = m.Bar(30)
	require.NoError(t, err)
	assert.Equal(t, 2, bar.CatalogID)
}

func TestEveryModelApplies(t *testing.T) {
	m := newTestMachine(t)
	for _, model := range MachineModels {
		require.NoError(t, m.SetModel(model), "model %v", model)
		assert.Equal(t, model, m.Model())
		for i, b := range m.Bars() {
			assert.Len(t, b.CamPattern, m.NumberOfWheels(), "model %v bar %d", model, i)
		}
		for i, w := range m.Wheels() {
			wt, ok := LookupWheelType(w.TypeName)
			require.True(t, ok, "model %v wheel %d", model, i)
			assert.Equal(t, wt.Labels, w.InitialState)
			assert.Equal(t, defaultPins(wt, i), w.ActivePins)
		}
	}
}

func TestApplyModelIsIdempotent(t *testing.T) {
	for _, model := range MachineModels {
		m := newTestMachine(t)
		require.NoError(t, m.SetModel(model))
		firstBars, firstWheels := m.bars, m.wheels
		first := m.Snapshot()

		require.NoError(t, m.SetModel(model))
		assert.Equal(t, firstBars, m.bars, "model %v", model)
		assert.Equal(t, firstWheels, m.wheels, "model %v", model)
		assert.Equal(t, first, m.Snapshot(), "model %v", model)
	}
}

func TestApplyModelDiscardsEdits(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52c))
	fresh := m.Snapshot()

	require.NoError(t, m.SetCamTypes(3, "ABCABC"))
	require.NoError(t, m.SetBarLugs(0, "1,6"))
	require.NoError(t, m.SetWheelType(0, "25"))
	require.NoError(t, m.RotateWheelUp(2))
	m.RandomizePins()

	require.NoError(t, m.SetModel(ModelCX52c))
	assert.Equal(t, fresh, m.Snapshot())
}

func TestUnknownModelIsFatal(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelEire))

	err := m.SetModel(MachineModel(42))
	assert.ErrorIs(t, err, ErrUnimplementedModel)
	assert.Equal(t, ModelEire, m.Model())
}

func TestCustomFillSkipsLastBar(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52b))
	require.NoError(t, m.SetModel(ModelCustom))

	assert.True(t, m.CountsEditable())
	for i := 0; i < 31; i++ {
		bar, err := m.Bar(i)
		require.NoError(t, err)
		assert.Equal(t, 1, bar.CatalogID, "bar %d", i)
	}
	last, err := m.Bar(31)
	require.NoError(t, err)
	assert.Equal(t, 17, last.CatalogID)
	assert.False(t, last.HasLugs)
	assert.Equal(t, "CCCCCC", last.CamPattern)
}

func TestCustomOffersEveryWheelType(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCustom))

	assert.Equal(t, allWheelTypeNames(), m.SupportedWheelTypeNames())
	assert.Equal(t, "25,26,29,31,34,37", m.SelectedWheels())
}

func TestModelSummaries(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, "47,43,41,37,31,29", m.SelectedWheels())
	assert.Equal(t, "AAAAAA", m.WheelsState())
	parts := strings.Split(m.SelectedBars(), " ")
	require.Len(t, parts, 32)
	assert.Equal(t, "ld000000", parts[0])
	assert.Equal(t, "ldB00000", parts[4])

	require.NoError(t, m.SetModel(ModelC52d))
	assert.Equal(t, "29,31,37,41,43,47", m.SelectedWheels())
	assert.Len(t, m.SupportedWheelTypeNames(), 6)

	require.NoError(t, m.SetModel(ModelM209))
	assert.Len(t, strings.Split(m.SelectedBars(), " "), 27)
}

func TestParseMachineModel(t *testing.T) {
	model, err := ParseMachineModel("cxm_late")
	require.NoError(t, err)
	assert.Equal(t, ModelCXMLate, model)

	model, err = ParseMachineModel(" M209 ")
	require.NoError(t, err)
	assert.Equal(t, ModelM209, model)

	_, err = ParseMachineModel("enigma")
	assert.ErrorIs(t, err, ErrUnimplementedModel)
}

func TestMachineModelNames(t *testing.T) {
	assert.Equal(t, "CXM_LATE", ModelCXMLate.String())
	assert.Equal(t, "M-209", ModelM209.DisplayName())
	assert.Equal(t, "MachineModel(42)", MachineModel(42).String())
}
