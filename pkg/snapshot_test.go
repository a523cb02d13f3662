package hagelin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSnapshot(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelM209))
	require.NoError(t, m.SetBarLugs(2, "3,1"))

	s := m.Snapshot()
	assert.Equal(t, ModelM209, s.Model)
	assert.Equal(t, "M-209", s.SelectedModel)
	assert.Len(t, s.Wheels, 6)
	assert.Len(t, s.Bars, 27)
	assert.Equal(t, 1, s.Wheels[0].Index)
	assert.Equal(t, "M209-26", s.Wheels[0].TypeName)
	assert.Equal(t, BarSnapshot{Index: 3, Type: 1, HasLugs: true, CamTypes: "000000", Lugs: "1,3", ToothType: DisplaceWhenShifted}, s.Bars[2])
}

func TestSnapshotYAML(t *testing.T) {
	m := newTestMachine(t)

	out, err := yaml.Marshal(m.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(out), "model: CX52a")
	assert.Contains(t, string(out), "toothType: DisplaceWhenShifted")
	assert.Contains(t, string(out), "state: ModelSelection")
	assert.Contains(t, string(out), "mode: Encrypt")
}

func TestSnapshotJSON(t *testing.T) {
	m := newTestMachine(t)
	require.NoError(t, m.SetModel(ModelCX52b))

	out, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "CX52b", decoded["model"])
	bars := decoded["bars"].([]any)
	last := bars[31].(map[string]any)
	assert.Equal(t, "CCCCCC", last["camTypes"])
	assert.Equal(t, false, last["hasLugs"])
	assert.Equal(t, float64(17), last["type"])
}
