package hagelin

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// MachineModel selects a historical machine preset.
type MachineModel int

const (
	ModelCX52a MachineModel = iota
	ModelCX52b
	ModelCX52c
	ModelC52d
	ModelCXM
	ModelCXMLate
	ModelFrance
	ModelEire
	ModelM209
	ModelCustom
)

// MachineModels lists every model in declaration order.
var MachineModels = []MachineModel{
	ModelCX52a, ModelCX52b, ModelCX52c, ModelC52d, ModelCXM,
	ModelCXMLate, ModelFrance, ModelEire, ModelM209, ModelCustom,
}

var modelNames = map[MachineModel]string{
	ModelCX52a:   "CX52a",
	ModelCX52b:   "CX52b",
	ModelCX52c:   "CX52c",
	ModelC52d:    "C52d",
	ModelCXM:     "CXM",
	ModelCXMLate: "CXM_LATE",
	ModelFrance:  "FRANCE",
	ModelEire:    "EIRE",
	ModelM209:    "M209",
	ModelCustom:  "Custom",
}

var modelDisplayNames = map[MachineModel]string{
	ModelCX52a:   "CX-52a",
	ModelCX52b:   "CX-52b",
	ModelCX52c:   "CX-52c",
	ModelC52d:    "C-52d",
	ModelCXM:     "CXM",
	ModelCXMLate: "CXM (late)",
	ModelFrance:  "CX-52 (France)",
	ModelEire:    "CX-52 (Eire)",
	ModelM209:    "M-209",
	ModelCustom:  "Custom",
}

func (m MachineModel) String() string {
	if s, ok := modelNames[m]; ok {
		return s
	}
	return fmt.Sprintf("MachineModel(%d)", int(m))
}

// DisplayName is the human readable model name used for SelectedModel.
func (m MachineModel) DisplayName() string {
	if s, ok := modelDisplayNames[m]; ok {
		return s
	}
	return m.String()
}

// ParseMachineModel accepts enum names case-insensitively ("cx52a", "M209").
func ParseMachineModel(s string) (MachineModel, error) {
	for _, m := range MachineModels {
		if strings.EqualFold(m.String(), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnimplementedModel, s)
}

// barOverride replaces one bar after the bulk fill.
type barOverride struct {
	index int
	bar   BarType
}

// modelRecipe is the declarative description of a preset.
type modelRecipe struct {
	wheels     int
	bars       int
	wheelSizes []string
	// bulk is written over [bulkFrom, bulkTo). A negative bulkTo counts back
	// from the active bar count.
	bulk      BarType
	bulkFrom  int
	bulkTo    int
	overrides []barOverride
}

var cx52WheelSizes = []string{"47", "43", "41", "37", "31", "29", "46", "42", "38", "34", "26", "25"}

var c52WheelSizes = []string{"29", "31", "37", "41", "43", "47"}

var m209WheelSizes = []string{"M209-26", "M209-25", "M209-23", "M209-21", "M209-19", "M209-17"}

var modelRecipes = map[MachineModel]modelRecipe{
	ModelCX52a: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLd000000Num1, bulkFrom: 0, bulkTo: 32,
		overrides: []barOverride{{4, BarLdB00000Num2}},
	},
	ModelCX52b: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLdB00000Num2, bulkFrom: 0, bulkTo: 31,
		overrides: []barOverride{{31, BarUdCCCCCCNum17}},
	},
	ModelCX52c: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLdB00000Num2, bulkFrom: 0, bulkTo: 30,
		overrides: []barOverride{{30, BarUdBBBBBBNum18}, {31, BarUdCCCCCCNum17}},
	},
	ModelC52d: {
		wheels: 6, bars: 32, wheelSizes: c52WheelSizes,
		bulk: BarLd000000Num1, bulkFrom: 0, bulkTo: 32,
	},
	ModelCXM: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLdB00000Num2, bulkFrom: 0, bulkTo: 31,
		overrides: []barOverride{{31, BarLnCCCCCCNum22}},
	},
	ModelCXMLate: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLdB00000Num2, bulkFrom: 0, bulkTo: 30,
		overrides: []barOverride{{30, BarLiB00000Num26}, {31, BarUnCCCCCCNum24}},
	},
	ModelFrance: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLdB0B0B0Num30, bulkFrom: 0, bulkTo: 32,
	},
	ModelEire: {
		wheels: 6, bars: 32, wheelSizes: cx52WheelSizes,
		bulk: BarLd0B0B0BNum31, bulkFrom: 0, bulkTo: 31,
		overrides: []barOverride{{31, BarUdB0B0B0Num32}},
	},
	ModelM209: {
		wheels: 6, bars: 27, wheelSizes: m209WheelSizes,
		bulk: BarLd000000Num1, bulkFrom: 0, bulkTo: 27,
	},
	// The Custom fill stops one short of the last active bar, which keeps
	// whatever that bar held before.
	ModelCustom: {
		wheels: 6, bars: 32,
		bulk: BarLd000000Num1, bulkFrom: 0, bulkTo: -1,
	},
}

// SetModel selects a model and repopulates the whole configuration, even
// when model equals the current one.
func (m *Machine) SetModel(model MachineModel) error {
	recipe, ok := modelRecipes[model]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnimplementedModel, model)
	}

	m.logger.WithField("model", model).Debug("applying model")

	m.model = model
	m.events.emit("Model", model)
	m.events.emit("SelectedModel", model.DisplayName())
	m.setVisibility()

	m.setWheelCount(recipe.wheels)
	m.setBarCount(recipe.bars)

	sizes := recipe.wheelSizes
	if model == ModelCustom {
		sizes = allWheelTypeNames()
	}
	m.applyWheelSizes(sizes)

	to := recipe.bulkTo
	if to < 0 {
		to += m.numberOfBars
	}
	for i := recipe.bulkFrom; i < to; i++ {
		if err := m.SetBarType(i, recipe.bulk); err != nil {
			return err
		}
	}
	for _, o := range recipe.overrides {
		if err := m.SetBarType(o.index, o.bar); err != nil {
			return err
		}
	}
	for i := range m.bars {
		m.setLugs(i, "")
	}

	m.ResetWheels()
	for i := range m.wheels {
		wt, _ := LookupWheelType(m.wheels[i].TypeName)
		m.setPins(i, defaultPins(wt, i))
	}
	m.updateSummaries()

	m.logger.WithFields(logrus.Fields{
		"model":  model,
		"wheels": m.numberOfWheels,
		"bars":   m.numberOfBars,
	}).Info("model applied")
	return nil
}
