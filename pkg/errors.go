package hagelin

import "errors"

var (
	// ErrUnimplementedModel is returned when a MachineModel has no recipe.
	// Callers must not continue with a half-applied configuration.
	ErrUnimplementedModel = errors.New("unimplemented machine model")

	// ErrMalformedAttribute is returned when an externally supplied value
	// (cam pattern, lug list, pin list, index, setting) does not parse.
	ErrMalformedAttribute = errors.New("malformed attribute")

	// ErrUnknownState is returned for a PluginState outside the wizard sequence.
	ErrUnknownState = errors.New("unknown plugin state")
)
