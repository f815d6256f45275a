package tinydi

import "fmt"

// BindingMode is the registration mode of a binding. It is reported to
// RegisterHook observers and in debug logs.
type BindingMode int

const (
	// ModeSingle binds one provider per key. Re-registering overwrites, or
	// fails on a strict container.
	ModeSingle BindingMode = iota

	// ModeMulti accumulates an ordered sequence of providers per key.
	ModeMulti

	// ModeNamed binds one provider per (key, name) pair.
	ModeNamed
)

// String returns the string representation of the BindingMode.
func (m BindingMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	case ModeNamed:
		return "named"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}
