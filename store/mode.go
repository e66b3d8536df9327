package store

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned for values outside the Mode enum.
var ErrInvalidMode = errors.New("store: invalid mode")

// Mode is the global display mode.
type Mode uint8

const (
	ModeTree     Mode = iota // Particles assemble into the spiral cone
	ModeExploded             // Particles scatter into the sphere, photos are presented
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeExploded:
		return "exploded"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeTree || m == ModeExploded
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeExploded {
		return ModeTree
	}
	return ModeExploded
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tree":
		return ModeTree, nil
	case "exploded":
		return ModeExploded, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
