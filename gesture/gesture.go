// Package gesture turns hand-pose classifications into display mode triggers.
package gesture

import "github.com/pthm-cable/tinsel/store"

// Category names reported by the hand-pose classifier.
const (
	OpenPalm   = "Open_Palm"
	ClosedFist = "Closed_Fist"
	PointingUp = "Pointing_Up"
	None       = "None"
)

// Gesture is the top classification for one detected hand.
type Gesture struct {
	Category string
	Score    float64
}

// Rules decide when a frame of hands triggers a mode.
type Rules struct {
	MinHands      int     // Hands that must show the same pose
	MinScore      float64 // Hands scoring below this are ignored
	ExplodeLabel  string
	AssembleLabel string
}

// DefaultRules requires both hands open to explode and both fists to assemble.
func DefaultRules() Rules {
	return Rules{
		MinHands:      2,
		MinScore:      0.5,
		ExplodeLabel:  OpenPalm,
		AssembleLabel: ClosedFist,
	}
}

// Interpret returns the mode the hands ask for. ok is false when no rule
// fires. The assemble rule is checked last and wins if both fire.
func Interpret(hands []Gesture, r Rules) (mode store.Mode, ok bool) {
	var open, fist int
	for _, h := range hands {
		if h.Score < r.MinScore {
			continue
		}
		switch h.Category {
		case r.ExplodeLabel:
			open++
		case r.AssembleLabel:
			fist++
		}
	}

	if open >= r.MinHands {
		mode, ok = store.ModeExploded, true
	}
	if fist >= r.MinHands {
		mode, ok = store.ModeTree, true
	}
	return mode, ok
}

// Hands builds a frame of n identical, fully confident hands.
func Hands(category string, n int) []Gesture {
	out := make([]Gesture, n)
	for i := range out {
		out[i] = Gesture{Category: category, Score: 1}
	}
	return out
}
