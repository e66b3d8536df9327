package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/tinsel/store"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name     string
		hands    []Gesture
		wantMode store.Mode
		wantOK   bool
	}{
		{"no hands", nil, store.ModeTree, false},
		{"one open palm", Hands(OpenPalm, 1), store.ModeTree, false},
		{"two open palms", Hands(OpenPalm, 2), store.ModeExploded, true},
		{"two fists", Hands(ClosedFist, 2), store.ModeTree, true},
		{"three fists", Hands(ClosedFist, 3), store.ModeTree, true},
		{"mixed pair", append(Hands(OpenPalm, 1), Hands(ClosedFist, 1)...), store.ModeTree, false},
		{"pointing", Hands(PointingUp, 2), store.ModeTree, false},
		{"both rules fire, assemble wins", append(Hands(OpenPalm, 2), Hands(ClosedFist, 2)...), store.ModeTree, true},
		{"low confidence ignored", []Gesture{{OpenPalm, 0.9}, {OpenPalm, 0.2}}, store.ModeTree, false},
		{"confident pair", []Gesture{{OpenPalm, 0.9}, {OpenPalm, 0.5}}, store.ModeExploded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := Interpret(tt.hands, DefaultRules())
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantMode, mode)
			}
		})
	}
}

func TestInterpretCustomRules(t *testing.T) {
	r := Rules{MinHands: 1, MinScore: 0, ExplodeLabel: PointingUp, AssembleLabel: None}

	mode, ok := Interpret(Hands(PointingUp, 1), r)
	assert.True(t, ok)
	assert.Equal(t, store.ModeExploded, mode)

	_, ok = Interpret(Hands(OpenPalm, 2), r)
	assert.False(t, ok)
}
