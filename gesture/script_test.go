package gesture

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `t,open_palms,closed_fists
2.0,0,2
0.5,2,0
3.0,0,0
`

func TestReadScript(t *testing.T) {
	steps, err := ReadScript(strings.NewReader(testScript))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, ScriptStep{T: 2, OpenPalms: 0, ClosedFists: 2}, steps[0])
}

func TestReadScriptBadInput(t *testing.T) {
	_, err := ReadScript(strings.NewReader("t,open_palms,closed_fists\nsoon,1,1\n"))
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestures.csv")
	require.NoError(t, os.WriteFile(path, []byte(testScript), 0644))

	steps, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, steps, 3)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestScriptRecognizerTimeline(t *testing.T) {
	steps, err := ReadScript(strings.NewReader(testScript))
	require.NoError(t, err)

	var now time.Duration
	rec := NewScriptRecognizer(steps, func() time.Duration { return now })
	ctx := context.Background()

	_, err = rec.Recognize(ctx)
	assert.ErrorIs(t, err, ErrNotReady)

	tests := []struct {
		at        time.Duration
		wantOpen  int
		wantFists int
	}{
		{500 * time.Millisecond, 2, 0},
		{time.Second, 2, 0},
		{2 * time.Second, 0, 2},
		{10 * time.Second, 0, 0},
	}
	for _, tt := range tests {
		now = tt.at
		hands, err := rec.Recognize(ctx)
		require.NoError(t, err)

		var open, fists int
		for _, h := range hands {
			switch h.Category {
			case OpenPalm:
				open++
			case ClosedFist:
				fists++
			}
		}
		assert.Equal(t, tt.wantOpen, open, "open palms at %v", tt.at)
		assert.Equal(t, tt.wantFists, fists, "fists at %v", tt.at)
	}
}

func TestScriptRecognizerClose(t *testing.T) {
	rec := NewScriptRecognizer([]ScriptStep{{T: 0, OpenPalms: 2}}, func() time.Duration { return 0 })
	assert.False(t, rec.Closed())

	require.NoError(t, rec.Close())
	assert.True(t, rec.Closed())

	_, err := rec.Recognize(context.Background())
	assert.Error(t, err)
}
