package gesture

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
)

// ScriptStep is one row of a gesture script: from time T on, the camera
// sees OpenPalms open hands and ClosedFists fists.
type ScriptStep struct {
	T           float64 `csv:"t"`
	OpenPalms   int     `csv:"open_palms"`
	ClosedFists int     `csv:"closed_fists"`
}

// ScriptRecognizer replays a scripted sequence of hand poses against a clock.
// It stands in for a camera in headless runs and tests.
type ScriptRecognizer struct {
	steps []ScriptStep
	clock func() time.Duration

	mu     sync.Mutex
	closed bool
}

// NewScriptRecognizer creates a recognizer over steps. clock reports elapsed
// time since the script started.
func NewScriptRecognizer(steps []ScriptStep, clock func() time.Duration) *ScriptRecognizer {
	sorted := append([]ScriptStep(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return &ScriptRecognizer{steps: sorted, clock: clock}
}

// ReadScript parses a gesture script CSV.
func ReadScript(r io.Reader) ([]ScriptStep, error) {
	var steps []ScriptStep
	if err := gocsv.Unmarshal(r, &steps); err != nil {
		return nil, fmt.Errorf("parsing gesture script: %w", err)
	}
	return steps, nil
}

// LoadScript reads a gesture script from a file.
func LoadScript(path string) ([]ScriptStep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening gesture script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// Recognize returns the hands visible at the current clock time.
func (s *ScriptRecognizer) Recognize(ctx context.Context) ([]Gesture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("gesture: recognizer closed")
	}

	now := s.clock().Seconds()
	i := sort.Search(len(s.steps), func(i int) bool { return s.steps[i].T > now })
	if i == 0 {
		return nil, ErrNotReady
	}
	step := s.steps[i-1]

	hands := append(Hands(OpenPalm, step.OpenPalms), Hands(ClosedFist, step.ClosedFists)...)
	return hands, nil
}

// Close stops the recognizer.
func (s *ScriptRecognizer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *ScriptRecognizer) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
