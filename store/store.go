// Package store holds the process-wide display mode and the photo ornaments
// added during the session.
package store

import (
	"errors"
	"log/slog"
	"math/rand"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrEmptyImage is returned by AddPhoto for an empty image reference.
var ErrEmptyImage = errors.New("store: empty image reference")

// Photo is a user-added ornament. Photos are immutable once created.
type Photo struct {
	ID    string
	Image string // Opaque image reference (data URI, file path, blob handle)
	Rest  r3.Vec // Resting position on the tree
}

// RestBox bounds sampled rest positions.
// X and Z are uniform in [-HalfWidth, HalfWidth) and [-HalfDepth, HalfDepth),
// Y is uniform in [0, Height).
type RestBox struct {
	HalfWidth float64
	Height    float64
	HalfDepth float64
}

// DefaultRestBox matches the spread photos get on the tree.
func DefaultRestBox() RestBox {
	return RestBox{HalfWidth: 2.5, Height: 10, HalfDepth: 2.5}
}

// Snapshot is a consistent view of the store at one version.
type Snapshot struct {
	Mode    Mode
	Photos  []Photo // Owned by the snapshot; changes never reach the store
	Version uint64  // Incremented on every observable change
}

// Listener is called after each observable change.
type Listener func(Snapshot)

// Store owns the display mode and the append-only photo list.
// Mutators may be called from any goroutine; listeners run synchronously
// on the mutating goroutine after the lock is released.
type Store struct {
	mu        sync.Mutex
	mode      Mode
	photos    []Photo
	version   uint64
	box       RestBox
	rng       *rand.Rand
	newID     func() string
	listeners map[int]Listener
	order     []int
	nextSub   int
}

// Option configures a Store.
type Option func(*Store)

// WithRestBox sets the box photo rest positions are sampled from.
func WithRestBox(box RestBox) Option {
	return func(s *Store) { s.box = box }
}

// WithRand sets the random source for rest positions.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// WithIDFunc overrides photo ID generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(s *Store) { s.mode = m }
}

// New creates a store in tree mode with no photos.
func New(opts ...Option) *Store {
	s := &Store{
		mode:      ModeTree,
		box:       DefaultRestBox(),
		newID:     uuid.NewString,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return s
}

// SetMode replaces the current mode. Setting the current mode again is
// valid and changes nothing. Invalid modes are rejected and leave the
// store untouched.
func (s *Store) SetMode(m Mode) error {
	if !m.Valid() {
		slog.Warn("rejected mode", "mode", uint8(m))
		return ErrInvalidMode
	}

	s.mu.Lock()
	if s.mode == m {
		s.mu.Unlock()
		return nil
	}
	prev := s.mode
	s.mode = m
	s.version++
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	slog.Info("mode changed", "from", prev.String(), "to", m.String(), "version", snap.Version)
	notify(listeners, snap)
	return nil
}

// AddPhoto appends a new photo with a fresh ID and a random rest position.
func (s *Store) AddPhoto(image string) (Photo, error) {
	if image == "" {
		slog.Warn("rejected photo", "reason", "empty image reference")
		return Photo{}, ErrEmptyImage
	}

	s.mu.Lock()
	p := Photo{
		ID:    s.newID(),
		Image: image,
		Rest:  s.sampleRestLocked(),
	}
	s.photos = append(s.photos, p)
	s.version++
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	slog.Info("photo added", "id", p.ID, "index", len(snap.Photos)-1)
	notify(listeners, snap)
	return p, nil
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Photos returns a copy of the photos in insertion order.
func (s *Store) Photos() []Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.photos)
}

// Snapshot returns the mode and photos as of a single version.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:    s.mode,
		Photos:  slices.Clone(s.photos),
		Version: s.version,
	}
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}

func (s *Store) sampleRestLocked() r3.Vec {
	return r3.Vec{
		X: (s.rng.Float64()*2 - 1) * s.box.HalfWidth,
		Y: s.rng.Float64() * s.box.Height,
		Z: (s.rng.Float64()*2 - 1) * s.box.HalfDepth,
	}
}

func notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
