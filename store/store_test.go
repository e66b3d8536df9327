package store

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(opts ...Option) *Store {
	return New(append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)...)
}

func TestNewDefaults(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, ModeTree, s.Mode())
	assert.Empty(t, s.Photos())
	assert.Zero(t, s.Snapshot().Version)
}

func TestSetMode(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.SetMode(ModeExploded))
	assert.Equal(t, ModeExploded, s.Mode())
	assert.Equal(t, uint64(1), s.Snapshot().Version)

	require.NoError(t, s.SetMode(ModeTree))
	assert.Equal(t, ModeTree, s.Mode())
	assert.Equal(t, uint64(2), s.Snapshot().Version)
}

func TestSetModeIdempotent(t *testing.T) {
	s := newTestStore()
	var calls int
	s.Subscribe(func(Snapshot) { calls++ })

	require.NoError(t, s.SetMode(ModeExploded))
	require.NoError(t, s.SetMode(ModeExploded))
	require.NoError(t, s.SetMode(ModeExploded))

	assert.Equal(t, ModeExploded, s.Mode())
	assert.Equal(t, uint64(1), s.Snapshot().Version)
	assert.Equal(t, 1, calls)
}

func TestSetModeRejectsInvalid(t *testing.T) {
	s := newTestStore(WithMode(ModeExploded))
	var calls int
	s.Subscribe(func(Snapshot) { calls++ })

	err := s.SetMode(Mode(7))
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, ModeExploded, s.Mode())
	assert.Zero(t, s.Snapshot().Version)
	assert.Zero(t, calls)
}

func TestAddPhoto(t *testing.T) {
	s := newTestStore()

	p, err := s.AddPhoto("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "data:image/png;base64,AAAA", p.Image)

	photos := s.Photos()
	require.Len(t, photos, 1)
	assert.Equal(t, p, photos[0])
}

func TestAddPhotoRejectsEmpty(t *testing.T) {
	s := newTestStore()
	var calls int
	s.Subscribe(func(Snapshot) { calls++ })

	_, err := s.AddPhoto("")
	assert.ErrorIs(t, err, ErrEmptyImage)
	assert.Empty(t, s.Photos())
	assert.Zero(t, calls)
}

func TestAddPhotoUniqueIDsAndOrder(t *testing.T) {
	s := newTestStore()
	seen := make(map[string]bool)
	for i := range 200 {
		p, err := s.AddPhoto(fmt.Sprintf("img-%d", i))
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}

	photos := s.Photos()
	require.Len(t, photos, 200)
	for i, p := range photos {
		assert.Equal(t, fmt.Sprintf("img-%d", i), p.Image)
	}
}

func TestAddPhotoRestInsideBox(t *testing.T) {
	box := RestBox{HalfWidth: 2.5, Height: 10, HalfDepth: 2.5}
	s := newTestStore(WithRestBox(box))

	for range 500 {
		p, err := s.AddPhoto("x")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Rest.X, -box.HalfWidth)
		assert.Less(t, p.Rest.X, box.HalfWidth)
		assert.GreaterOrEqual(t, p.Rest.Y, 0.0)
		assert.Less(t, p.Rest.Y, box.Height)
		assert.GreaterOrEqual(t, p.Rest.Z, -box.HalfDepth)
		assert.Less(t, p.Rest.Z, box.HalfDepth)
	}
}

func TestAddPhotoUsesIDFunc(t *testing.T) {
	n := 0
	s := newTestStore(WithIDFunc(func() string {
		n++
		return fmt.Sprintf("photo-%d", n)
	}))

	p, err := s.AddPhoto("x")
	require.NoError(t, err)
	assert.Equal(t, "photo-1", p.ID)
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore()
	_, err := s.AddPhoto("a")
	require.NoError(t, err)

	snap := s.Snapshot()
	_, err = s.AddPhoto("b")
	require.NoError(t, err)
	require.NoError(t, s.SetMode(ModeExploded))

	assert.Equal(t, ModeTree, snap.Mode)
	assert.Len(t, snap.Photos, 1)

	// Appending to a snapshot must not write into the store.
	grown := append(snap.Photos, Photo{ID: "fake"})
	assert.Len(t, grown, 2)
	assert.Equal(t, "b", s.Photos()[1].Image)
}

func TestReturnedPhotosAreCopies(t *testing.T) {
	s := newTestStore(WithIDFunc(func() string { return "p1" }))
	orig, err := s.AddPhoto("img")
	require.NoError(t, err)

	ps := s.Photos()
	ps[0].ID = "other"
	ps[0].Image = ""
	snap := s.Snapshot()
	snap.Photos[0].Rest.X = 999

	var seen []Photo
	s.Subscribe(func(snap Snapshot) { seen = snap.Photos })
	require.NoError(t, s.SetMode(ModeExploded))
	seen[0].Image = "changed"

	assert.Equal(t, []Photo{orig}, s.Photos())
	assert.Equal(t, []Photo{orig}, s.Snapshot().Photos)
}

func TestSubscribeOrderAndCancel(t *testing.T) {
	s := newTestStore()
	var got []string

	cancelA := s.Subscribe(func(snap Snapshot) { got = append(got, "a:"+snap.Mode.String()) })
	s.Subscribe(func(snap Snapshot) { got = append(got, "b:"+snap.Mode.String()) })

	require.NoError(t, s.SetMode(ModeExploded))
	assert.Equal(t, []string{"a:exploded", "b:exploded"}, got)

	cancelA()
	cancelA()
	got = nil
	require.NoError(t, s.SetMode(ModeTree))
	assert.Equal(t, []string{"b:tree"}, got)
}

func TestListenerSeesCommittedState(t *testing.T) {
	s := newTestStore()
	s.Subscribe(func(snap Snapshot) {
		// Listeners run after the lock is released, so reads work.
		assert.Equal(t, snap.Mode, s.Mode())
		assert.Len(t, s.Photos(), len(snap.Photos))
	})

	require.NoError(t, s.SetMode(ModeExploded))
	_, err := s.AddPhoto("x")
	require.NoError(t, err)
}

func TestConcurrentProducers(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				if j%2 == 0 {
					_ = s.SetMode(Mode(i % 2))
				}
				_, _ = s.AddPhoto("x")
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Photos, 400)
	assert.True(t, snap.Mode.Valid())
}

func TestModeText(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"tree", ModeTree, false},
		{"exploded", ModeExploded, false},
		{"EXPLODED", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m Mode
			err := m.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)

			text, err := m.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(text))
		})
	}

	_, err := Mode(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, ModeExploded, ModeTree.Toggle())
	assert.Equal(t, ModeTree, ModeExploded.Toggle())
}
