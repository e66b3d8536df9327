package systems

import (
	"fmt"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/store"
)

func testPhotos(n int) []store.Photo {
	photos := make([]store.Photo, n)
	for i := range photos {
		photos[i] = store.Photo{
			ID:    fmt.Sprintf("p%d", i),
			Image: "img",
			Rest:  r3.Vec{X: float64(i) - 1, Y: 2 + float64(i), Z: 0.5},
		}
	}
	return photos
}

func transformClose(a, b components.OrnamentTransform, tol float64) bool {
	return r3.Norm(r3.Sub(a.Position, b.Position)) <= tol &&
		r3.Norm(r3.Sub(a.Rotation, b.Rotation)) <= tol &&
		math.Abs(a.Scale-b.Scale) <= tol
}

func TestRestAndPresentedTransforms(t *testing.T) {
	p := DefaultOrnamentParams()
	photo := store.Photo{Rest: r3.Vec{X: 1, Y: 4, Z: -2}}

	rest := RestTransform(photo, 3, p)
	if rest.Position != photo.Rest || rest.Scale != 1 || rest.Rotation != (r3.Vec{Y: 1.5}) {
		t.Errorf("RestTransform = %+v", rest)
	}

	presented := PresentedTransform(photo, 3, p)
	want := r3.Vec{X: 2.5, Y: 10, Z: -5}
	if r3.Norm(r3.Sub(presented.Position, want)) > 1e-12 {
		t.Errorf("presented position = %v, want %v", presented.Position, want)
	}
	if presented.Scale != 1.5 || presented.Rotation != rest.Rotation {
		t.Errorf("PresentedTransform = %+v", presented)
	}

	if TargetTransform(store.ModeTree, photo, 3, p) != rest {
		t.Error("tree target is not the rest transform")
	}
	if TargetTransform(store.ModeExploded, photo, 3, p) != presented {
		t.Error("exploded target is not the presented transform")
	}
}

func TestOrnamentSystemNewPhotosStartAtRest(t *testing.T) {
	world := ecs.NewWorld()
	s := NewOrnamentSystem(world, DefaultOrnamentParams())
	photos := testPhotos(3)

	s.Sync(photos)
	s.Update(store.ModeExploded, 0)

	views := s.Ornaments()
	if len(views) != 3 || s.Count() != 3 {
		t.Fatalf("got %d views, count %d; want 3", len(views), s.Count())
	}
	for i, v := range views {
		if v.Index != i || v.PhotoID != photos[i].ID {
			t.Errorf("view %d = %+v", i, v)
		}
		if want := RestTransform(photos[i], i, DefaultOrnamentParams()); v.Transform != want {
			t.Errorf("view %d transform = %+v, want rest %+v", i, v.Transform, want)
		}
	}
}

func TestOrnamentSystemSyncAppendOnly(t *testing.T) {
	world := ecs.NewWorld()
	s := NewOrnamentSystem(world, DefaultOrnamentParams())
	photos := testPhotos(4)

	s.Sync(photos[:2])
	s.Sync(photos[:2])
	if s.Count() != 2 {
		t.Fatalf("Count() = %d after resync, want 2", s.Count())
	}

	// Move the first two, then add two more.
	for range 30 {
		s.Update(store.ModeExploded, 1.0/60)
	}
	s.Sync(photos)
	s.Update(store.ModeExploded, 0)

	views := s.Ornaments()
	if len(views) != 4 {
		t.Fatalf("got %d views, want 4", len(views))
	}
	p := DefaultOrnamentParams()
	if views[0].Transform == RestTransform(photos[0], 0, p) {
		t.Error("existing ornament was reset by Sync")
	}
	if views[3].Transform != RestTransform(photos[3], 3, p) {
		t.Errorf("new ornament = %+v, want rest", views[3].Transform)
	}
}

func TestOrnamentSystemConverges(t *testing.T) {
	world := ecs.NewWorld()
	p := DefaultOrnamentParams()
	s := NewOrnamentSystem(world, p)
	photos := testPhotos(5)
	s.Sync(photos)

	for range 300 {
		s.Update(store.ModeExploded, 1.0/60)
	}
	for i, v := range s.Ornaments() {
		want := PresentedTransform(photos[i], i, p)
		if !transformClose(v.Transform, want, 1e-6) {
			t.Errorf("ornament %d = %+v, want presented %+v", i, v.Transform, want)
		}
	}

	for range 300 {
		s.Update(store.ModeTree, 1.0/60)
	}
	for i, v := range s.Ornaments() {
		want := RestTransform(photos[i], i, p)
		if !transformClose(v.Transform, want, 1e-6) {
			t.Errorf("ornament %d = %+v, want rest %+v", i, v.Transform, want)
		}
	}
}

func TestOrnamentScaleMonotonic(t *testing.T) {
	world := ecs.NewWorld()
	s := NewOrnamentSystem(world, DefaultOrnamentParams())
	s.Sync(testPhotos(1))

	last := 1.0
	for range 120 {
		s.Update(store.ModeExploded, 1.0/60)
		scale := s.Ornaments()[0].Transform.Scale
		if scale < last || scale > 1.5 {
			t.Fatalf("scale %v after %v: not monotonic toward 1.5", scale, last)
		}
		last = scale
	}
}
