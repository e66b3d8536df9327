package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/store"
)

// OrnamentParams controls photo placement.
type OrnamentParams struct {
	SmoothTime     float64
	Epsilon        float64
	Expansion      float64 // Rest position multiplier when presented
	PresentedScale float64
	RestScale      float64
	RotationStep   float64 // Y rotation per list index
}

// DefaultOrnamentParams returns the standard placement.
func DefaultOrnamentParams() OrnamentParams {
	return OrnamentParams{
		SmoothTime:     0.4,
		Epsilon:        0.001,
		Expansion:      2.5,
		PresentedScale: 1.5,
		RestScale:      1,
		RotationStep:   0.5,
	}
}

// RestTransform is where a photo hangs in tree mode.
func RestTransform(photo store.Photo, index int, p OrnamentParams) components.OrnamentTransform {
	return components.OrnamentTransform{
		Position: photo.Rest,
		Rotation: r3.Vec{Y: float64(index) * p.RotationStep},
		Scale:    p.RestScale,
	}
}

// PresentedTransform pushes a photo outward along its rest direction and
// enlarges it for exploded mode.
func PresentedTransform(photo store.Photo, index int, p OrnamentParams) components.OrnamentTransform {
	return components.OrnamentTransform{
		Position: r3.Scale(p.Expansion, photo.Rest),
		Rotation: r3.Vec{Y: float64(index) * p.RotationStep},
		Scale:    p.PresentedScale,
	}
}

// TargetTransform returns the transform matching mode.
func TargetTransform(mode store.Mode, photo store.Photo, index int, p OrnamentParams) components.OrnamentTransform {
	if mode == store.ModeExploded {
		return PresentedTransform(photo, index, p)
	}
	return RestTransform(photo, index, p)
}

// OrnamentView is what a renderer needs for one photo.
type OrnamentView struct {
	Index     int
	PhotoID   string
	Image     string
	Transform components.OrnamentTransform
}

// OrnamentSystem keeps one entity per photo and damps it toward the
// transform for the current mode.
type OrnamentSystem struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Ornament, components.OrnamentTransform]
	filter *ecs.Filter2[components.Ornament, components.OrnamentTransform]
	params OrnamentParams
	count  int
	view   []OrnamentView
}

// NewOrnamentSystem creates an ornament system on world.
func NewOrnamentSystem(world *ecs.World, p OrnamentParams) *OrnamentSystem {
	return &OrnamentSystem{
		world:  world,
		mapper: ecs.NewMap2[components.Ornament, components.OrnamentTransform](world),
		filter: ecs.NewFilter2[components.Ornament, components.OrnamentTransform](world),
		params: p,
	}
}

// Sync creates entities for photos not seen yet. The photo list is
// append-only, so only the tail past the known count is new. New
// ornaments start at their rest transform.
func (s *OrnamentSystem) Sync(photos []store.Photo) {
	for i := s.count; i < len(photos); i++ {
		orn := components.Ornament{Index: i, Photo: photos[i]}
		tr := RestTransform(photos[i], i, s.params)
		s.mapper.NewEntity(&orn, &tr)
		slog.Debug("ornament created", "id", photos[i].ID, "index", i)
	}
	if len(photos) > s.count {
		s.count = len(photos)
	}
}

// Update damps every ornament toward its target for mode.
func (s *OrnamentSystem) Update(mode store.Mode, dt float64) {
	p := s.params
	if cap(s.view) < s.count {
		s.view = make([]OrnamentView, s.count)
	}
	s.view = s.view[:s.count]

	query := s.filter.Query()
	for query.Next() {
		orn, tr := query.Get()
		target := TargetTransform(mode, orn.Photo, orn.Index, p)

		tr.Position = Damp3(tr.Position, target.Position, p.SmoothTime, dt, p.Epsilon)
		tr.Rotation = DampEuler(tr.Rotation, target.Rotation, p.SmoothTime, dt, p.Epsilon)
		tr.Scale = Damp(tr.Scale, target.Scale, p.SmoothTime, dt, p.Epsilon)

		if orn.Index < len(s.view) {
			s.view[orn.Index] = OrnamentView{
				Index:     orn.Index,
				PhotoID:   orn.Photo.ID,
				Image:     orn.Photo.Image,
				Transform: *tr,
			}
		}
	}
}

// Ornaments returns the ornaments in photo order as of the last Update.
// The slice is reused by the next Update.
func (s *OrnamentSystem) Ornaments() []OrnamentView {
	return s.view
}

// Count returns the number of ornaments.
func (s *OrnamentSystem) Count() int {
	return s.count
}
