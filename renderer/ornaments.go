package renderer

import (
	"log/slog"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/systems"
	"github.com/pthm-cable/tinsel/upload"
)

// upright turns raylib's XZ plane mesh to face +Z.
var upright = components.EulerQuat(r3.Vec{X: math.Pi / 2})

// OrnamentRenderer draws photos as polaroids: a white card with the image
// inset toward the top.
type OrnamentRenderer struct {
	card     rl.Model
	photo    rl.Model
	blank    rl.Model                // untextured stand-in for photos that failed to load
	textures map[string]rl.Texture2D // by photo ID
	failed   map[string]bool
}

// NewOrnamentRenderer creates an ornament renderer.
func NewOrnamentRenderer() *OrnamentRenderer {
	return &OrnamentRenderer{
		card:     rl.LoadModelFromMesh(rl.GenMeshPlane(1.2, 1.5, 1, 1)),
		photo:    rl.LoadModelFromMesh(rl.GenMeshPlane(1, 1, 1, 1)),
		blank:    rl.LoadModelFromMesh(rl.GenMeshPlane(1, 1, 1, 1)),
		textures: make(map[string]rl.Texture2D),
		failed:   make(map[string]bool),
	}
}

// Draw renders ornaments in list order.
func (r *OrnamentRenderer) Draw(ornaments []systems.OrnamentView) {
	for i := range ornaments {
		o := &ornaments[i]
		tr := o.Transform

		q := components.EulerQuat(tr.Rotation)
		axis, angle := components.AxisAngle(quat.Mul(q, upright))
		deg := float32(angle * 180 / math.Pi)
		scale := rl.Vector3{X: float32(tr.Scale), Y: float32(tr.Scale), Z: float32(tr.Scale)}

		normal := components.Rotate(q, r3.Vec{Z: 1})
		up := components.Rotate(q, r3.Vec{Y: 1})
		cardPos := r3.Sub(tr.Position, r3.Scale(0.01*tr.Scale, normal))
		photoPos := r3.Add(tr.Position, r3.Scale(0.1*tr.Scale, up))

		rl.DrawModelEx(r.card, vec3(cardPos), vec3(axis), deg, scale, rl.White)

		tex, ok := r.texture(o)
		model, tint := r.photoModel(tex, ok)
		rl.DrawModelEx(*model, vec3(photoPos), vec3(axis), deg, scale, tint)
	}
}

// photoModel returns the model and tint for a photo plane. Photos without a
// texture get the blank model, never the shared photo model.
func (r *OrnamentRenderer) photoModel(tex rl.Texture2D, ok bool) (*rl.Model, rl.Color) {
	if !ok {
		return &r.blank, Emerald
	}
	mats := r.photo.GetMaterials()
	rl.SetMaterialTexture(&mats[0], rl.MapDiffuse, tex)
	return &r.photo, rl.White
}

// texture returns the cached texture for a photo, loading it on first use.
func (r *OrnamentRenderer) texture(o *systems.OrnamentView) (rl.Texture2D, bool) {
	if tex, ok := r.textures[o.PhotoID]; ok {
		return tex, true
	}
	if r.failed[o.PhotoID] {
		return rl.Texture2D{}, false
	}

	tex, ok := loadTexture(o.Image)
	if !ok {
		slog.Warn("could not decode photo", "id", o.PhotoID)
		r.failed[o.PhotoID] = true
		return rl.Texture2D{}, false
	}
	r.textures[o.PhotoID] = tex
	return tex, true
}

func loadTexture(ref string) (rl.Texture2D, bool) {
	if !strings.HasPrefix(ref, "data:") {
		tex := rl.LoadTexture(ref)
		return tex, tex.ID != 0
	}

	mime, data, err := upload.DecodeDataURI(ref)
	if err != nil {
		return rl.Texture2D{}, false
	}
	img := rl.LoadImageFromMemory(fileExt(mime), data, int32(len(data)))
	if img == nil || img.Width == 0 {
		return rl.Texture2D{}, false
	}
	defer rl.UnloadImage(img)

	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex, tex.ID != 0
}

func fileExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	}
	return ".png"
}

// Unload releases models and cached textures.
func (r *OrnamentRenderer) Unload() {
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	r.textures = nil
	rl.UnloadModel(r.card)
	rl.UnloadModel(r.photo)
	rl.UnloadModel(r.blank)
}
