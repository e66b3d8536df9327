package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/systems"
)

func TestFailedPhotoUsesBlankModel(t *testing.T) {
	r := &OrnamentRenderer{
		textures: make(map[string]rl.Texture2D),
		failed:   map[string]bool{"broken": true},
	}

	tex, ok := r.texture(&systems.OrnamentView{PhotoID: "broken", Image: "data:image/png;base64,AAAA"})
	if ok {
		t.Fatal("failed photo reported a texture")
	}
	model, tint := r.photoModel(tex, ok)
	if model != &r.blank {
		t.Error("failed photo drawn with the shared photo model")
	}
	if tint != Emerald {
		t.Errorf("tint = %v, want emerald", tint)
	}
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", ".jpg"},
		{"image/gif", ".gif"},
		{"image/bmp", ".bmp"},
		{"image/png", ".png"},
		{"image/webp", ".png"},
	}
	for _, tt := range tests {
		if got := fileExt(tt.mime); got != tt.want {
			t.Errorf("fileExt(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
