package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/config"
	"github.com/pthm-cable/tinsel/field"
	"github.com/pthm-cable/tinsel/gesture"
	"github.com/pthm-cable/tinsel/store"
	"github.com/pthm-cable/tinsel/systems"
)

// FieldParams maps configuration onto field generation parameters.
func FieldParams(cfg *config.Config) field.Params {
	return field.Params{
		AngleStep:    cfg.Tree.AngleStep,
		Height:       cfg.Tree.Height,
		Taper:        cfg.Tree.Taper,
		Offset:       cfg.Tree.Offset,
		SphereRadius: cfg.Sphere.Radius,
	}
}

// ParticleParams maps configuration onto particle motion parameters.
func ParticleParams(cfg *config.Config) systems.ParticleParams {
	return systems.ParticleParams{
		SmoothTime: cfg.Motion.ParticleSmoothTime,
		Epsilon:    cfg.Motion.Epsilon,
		Spin:       r3.Vec{X: cfg.Motion.SpinX, Y: cfg.Motion.SpinY},
	}
}

// OrnamentParams maps configuration onto ornament placement parameters.
func OrnamentParams(cfg *config.Config) systems.OrnamentParams {
	return systems.OrnamentParams{
		SmoothTime:     cfg.Motion.OrnamentSmoothTime,
		Epsilon:        cfg.Motion.Epsilon,
		Expansion:      cfg.Ornament.PresentedExpansion,
		PresentedScale: cfg.Ornament.PresentedScale,
		RestScale:      cfg.Ornament.RestScale,
		RotationStep:   cfg.Ornament.RotationStep,
	}
}

// RestBox maps configuration onto the photo rest position box.
func RestBox(cfg *config.Config) store.RestBox {
	return store.RestBox{
		HalfWidth: cfg.Ornament.RestBox.HalfWidth,
		Height:    cfg.Ornament.RestBox.Height,
		HalfDepth: cfg.Ornament.RestBox.HalfDepth,
	}
}

// GestureRules maps configuration onto gesture interpretation rules.
func GestureRules(cfg *config.Config) gesture.Rules {
	return gesture.Rules{
		MinHands:      cfg.Gesture.MinHands,
		MinScore:      cfg.Gesture.MinScore,
		ExplodeLabel:  cfg.Gesture.ExplodeLabel,
		AssembleLabel: cfg.Gesture.AssembleLabel,
	}
}
