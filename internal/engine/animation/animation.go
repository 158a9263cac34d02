// Package animation holds the layer weights and rig blend that the aim
// controller drives. Clip playback is owned elsewhere.
package animation

import "github.com/Faultbox/polygon-tps/pkg/math"

// Animator exposes per-layer blend weights. Layer 0 is the base layer and
// always has full weight.
type Animator struct {
	weights []float32
}

// NewAnimator creates an animator with the given number of layers.
func NewAnimator(layers int) *Animator {
	if layers < 1 {
		layers = 1
	}
	a := &Animator{weights: make([]float32, layers)}
	a.weights[0] = 1
	return a
}

// Layers returns the layer count.
func (a *Animator) Layers() int {
	return len(a.weights)
}

// LayerWeight returns the weight of a layer, or 0 for an unknown layer.
func (a *Animator) LayerWeight(layer int) float32 {
	if layer < 0 || layer >= len(a.weights) {
		return 0
	}
	return a.weights[layer]
}

// SetLayerWeight sets a layer weight, clamped to [0, 1]. Unknown layers and
// the base layer are ignored.
func (a *Animator) SetLayerWeight(layer int, weight float32) {
	if layer <= 0 || layer >= len(a.weights) {
		return
	}
	a.weights[layer] = math.Clamp01(weight)
}

// Rig is the aim-constraint rig whose influence blends the upper body
// toward the aim target.
type Rig struct {
	weight float32
}

// Weight returns the rig influence.
func (r *Rig) Weight() float32 {
	return r.weight
}

// SetWeight sets the rig influence, clamped to [0, 1].
func (r *Rig) SetWeight(w float32) {
	r.weight = math.Clamp01(w)
}
