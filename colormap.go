package pointview

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Encoding selects how depth is turned into colour when a cloud has no
// colours of its own.
type Encoding int

const (
	EncodingGrayscale Encoding = iota
	EncodingTurbo
	EncodingJet
	EncodingHeat
)

var encodingNames = map[Encoding]string{
	EncodingGrayscale: "grayscale",
	EncodingTurbo:     "turbo",
	EncodingJet:       "jet",
	EncodingHeat:      "heat",
}

func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

func ParseEncoding(s string) (Encoding, error) {
	for e, name := range encodingNames {
		if name == s {
			return e, nil
		}
	}
	return EncodingTurbo, fmt.Errorf("unknown colour encoding %q", s)
}

// Gradient is a piecewise linear colour ramp over evenly spaced stops.
type Gradient []colorful.Color

func mustGradient(hexes ...string) Gradient {
	g := make(Gradient, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		g[i] = c
	}
	return g
}

var (
	turboGradient = mustGradient(
		"#30123b", "#4145ab", "#4675ed", "#39a2fc", "#1bcfd4",
		"#24eca6", "#61fc6c", "#a4fc3b", "#d1e834", "#f3c63a",
		"#fe9b2d", "#f36315", "#d93806", "#b11901", "#7a0402",
	)
	jetGradient = mustGradient(
		"#00007f", "#0000ff", "#007fff", "#00ffff", "#7fff7f",
		"#ffff00", "#ff7f00", "#ff0000", "#7f0000",
	)
	heatGradient = mustGradient("#0000ff", "#00ffff", "#00ff00", "#ffff00", "#ff0000")
)

// At samples the gradient at t, clamped to [0,1].
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if len(g) == 1 || t <= 0 || math.IsNaN(t) {
		return g[0]
	}
	if t >= 1 {
		return g[len(g)-1]
	}
	pos := t * float64(len(g)-1)
	i := int(pos)
	return g[i].BlendRgb(g[i+1], pos-float64(i))
}

// Color maps an intensity in [0,1] to an opaque colour.
func (e Encoding) Color(intensity float64) color.RGBA {
	var c colorful.Color
	switch e {
	case EncodingGrayscale:
		v := math.Max(0, math.Min(1, intensity))
		c = colorful.Color{R: v, G: v, B: v}
	case EncodingJet:
		c = jetGradient.At(intensity)
	case EncodingHeat:
		c = heatGradient.At(intensity)
	default:
		c = turboGradient.At(intensity)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// depthRange returns |min z| and |max z| shrunk by threshold.
func depthRange(zs []float64, threshold float64) (lo, hi float64) {
	if len(zs) == 0 {
		return 0, 0
	}
	minZ, maxZ := zs[0], zs[0]
	for _, z := range zs[1:] {
		minZ = math.Min(minZ, z)
		maxZ = math.Max(maxZ, z)
	}
	return math.Abs(minZ) * (1 + threshold), math.Abs(maxZ) * (1 - threshold)
}

// DepthColors colours each point by |z|. The scale factor is 1/(lo+hi) of
// the thresholded depth range; inverse flips the ramp.
func DepthColors(zs []float64, enc Encoding, threshold float64, inverse bool) []color.RGBA {
	lo, hi := depthRange(zs, threshold)
	div := lo + hi
	if math.Abs(div) < 1e-9 {
		div = 0.001
	}
	factor := 1 / div

	colors := make([]color.RGBA, len(zs))
	for i, z := range zs {
		depth := math.Abs(z)
		intensity := math.Max(0, depth*factor)
		if inverse {
			intensity = math.Max(0, 1-depth*factor)
		}
		colors[i] = enc.Color(intensity)
	}
	return colors
}
