package cloud

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// CSS formats c as "rgb(r, g, b)".
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts c for use with go-colorful (blending, distance, terminals).
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Gradient is a two-stop linear color ramp.
type Gradient struct {
	Low  RGB
	High RGB
}

// DefaultGradient runs from indigo (weight 0) to pink (weight 1).
var DefaultGradient = Gradient{
	Low:  RGB{99, 102, 241},
	High: RGB{236, 72, 153},
}

// At maps w to a color. w is clamped to [0, 1] first, so At(-3) == At(0) and
// At(7) == At(1); NaN is treated as 0. Each channel is interpolated
// independently and rounded half away from zero.
func (g Gradient) At(w float64) RGB {
	t := clamp01(w)
	return RGB{
		R: lerp(g.Low.R, g.High.R, t),
		G: lerp(g.Low.G, g.High.G, t),
		B: lerp(g.Low.B, g.High.B, t),
	}
}

func clamp01(w float64) float64 {
	if math.IsNaN(w) {
		return 0
	}
	return min(max(w, 0), 1)
}

func lerp(lo, hi uint8, t float64) uint8 {
	return uint8(math.Round(float64(lo) + t*(float64(hi)-float64(lo))))
}
