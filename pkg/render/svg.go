package render

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"math"
	"slices"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// minDepth keeps labels at or behind the camera from blowing up.
const minDepth = 0.1

// SVG renders a perspective snapshot of labels as seen from the camera.
// Farther labels are drawn first and fade with depth.
func SVG(labels []cloud.Label, opts ...Option) []byte {
	o := newOptions(opts...)

	order := slices.Clone(labels)
	slices.SortStableFunc(order, func(a, b cloud.Label) int {
		return cmp.Compare(a.Position.Z, b.Position.Z)
	})

	focal := (o.height / 2) / math.Tan(o.fov*math.Pi/360)
	cx, cy := o.width/2, o.height/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		o.width, o.height, o.width, o.height)
	if o.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(o.title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", o.background.Hex())
	buf.WriteString(`  <g font-family="Inter, Helvetica, Arial, sans-serif" text-anchor="middle" dominant-baseline="middle">` + "\n")

	for _, l := range order {
		depth := max(o.cameraZ-l.Position.Z, minDepth)
		scale := focal / depth
		fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" fill-opacity="%.2f">%s</text>`+"\n",
			cx+l.Position.X*scale,
			cy-l.Position.Y*scale,
			l.Size*scale,
			l.Color.Hex(),
			opacity(l.Position.Z, o.radius),
			html.EscapeString(l.Word))
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// opacity maps z in [-r, r] to [0.35, 1].
func opacity(z, r float64) float64 {
	if r <= 0 {
		return 1
	}
	t := min(max((z+r)/(2*r), 0), 1)
	return 0.35 + 0.65*t
}
