package render

import (
	"encoding/json"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

// Camera defaults.
const (
	DefaultCameraZ = 10.0
	DefaultFOV     = 60.0
)

// Frame defaults for SVG snapshots.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// DefaultBackground is the snapshot background color.
var DefaultBackground = cloud.RGB{R: 15, G: 23, B: 42}

// Scene is the JSON payload consumed by a 3D front end.
type Scene struct {
	Radius float64      `json:"radius"`
	Camera Camera       `json:"camera"`
	Labels []SceneLabel `json:"labels"`
}

// Camera places the viewer.
type Camera struct {
	Position [3]float64 `json:"position"`
	FOV      float64    `json:"fov"`
}

// SceneLabel is one positioned word.
type SceneLabel struct {
	Word     string     `json:"word"`
	Weight   float64    `json:"weight"`
	Position [3]float64 `json:"position"`
	Size     float64    `json:"size"`
	Color    string     `json:"color"`
}

// Option configures rendering.
type Option func(*options)

type options struct {
	radius     float64
	cameraZ    float64
	fov        float64
	width      float64
	height     float64
	background cloud.RGB
	title      string
}

// WithRadius records the sphere radius the labels were placed on.
func WithRadius(r float64) Option { return func(o *options) { o.radius = r } }

// WithCamera moves the camera along the z axis and sets its field of view.
func WithCamera(z, fov float64) Option {
	return func(o *options) { o.cameraZ, o.fov = z, fov }
}

// WithSize sets the SVG frame size in pixels.
func WithSize(w, h float64) Option { return func(o *options) { o.width, o.height = w, h } }

// WithBackground sets the SVG background color.
func WithBackground(c cloud.RGB) Option { return func(o *options) { o.background = c } }

// WithTitle adds a <title> to the SVG, typically the article URL.
func WithTitle(t string) Option { return func(o *options) { o.title = t } }

func newOptions(opts ...Option) options {
	o := options{
		radius:     cloud.DefaultRadius,
		cameraZ:    DefaultCameraZ,
		fov:        DefaultFOV,
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewScene converts labels into a Scene, keeping their order.
func NewScene(labels []cloud.Label, opts ...Option) Scene {
	o := newOptions(opts...)
	s := Scene{
		Radius: o.radius,
		Camera: Camera{Position: [3]float64{0, 0, o.cameraZ}, FOV: o.fov},
		Labels: make([]SceneLabel, len(labels)),
	}
	for i, l := range labels {
		s.Labels[i] = SceneLabel{
			Word:     l.Word,
			Weight:   l.Weight,
			Position: l.Position.Array(),
			Size:     l.Size,
			Color:    l.Color.Hex(),
		}
	}
	return s
}

// JSON renders labels as an indented Scene document.
func JSON(labels []cloud.Label, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(NewScene(labels, opts...), "", "  ")
}
