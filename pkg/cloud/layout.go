package cloud

import (
	"sync"

	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// Layout defaults.
const (
	DefaultRadius   = 4.0
	DefaultBaseSize = 0.4
	DefaultSizeGain = 1.2
)

// Label is a keyword ready to be drawn: where, how big, and in which color.
type Label struct {
	Word     string
	Weight   float64
	Position Vec3
	Size     float64
	Color    RGB
}

// Builder turns ranked keywords into labels on a sphere.
type Builder struct {
	Radius   float64
	BaseSize float64
	SizeGain float64
	Gradient Gradient
	Sampler  *Sampler
}

// Option configures a Builder.
type Option func(*Builder)

// WithRadius sets the sphere radius labels are placed on.
func WithRadius(r float64) Option { return func(b *Builder) { b.Radius = r } }

// WithSizes sets the font size base and per-unit-weight gain.
func WithSizes(base, gain float64) Option {
	return func(b *Builder) { b.BaseSize, b.SizeGain = base, gain }
}

// WithGradient sets the weight-to-color ramp.
func WithGradient(g Gradient) Option { return func(b *Builder) { b.Gradient = g } }

// WithSampler sets the position source. Pass a seeded sampler for
// reproducible output.
func WithSampler(s *Sampler) Option { return func(b *Builder) { b.Sampler = s } }

// NewBuilder returns a Builder with the default radius, sizes and gradient
// and an entropy-seeded sampler.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		Radius:   DefaultRadius,
		BaseSize: DefaultBaseSize,
		SizeGain: DefaultSizeGain,
		Gradient: DefaultGradient,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.Sampler == nil {
		b.Sampler = NewRandomSampler()
	}
	return b
}

// Build returns one label per keyword, in input order.
//
// Size is BaseSize + weight*SizeGain and is not clamped: a weight outside
// [0, 1] yields a label smaller than BaseSize (possibly negative) or larger
// than BaseSize+SizeGain. Color uses the clamped weight.
func (b *Builder) Build(words []keyword.Keyword) []Label {
	labels := make([]Label, len(words))
	for i, w := range words {
		labels[i] = Label{
			Word:     w.Word,
			Weight:   w.Weight,
			Position: b.Sampler.Point(b.Radius),
			Size:     b.Size(w.Weight),
			Color:    b.Gradient.At(w.Weight),
		}
	}
	return labels
}

// Size returns the label size for weight w.
func (b *Builder) Size(w float64) float64 {
	return b.BaseSize + w*b.SizeGain
}

// Memo holds the layout of the most recent result and rebuilds it only when
// a different result is supplied. It is safe for concurrent use.
type Memo struct {
	builder *Builder

	mu     sync.Mutex
	res    *keyword.Result
	id     string
	labels []Label
}

// NewMemo returns a Memo backed by b.
func NewMemo(b *Builder) *Memo {
	if b == nil {
		b = NewBuilder()
	}
	return &Memo{builder: b}
}

// Labels returns the layout for r, computing it on first sight of r.
// Results are the same when they are the same pointer or share a non-empty
// ID. A nil result has no labels.
func (m *Memo) Labels(r *keyword.Result) []Label {
	if r == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.res != nil && (m.res == r || (r.ID != "" && m.id == r.ID)) {
		return m.labels
	}
	m.labels = m.builder.Build(r.Words)
	m.res, m.id = r, r.ID
	return m.labels
}

// Reset drops the cached layout.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.res, m.id, m.labels = nil, "", nil
}
