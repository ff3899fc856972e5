package cloud

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Vec3 is a point in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Array returns v as [x, y, z], the shape 3D scene graphs take positions in.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Sampler draws points uniformly distributed over a sphere centred on the
// origin. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler with a deterministic PCG source.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// NewRandomSampler returns a sampler seeded from the runtime's entropy source.
func NewRandomSampler() *Sampler {
	return NewSampler(rand.Uint64())
}

// NewSamplerFrom wraps an existing random source.
func NewSamplerFrom(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Point returns a point on the sphere of radius r.
//
// The azimuth is uniform in [0, 2π) and the polar angle is arccos(2v-1), which
// makes z uniform in [-r, r] and the surface density constant.
func (s *Sampler) Point(r float64) Vec3 {
	s.mu.Lock()
	u, v := s.rng.Float64(), s.rng.Float64()
	s.mu.Unlock()

	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	sinPhi := math.Sin(phi)
	return Vec3{
		X: r * sinPhi * math.Cos(theta),
		Y: r * sinPhi * math.Sin(theta),
		Z: r * math.Cos(phi),
	}
}
