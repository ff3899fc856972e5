// Package cloud lays out keywords as labels on a sphere.
//
// The layout has three parts:
//
//   - [Sampler] draws points uniformly over the surface of a sphere. It uses the
//     inverse-CDF of the polar angle, so labels do not cluster at the poles.
//   - [Gradient] maps a weight to a color by clamping it to [0, 1] and
//     interpolating each RGB channel linearly between two endpoints.
//   - [Builder] combines both into a [Label] per keyword: position on the
//     sphere, font size from the weight, and color from the weight.
//
// Positions are random, so calling [Builder.Build] twice on the same input
// gives two different clouds. A renderer that redraws every frame should hold
// on to one layout per analysis result; [Memo] does that.
//
// # Reproducibility
//
// A Sampler owns its random source. Use [NewSampler] with a fixed seed for
// reproducible layouts (tests, exported snapshots) and [NewRandomSampler]
// everywhere else.
//
//	b := cloud.NewBuilder(cloud.WithSampler(cloud.NewSampler(42)))
//	labels := b.Build(result.Words)
//
// Labels may overlap. No collision avoidance is attempted.
package cloud
