// Package render hands a word-cloud layout to something that can draw it.
//
// The interactive 3D scene lives outside this module. This package produces
// the three things the rest of wordsphere needs from a layout:
//
//   - [JSON]: a scene payload (radius, camera, labels) for a 3D front end
//   - [SVG]: a static snapshot seen from the default camera
//   - [Overlay]: the "Top words" summary as plain text
//
// The default camera sits at (0, 0, 10) looking at the origin with a 60°
// vertical field of view.
package render
