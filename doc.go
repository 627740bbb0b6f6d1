// Package acesrender renders a procedural gradient in the scene-linear
// ACEScg working space and converts it to display-referred 8-bit sRGB
// through a perceptual tonemap.
//
// The pipeline is pointwise and deterministic: every display pixel is
// derived from exactly one scene-linear pixel. Scene-linear buffers can
// be stored as scanline OpenEXR files, display buffers as PNG or WebP.
package acesrender
