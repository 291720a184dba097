// Package shaders provides the embedded GLSL sources for brush rendering.
package shaders

import _ "embed"

// BrushVertexShader transforms brush vertices and forwards both UV sets.
//
//go:embed brush.vert
var BrushVertexShader string

// BrushFragmentShader shades brush faces: lightmap modulation, light-style
// averaging and the fullbright blend.
//
//go:embed brush.frag
var BrushFragmentShader string
