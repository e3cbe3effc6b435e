package shaders

import (
	_ "embed"
)

//go:embed debug.wgsl
var DebugWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string
