package viewscene

import (
	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

type ClearFlags uint32

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
)

// Backend receives the graphics state changes issued while rendering a
// subscene. Geometry itself is drawn by the shapes.
type Backend interface {
	// Viewport sets both the viewport and the scissor rectangle.
	Viewport(r core.Rect2)
	Clear(flags ClearFlags)
	LoadMatrices(projection, model mgl32.Mat4)
	DepthTest(on bool)
	DepthMask(on bool)
	Blend(on bool)
	// BlendFunc selects source-alpha blending; capture is set while a
	// vector-graphics export is recording.
	BlendFunc(capture bool)
	DisableLights()
	// PushModel replaces the model matrix until PopModel.
	PushModel(m mgl32.Mat4)
	PopModel()
	// DrawSelection overlays the selection rectangle given in viewport
	// fractions (x1, y1, x2, y2).
	DrawSelection(rect [4]float32)
}

type RenderContext struct {
	Subscene *Subscene
	// Rect is the destination pixel rectangle of the whole frame.
	Rect    core.Rect2
	Capture bool
	Backend Backend
	// ClipPlanes counts backend clip planes in use by the current subscene.
	ClipPlanes int
}
