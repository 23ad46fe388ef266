package viewscene

import (
	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is drawable content. Blended shapes are drawn primitive by primitive
// in depth order; clip-plane shapes must also implement ClipPlaneSet.
type Shape interface {
	core.Node
	TypeName() string
	BoundingBox() core.AABox
	// BBoxChanges reports a box that depends on the view, forcing a recompute
	// every frame.
	BBoxChanges() bool
	IgnoreExtent() bool
	IsBlended() bool
	IsClipPlane() bool

	Render(ctx *RenderContext)

	RenderBegin(ctx *RenderContext)
	PrimitiveCount() int
	PrimitiveCenter(index int) mgl32.Vec3
	DrawBegin(ctx *RenderContext)
	DrawPrimitive(ctx *RenderContext, index int)
	DrawEnd(ctx *RenderContext)
}

// ClipPlaneSet constrains bounds and enables backend clip tests.
type ClipPlaneSet interface {
	Shape
	Enable(on bool)
	IntersectBBox(box *core.AABox)
}

type Light interface {
	core.Node
	// Viewpoint lights are positioned relative to the camera.
	Viewpoint() bool
	Setup(ctx *RenderContext, index int)
}

type Background interface {
	core.Node
	ClearFlags(ctx *RenderContext) ClearFlags
	Render(ctx *RenderContext)
}

type BBoxDeco interface {
	core.Node
	Render(ctx *RenderContext)
	// PaddedBox returns the box enlarged to include axes, ticks and labels.
	PaddedBox(box core.AABox) core.AABox
}

// DefaultBackground clears colour and depth and draws nothing.
type DefaultBackground struct {
	id core.NodeID
}

func NewDefaultBackground(id core.NodeID) *DefaultBackground {
	return &DefaultBackground{id: id}
}

func (b *DefaultBackground) ID() core.NodeID     { return b.id }
func (b *DefaultBackground) TypeID() core.TypeID { return core.TypeBackground }

func (b *DefaultBackground) ClearFlags(ctx *RenderContext) ClearFlags {
	return ClearColor | ClearDepth
}

func (b *DefaultBackground) Render(ctx *RenderContext) {}
