package viewscene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Render draws s and its subtree. The opaque pass clears, draws backgrounds,
// decorations and unsorted shapes; the other pass draws blended shapes back
// to front. Update must have run for the frame first.
func (s *Subscene) Render(ctx *RenderContext, opaque bool) {
	ctx.Subscene = s
	b := ctx.Backend

	b.Viewport(s.pviewport)
	if s.background != nil && opaque {
		b.DepthMask(true)
		b.Clear(s.background.ClearFlags(ctx))
	}
	b.LoadMatrices(s.projMatrix, s.modelMatrix)
	s.setupLights(ctx)

	if opaque {
		if s.background != nil {
			b.DepthTest(false)
			b.DepthMask(false)
			s.background.Render(ctx)
		}
		b.DepthTest(true)
		b.DepthMask(true)
		b.Blend(false)
		if s.bboxDeco != nil {
			s.bboxDeco.Render(ctx)
		}
	}

	s.renderClipPlanes(ctx)

	if opaque {
		s.renderUnsorted(ctx)
	} else {
		b.DepthMask(false)
		b.BlendFunc(ctx.Capture)
		b.Blend(true)

		pm := s.projMatrix.Mul4(s.modelMatrix)
		s.zRow = pm.Row(2)
		s.wRow = pm.Row(3)
		s.renderZsort(ctx)
	}

	s.ModelViewpoint().ClearScaleChanged()
	s.disableClipPlanes(ctx)

	for _, sub := range s.children {
		sub.Render(ctx, opaque)
	}
	ctx.Subscene = s

	if s.mouse.selectState == SelectChanging {
		b.DrawSelection(s.mouse.mousePosition)
	}
}

// setupLights enables scene-relative lights first, then camera-relative
// lights under an identity model matrix.
func (s *Subscene) setupLights(ctx *RenderContext) {
	b := ctx.Backend
	b.DisableLights()

	anyViewpoint := false
	for i, light := range s.lights {
		if light.Viewpoint() {
			anyViewpoint = true
			continue
		}
		light.Setup(ctx, i)
	}
	if !anyViewpoint {
		return
	}

	b.PushModel(mgl32.Ident4())
	for i, light := range s.lights {
		if light.Viewpoint() {
			light.Setup(ctx, i)
		}
	}
	b.PopModel()
}

func (s *Subscene) renderClipPlanes(ctx *RenderContext) {
	ctx.ClipPlanes = 0
	for _, cp := range s.clipPlanes {
		cp.Render(ctx)
	}
}

func (s *Subscene) disableClipPlanes(ctx *RenderContext) {
	for _, cp := range s.clipPlanes {
		cp.Enable(false)
	}
	ctx.ClipPlanes = 0
}

func (s *Subscene) renderUnsorted(ctx *RenderContext) {
	for _, shape := range s.unsorted {
		shape.Render(ctx)
	}
}

type zsortItem struct {
	key   float32
	shape Shape
	index int
}

// depth returns the projected depth of a point under the matrices of the
// last blended pass. Points on the eye plane have no projected depth and
// count as the farthest.
func (s *Subscene) depth(p mgl32.Vec3) float32 {
	v := p.Vec4(1)
	w := s.wRow.Dot(v)
	if w == 0 {
		return float32(math.Inf(1))
	}
	d := s.zRow.Dot(v) / w
	if math.IsNaN(float64(d)) {
		return float32(math.Inf(1))
	}
	return d
}

// renderZsort draws every primitive of the blended shapes, farthest first.
// Consecutive primitives of the same shape share one DrawBegin/DrawEnd pair.
func (s *Subscene) renderZsort(ctx *RenderContext) {
	var items []zsortItem
	for _, shape := range s.blended {
		shape.RenderBegin(ctx)
		for j := 0; j < shape.PrimitiveCount(); j++ {
			items = append(items, zsortItem{
				key:   -s.depth(shape.PrimitiveCenter(j)),
				shape: shape,
				index: j,
			})
		}
	}
	instrumentCountSortedPrimitives(s.scene.tag, len(items))
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	var prev Shape
	for _, item := range items {
		if item.shape != prev {
			if prev != nil {
				prev.DrawEnd(ctx)
			}
			item.shape.DrawBegin(ctx)
			prev = item.shape
		}
		item.shape.DrawPrimitive(ctx, item.index)
	}
	if prev != nil {
		prev.DrawEnd(ctx)
	}
}
