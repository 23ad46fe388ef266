package viewscene

import (
	"fmt"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeShape struct {
	id       core.NodeID
	box      core.AABox
	changes  bool
	ignore   bool
	blended  bool
	centers  []mgl32.Vec3
	log      *[]string
	rendered int
}

func newFakeShape(sc *Scene, min, max mgl32.Vec3) *fakeShape {
	return &fakeShape{id: sc.NextID(), box: core.NewAABox(min, max)}
}

func (f *fakeShape) ID() core.NodeID         { return f.id }
func (f *fakeShape) TypeID() core.TypeID     { return core.TypeShape }
func (f *fakeShape) TypeName() string        { return "points" }
func (f *fakeShape) BoundingBox() core.AABox { return f.box }
func (f *fakeShape) BBoxChanges() bool       { return f.changes }
func (f *fakeShape) IgnoreExtent() bool      { return f.ignore }
func (f *fakeShape) IsBlended() bool         { return f.blended }
func (f *fakeShape) IsClipPlane() bool       { return false }

func (f *fakeShape) record(format string, args ...any) {
	if f.log != nil {
		*f.log = append(*f.log, fmt.Sprintf(format, args...))
	}
}

func (f *fakeShape) Render(ctx *RenderContext) {
	f.rendered++
	f.record("render %d", f.id)
}

func (f *fakeShape) RenderBegin(ctx *RenderContext) { f.record("renderBegin %d", f.id) }
func (f *fakeShape) PrimitiveCount() int            { return len(f.centers) }

func (f *fakeShape) PrimitiveCenter(index int) mgl32.Vec3 {
	return f.centers[index]
}

func (f *fakeShape) DrawBegin(ctx *RenderContext) { f.record("begin %d", f.id) }

func (f *fakeShape) DrawPrimitive(ctx *RenderContext, index int) {
	f.record("draw %d/%d", f.id, index)
}

func (f *fakeShape) DrawEnd(ctx *RenderContext) { f.record("end %d", f.id) }

// fakeClipPlane keeps everything with x <= maxX.
type fakeClipPlane struct {
	fakeShape
	maxX    float32
	enabled bool
}

func newFakeClipPlane(sc *Scene, maxX float32) *fakeClipPlane {
	return &fakeClipPlane{
		fakeShape: fakeShape{id: sc.NextID(), box: core.EmptyAABox(), ignore: true},
		maxX:      maxX,
	}
}

func (c *fakeClipPlane) TypeName() string  { return "clipplanes" }
func (c *fakeClipPlane) IsClipPlane() bool { return true }

func (c *fakeClipPlane) Render(ctx *RenderContext) {
	ctx.ClipPlanes++
	c.enabled = true
}

func (c *fakeClipPlane) Enable(on bool) { c.enabled = on }

func (c *fakeClipPlane) IntersectBBox(box *core.AABox) {
	box.Max[0] = min(box.Max[0], c.maxX)
}

type fakeLight struct {
	id        core.NodeID
	viewpoint bool
	log       *[]string
}

func (l *fakeLight) ID() core.NodeID     { return l.id }
func (l *fakeLight) TypeID() core.TypeID { return core.TypeLight }
func (l *fakeLight) Viewpoint() bool     { return l.viewpoint }

func (l *fakeLight) Setup(ctx *RenderContext, index int) {
	*l.log = append(*l.log, fmt.Sprintf("light %d/%d", l.id, index))
}

type fakeDeco struct {
	id  core.NodeID
	pad float32
}

func (d *fakeDeco) ID() core.NodeID            { return d.id }
func (d *fakeDeco) TypeID() core.TypeID        { return core.TypeBBoxDeco }
func (d *fakeDeco) Render(ctx *RenderContext) {}

func (d *fakeDeco) PaddedBox(box core.AABox) core.AABox {
	p := mgl32.Vec3{d.pad, d.pad, d.pad}
	return core.AABox{Min: box.Min.Sub(p), Max: box.Max.Add(p)}
}

// recordingBackend logs every call it receives.
type recordingBackend struct {
	calls      []string
	selections [][4]float32
	viewports  []core.Rect2
}

func (b *recordingBackend) add(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *recordingBackend) Viewport(r core.Rect2) {
	b.viewports = append(b.viewports, r)
	b.add("viewport")
}

func (b *recordingBackend) Clear(flags ClearFlags)                    { b.add("clear %d", flags) }
func (b *recordingBackend) LoadMatrices(projection, model mgl32.Mat4) { b.add("matrices") }
func (b *recordingBackend) DepthTest(on bool)                         { b.add("depthTest %v", on) }
func (b *recordingBackend) DepthMask(on bool)                         { b.add("depthMask %v", on) }
func (b *recordingBackend) Blend(on bool)                             { b.add("blend %v", on) }
func (b *recordingBackend) BlendFunc(capture bool)                    { b.add("blendFunc %v", capture) }
func (b *recordingBackend) DisableLights()                            { b.add("disableLights") }
func (b *recordingBackend) PushModel(m mgl32.Mat4)                    { b.add("push") }
func (b *recordingBackend) PopModel()                                 { b.add("pop") }

func (b *recordingBackend) DrawSelection(rect [4]float32) {
	b.selections = append(b.selections, rect)
	b.add("selection")
}

func newTestScene() *Scene {
	return NewScene(DefaultConfig(), WithLogger(NewNopLogger()))
}

var testRect = core.Rect2{Width: 100, Height: 100}

func approxMat(a, b mgl32.Mat4) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}
