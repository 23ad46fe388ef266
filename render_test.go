package viewscene

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blendedScene(t *testing.T) (*Scene, *fakeShape, *fakeShape, *[]string) {
	t.Helper()
	sc := newTestScene()
	root := sc.Root()
	root.SetPosition(core.PolarCoord{})

	var log []string
	a := newFakeShape(sc, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	a.blended = true
	a.log = &log
	a.centers = []mgl32.Vec3{{0, 0, -0.8}, {0, 0, 0.4}}

	b := newFakeShape(sc, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	b.blended = true
	b.log = &log
	b.centers = []mgl32.Vec3{{0, 0, -0.2}, {0, 0, 0.9}}

	require.NoError(t, root.Add(a))
	require.NoError(t, root.Add(b))
	return sc, a, b, &log
}

func drawCalls(log []string) []string {
	var out []string
	for _, l := range log {
		if strings.HasPrefix(l, "draw ") || strings.HasPrefix(l, "begin ") || strings.HasPrefix(l, "end ") {
			out = append(out, l)
		}
	}
	return out
}

func TestRenderZsort_FarthestFirst(t *testing.T) {
	sc, a, b, log := blendedScene(t)
	sc.Render(&recordingBackend{}, testRect, false)

	// The camera looks down -z, so the smallest z is farthest away.
	want := []string{
		"begin " + itoa(a.id), "draw " + itoa(a.id) + "/0", "end " + itoa(a.id),
		"begin " + itoa(b.id), "draw " + itoa(b.id) + "/0", "end " + itoa(b.id),
		"begin " + itoa(a.id), "draw " + itoa(a.id) + "/1", "end " + itoa(a.id),
		"begin " + itoa(b.id), "draw " + itoa(b.id) + "/1", "end " + itoa(b.id),
	}
	assert.Equal(t, want, drawCalls(*log))
}

func TestRenderZsort_EyePlanePointsDrawFirst(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	var log []string
	shape := newFakeShape(sc, mgl32.Vec3{}, mgl32.Vec3{2, 2, 5})
	shape.blended = true
	shape.log = &log
	shape.centers = []mgl32.Vec3{{1, 0, 5}, {0, 0, 3}, {2, 0, 2}, {0, 0, 0}}
	require.NoError(t, root.Add(shape))

	// w is the x coordinate, so the second and fourth points lie on the eye
	// plane.
	root.zRow = mgl32.Vec4{0, 0, 1, 0}
	root.wRow = mgl32.Vec4{1, 0, 0, 0}
	assert.True(t, math.IsInf(float64(root.depth(mgl32.Vec3{0, 0, 3})), 1))
	assert.True(t, math.IsInf(float64(root.depth(mgl32.Vec3{})), 1))
	assert.InDelta(t, 5, root.depth(mgl32.Vec3{1, 0, 5}), 1e-6)

	root.renderZsort(&RenderContext{Backend: &recordingBackend{}})
	id := itoa(shape.id)
	want := []string{
		"begin " + id,
		"draw " + id + "/1", "draw " + id + "/3", "draw " + id + "/0", "draw " + id + "/2",
		"end " + id,
	}
	assert.Equal(t, want, drawCalls(log))
}

func TestRenderZsort_ReversedCamera(t *testing.T) {
	sc, a, b, log := blendedScene(t)
	sc.Root().SetPosition(core.PolarCoord{Theta: 180})
	sc.Render(&recordingBackend{}, testRect, false)

	want := []string{
		"begin " + itoa(b.id), "draw " + itoa(b.id) + "/1", "end " + itoa(b.id),
		"begin " + itoa(a.id), "draw " + itoa(a.id) + "/1", "end " + itoa(a.id),
		"begin " + itoa(b.id), "draw " + itoa(b.id) + "/0", "end " + itoa(b.id),
		"begin " + itoa(a.id), "draw " + itoa(a.id) + "/0", "end " + itoa(a.id),
	}
	assert.Equal(t, want, drawCalls(*log))
}

func TestRenderZsort_GroupsRunsOfOneShape(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	root.SetPosition(core.PolarCoord{})

	var log []string
	s := newFakeShape(sc, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	s.blended = true
	s.log = &log
	s.centers = []mgl32.Vec3{{0, 0, 0.5}, {0, 0, -0.5}, {0, 0, 0}}
	require.NoError(t, root.Add(s))

	sc.Render(&recordingBackend{}, testRect, false)

	id := itoa(s.id)
	assert.Equal(t, []string{
		"begin " + id, "draw " + id + "/1", "draw " + id + "/2", "draw " + id + "/0", "end " + id,
	}, drawCalls(log))
	assert.Equal(t, 1, countOf(log, "renderBegin "+id))
}

func TestRenderZsort_DepthIsMonotonic(t *testing.T) {
	sc, _, _, _ := blendedScene(t)
	root := sc.Root()
	root.SetPosition(core.PolarCoord{Theta: 30, Phi: 20})
	sc.Render(&recordingBackend{}, testRect, false)

	points := []mgl32.Vec3{
		{0.1, 0.2, -0.9}, {-0.5, 0.3, -0.3}, {0, 0, 0}, {0.4, -0.6, 0.3}, {0.2, 0.1, 0.9},
	}
	view := root.ModelMatrix()
	for i, p := range points {
		for j, q := range points {
			pz := view.Mul4x1(p.Vec4(1)).Z()
			qz := view.Mul4x1(q.Vec4(1)).Z()
			if pz < qz {
				// p is farther from the eye.
				assert.Greater(t, root.depth(p), root.depth(q), "points %d and %d", i, j)
			}
		}
	}
}

func TestRender_PassOrder(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()

	var log []string
	opaque := newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	opaque.log = &log
	require.NoError(t, root.Add(opaque))
	cp := newFakeClipPlane(sc, 0.5)
	require.NoError(t, root.Add(cp))
	require.NoError(t, root.Add(&fakeLight{id: sc.NextID(), log: &log}))
	require.NoError(t, root.Add(&fakeLight{id: sc.NextID(), viewpoint: true, log: &log}))

	be := &recordingBackend{}
	ctx := &RenderContext{Rect: testRect, Backend: be}
	root.Update(ctx)
	root.Render(ctx, true)

	assert.Equal(t, []string{
		"viewport",
		"depthMask true",
		"clear 3",
		"matrices",
		"disableLights",
		"push",
		"pop",
		"depthTest false",
		"depthMask false",
		"depthTest true",
		"depthMask true",
		"blend false",
	}, be.calls)
	assert.Equal(t, 1, opaque.rendered)
	assert.False(t, cp.enabled)
	assert.Equal(t, 0, ctx.ClipPlanes)
	assert.Len(t, log, 3)
	assert.Contains(t, log[0], "light")
	assert.Contains(t, log[1], "light")
	assert.Equal(t, "render "+itoa(opaque.id), log[2])
}

func TestRender_BlendedPassState(t *testing.T) {
	sc := newTestScene()
	be := &recordingBackend{}
	ctx := &RenderContext{Rect: testRect, Backend: be, Capture: true}
	sc.Root().Update(ctx)
	sc.Root().Render(ctx, false)

	assert.Equal(t, []string{
		"viewport",
		"matrices",
		"disableLights",
		"depthMask false",
		"blendFunc true",
		"blend true",
	}, be.calls)
}

func TestRender_ChildrenAndSelection(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Replace, false)
	require.NoError(t, err)
	child.SetViewport(Viewport{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, child.SetMouseMode(1, MouseSelecting))

	be := &recordingBackend{}
	sc.Render(be, testRect, false)
	require.Len(t, be.viewports, 4)
	assert.Equal(t, core.Rect2{X: 50, Y: 50, Width: 50, Height: 50}, be.viewports[1])
	assert.Empty(t, be.selections)

	require.NoError(t, child.ButtonBegin(1, 5, 5))
	require.NoError(t, child.ButtonUpdate(1, 25, 25))
	be = &recordingBackend{}
	sc.Render(be, testRect, false)
	require.Len(t, be.selections, 2)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.5, 0.5}, be.selections[0])
}

func TestRender_ClearsScaleChanged(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	root.SetScale(mgl32.Vec3{2, 1, 1})
	assert.True(t, root.ModelViewpoint().ScaleChanged())

	sc.Render(&recordingBackend{}, testRect, false)
	assert.False(t, root.ModelViewpoint().ScaleChanged())
}

func itoa(id core.NodeID) string {
	return strconv.Itoa(int(id))
}

func countOf(log []string, s string) int {
	n := 0
	for _, l := range log {
		if l == s {
			n++
		}
	}
	return n
}
