package viewscene

import (
	"testing"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBox_UnionOfShapesAndChildren(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	assert.False(t, root.BoundingBox().IsValid())

	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})))
	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, false)
	require.NoError(t, err)
	require.NoError(t, child.Add(newFakeShape(sc, mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{0, 3, 0})))

	box := root.BoundingBox()
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 1}, box.Max)
	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, child.BoundingBox().Min)
}

func TestBoundingBox_IgnoredContent(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()

	ignored := newFakeShape(sc, mgl32.Vec3{-100, -100, -100}, mgl32.Vec3{100, 100, 100})
	ignored.ignore = true
	require.NoError(t, root.Add(ignored))
	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})))

	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, true)
	require.NoError(t, err)
	require.NoError(t, child.Add(newFakeShape(sc, mgl32.Vec3{5, 5, 5}, mgl32.Vec3{6, 6, 6})))

	assert.Equal(t, mgl32.Vec3{1, 1, 1}, root.BoundingBox().Max)
	assert.Equal(t, mgl32.Vec3{6, 6, 6}, child.BoundingBox().Max)
}

func TestBoundingBox_AddingShapesOnlyGrows(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, false)
	require.NoError(t, err)

	boxes := []core.AABox{
		core.NewAABox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}),
		core.NewAABox(mgl32.Vec3{0.2, 0.2, 0.2}, mgl32.Vec3{0.5, 0.5, 0.5}),
		core.NewAABox(mgl32.Vec3{-3, 0, 0}, mgl32.Vec3{0, 0, 4}),
		core.NewAABox(mgl32.Vec3{2, -1, 2}, mgl32.Vec3{2, 8, 2}),
	}
	prev := root.BoundingBox()
	for i, b := range boxes {
		target := root
		if i%2 == 1 {
			target = child
		}
		require.NoError(t, target.Add(&fakeShape{id: sc.NextID(), box: b}))

		cur := root.BoundingBox()
		if prev.IsValid() {
			assert.True(t, cur.Contains(prev), "step %d", i)
		}
		assert.True(t, cur.Contains(b), "step %d", i)
		prev = cur
	}
}

func TestBoundingBox_ClipPlaneShrinks(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{-4, -1, -1}, mgl32.Vec3{4, 1, 1})))
	before := root.BoundingBox()

	cp := newFakeClipPlane(sc, 2)
	require.NoError(t, root.Add(cp))

	after := root.BoundingBox()
	assert.True(t, before.Contains(after))
	assert.Equal(t, float32(2), after.Max.X())
	assert.Equal(t, float32(-4), after.Min.X())

	// Later growth is clipped too.
	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 1, 1})))
	assert.Equal(t, float32(2), root.BoundingBox().Max.X())
}

func TestBoundingBox_ChildClipPlaneOnlyClipsChild(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{5, 1, 1})))

	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, false)
	require.NoError(t, err)
	require.NoError(t, child.Add(newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{8, 1, 1})))
	require.NoError(t, child.Add(newFakeClipPlane(sc, 3)))

	assert.Equal(t, float32(3), child.BoundingBox().Max.X())
	assert.Equal(t, float32(5), root.BoundingBox().Max.X())
}

func TestBoundingBox_HideRecomputes(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	small := newFakeShape(sc, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	require.NoError(t, root.Add(small))

	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, false)
	require.NoError(t, err)
	big := newFakeShape(sc, mgl32.Vec3{-10, -10, -10}, mgl32.Vec3{10, 10, 10})
	require.NoError(t, child.Add(big))
	assert.Equal(t, float32(10), root.BoundingBox().Max.X())

	assert.True(t, sc.Hide(big.ID()))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, root.BoundingBox().Max)
	assert.False(t, child.BoundingBox().IsValid())

	require.NoError(t, child.Add(big))
	assert.True(t, sc.Hide(child.ID()))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, root.BoundingBox().Max)
}

func TestBoundingSphere(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()

	// Nothing to frame: the unit sphere.
	assert.Equal(t, core.UnitSphere(), root.boundingSphere())

	// A single point frames a degenerate box.
	require.NoError(t, root.Add(newFakeShape(sc, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{2, 2, 2})))
	s := root.boundingSphere()
	assert.Equal(t, float32(1), s.Radius)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, s.Center)

	// Decoration padding enlarges the framed volume.
	require.NoError(t, root.Add(&fakeDeco{id: sc.NextID(), pad: 1}))
	s = root.boundingSphere()
	assert.InDelta(t, float32(mgl32.Vec3{2, 2, 2}.Len()/2), s.Radius, 1e-5)
}

func TestBoundingSphere_OnlyOwnDecorationPads(t *testing.T) {
	sc := newTestScene()
	root := sc.Root()
	require.NoError(t, root.Add(&fakeDeco{id: sc.NextID(), pad: 1}))

	child, err := sc.NewSubscene(root, Inherit, Inherit, Inherit, Inherit, false)
	require.NoError(t, err)
	require.NoError(t, child.Add(newFakeShape(sc, mgl32.Vec3{}, mgl32.Vec3{2, 0, 0})))

	// The child resolves the root's decoration but frames its own bounds.
	assert.Same(t, root.BBoxDeco(), child.BBoxDeco())
	s := child.boundingSphere()
	assert.InDelta(t, 1, s.Radius, 1e-5)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.Center)

	require.NoError(t, child.Add(&fakeDeco{id: sc.NextID(), pad: 0.5}))
	s = child.boundingSphere()
	assert.InDelta(t, float32(mgl32.Vec3{3, 1, 1}.Len()/2), s.Radius, 1e-5)
}
