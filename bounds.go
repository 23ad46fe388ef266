package viewscene

import (
	"github.com/gekko3d/viewscene/core"
)

// BoundingBox returns the union of the non-ignored shapes and children
// clipped by this subscene's clip planes, recomputing it first when dirty.
func (s *Subscene) BoundingBox() core.AABox {
	if s.bboxChanges {
		s.recomputeBounds()
	}
	return s.bbox
}

// growBounds adds box to the bounds of s and its ancestors. Growing is
// incremental; anything that can shrink the bounds goes through
// invalidateBounds instead.
func (s *Subscene) growBounds(box core.AABox, changes bool) {
	for sub := s; sub != nil; sub = sub.parent {
		sub.bbox.Union(box)
		sub.intersectClipPlanes()
		sub.bboxChanges = sub.bboxChanges || changes
		if sub.ignoreExtent {
			return
		}
		box = sub.bbox
	}
}

// invalidateBounds recomputes the whole tree from the root down.
func (s *Subscene) invalidateBounds() {
	top := s
	for top.parent != nil {
		top = top.parent
	}
	top.recomputeBounds()
}

func (s *Subscene) recomputeBounds() {
	s.bbox.Invalidate()
	s.bboxChanges = false

	for _, sub := range s.children {
		sub.recomputeBounds()
		if sub.ignoreExtent {
			continue
		}
		s.bbox.Union(sub.bbox)
		s.bboxChanges = s.bboxChanges || sub.bboxChanges
	}
	for _, shape := range s.shapes {
		if shape.IgnoreExtent() {
			continue
		}
		s.bbox.Union(shape.BoundingBox())
		s.bboxChanges = s.bboxChanges || shape.BBoxChanges()
	}
	s.intersectClipPlanes()

	if s.parent == nil {
		instrumentCountBoundsRecompute(s.scene.tag)
		s.scene.Logger().Debugf("subscene %d bounds recomputed: %v - %v", s.id, s.bbox.Min, s.bbox.Max)
	}
}

func (s *Subscene) intersectClipPlanes() {
	for _, cp := range s.clipPlanes {
		cp.IntersectBBox(&s.bbox)
	}
}

// boundingSphere frames the bounds, padded by the subscene's own decoration,
// under the resolved model scale.
// An empty or degenerate box frames the unit sphere at the origin.
func (s *Subscene) boundingSphere() core.Sphere {
	box := s.BoundingBox()
	if !box.IsValid() {
		return core.UnitSphere()
	}
	if s.bboxDeco != nil {
		box = s.bboxDeco.PaddedBox(box)
	}
	sphere := core.SphereFromBox(box, s.ModelViewpoint().Scale())
	if sphere.Radius <= 0 {
		sphere.Radius = 1
	}
	return sphere
}
