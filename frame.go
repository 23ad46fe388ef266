package viewscene

import (
	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Update resolves the pixel viewport and matrices of s and its subtree for
// the frame drawn into ctx.Rect. Parents are always resolved before their
// children.
func (s *Subscene) Update(ctx *RenderContext) {
	ctx.Subscene = s
	s.setupViewport(ctx)

	sphere := s.boundingSphere()
	s.setupProjMatrix(sphere)
	s.setupModelMatrix(sphere.Center)

	for _, sub := range s.children {
		sub.Update(ctx)
	}
	ctx.Subscene = s
}

func (s *Subscene) setupViewport(ctx *RenderContext) {
	base := ctx.Rect
	if s.embedding[AspectViewport] != Replace && s.parent != nil {
		base = s.parent.pviewport
	}
	v := s.viewport
	s.pviewport = base.Sub(v.X, v.Y, v.Width, v.Height)
}

func (s *Subscene) setupProjMatrix(sphere core.Sphere) {
	switch {
	case s.embedding[AspectProjection] == Inherit && s.parent != nil:
		s.projMatrix = s.parent.projMatrix
		return
	case s.embedding[AspectProjection] == Modify && s.parent != nil:
		s.projMatrix = s.parent.projMatrix
	default:
		s.projMatrix = mgl32.Ident4()
	}
	s.projMatrix = s.projMatrix.Mul4(s.UserViewpoint().Projection(s.pviewport, sphere))
}

// setupModelMatrix rebuilds the model matrix from scratch: the viewer
// translation, then the contributions of every model viewpoint from the
// nearest Replace ancestor down to s.
func (s *Subscene) setupModelMatrix(center mgl32.Vec3) {
	if s.parent != nil &&
		s.embedding[AspectProjection] == Inherit &&
		s.embedding[AspectModel] == Inherit {
		s.modelMatrix = s.parent.modelMatrix
		return
	}
	m := s.UserViewpoint().Viewer()
	s.modelMatrix = s.modelContribution(m, center)
}

func (s *Subscene) modelContribution(m mgl32.Mat4, center mgl32.Vec3) mgl32.Mat4 {
	if s.parent != nil && s.embedding[AspectModel] < Replace {
		m = s.parent.modelContribution(m, center)
	}
	if s.embedding[AspectModel] > Inherit {
		m = m.Mul4(s.ModelViewpoint().Transformation(center))
	}
	return m
}
