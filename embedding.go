package viewscene

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gekko3d/viewscene/core"
	"github.com/gekko3d/viewscene/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

func (a Aspect) valid() bool {
	return a >= AspectViewport && a <= AspectMouseHandlers
}

func (s *Subscene) Embedding(aspect Aspect) (Embedding, error) {
	if !aspect.valid() {
		return 0, errBadAspect(aspect)
	}
	return s.embedding[aspect], nil
}

// SetEmbedding changes how one aspect is obtained and creates whatever local
// state the new mode needs. The root cannot inherit.
func (s *Subscene) SetEmbedding(aspect Aspect, value Embedding) error {
	if !aspect.valid() {
		return errBadAspect(aspect)
	}
	if !value.valid() {
		return errors.New("bad embedding value").
			WithType(ErrTypeBadEmbedding).
			WithTag("value", int(value))
	}
	if value == Inherit && s.parent == nil {
		return errors.New("root subscene cannot inherit").
			WithType(ErrTypeRootInherit).
			WithTag("subscene", s.id).
			WithTag("aspect", aspect.String())
	}

	old := s.embedding[aspect]
	s.embedding[aspect] = value
	if aspect == AspectMouseHandlers && old != value {
		s.reembedMouse(old)
	}
	s.newEmbedding()
	s.scene.Logger().Debugf("subscene %d %s embedding %s -> %s", s.id, aspect, old, value)
	return nil
}

// Master returns the nearest subscene, starting with s, that owns aspect.
func (s *Subscene) Master(aspect Aspect) (*Subscene, error) {
	if !aspect.valid() {
		return nil, errBadAspect(aspect)
	}
	return s.master(aspect), nil
}

func (s *Subscene) master(aspect Aspect) *Subscene {
	m := s
	for m.embedding[aspect] == Inherit && m.parent != nil {
		m = m.parent
	}
	return m
}

// newEmbedding creates local viewpoints for owned aspects: a copy of the
// parent's for Replace, a neutral one for Modify.
func (s *Subscene) newEmbedding() {
	if s.parent == nil {
		return
	}
	switch {
	case s.embedding[AspectProjection] == Replace && s.userViewpoint == nil:
		s.userViewpoint = s.parent.UserViewpoint().Clone(s.scene.NextID())
	case s.embedding[AspectProjection] == Modify && s.userViewpoint == nil:
		s.userViewpoint = viewpoint.NewUserViewpoint(s.scene.NextID(), 0, 1)
	}

	switch {
	case s.embedding[AspectModel] == Replace && s.modelViewpoint == nil:
		s.modelViewpoint = s.parent.ModelViewpoint().Clone(s.scene.NextID())
	case s.embedding[AspectModel] == Modify && s.modelViewpoint == nil:
		s.modelViewpoint = viewpoint.NewModelViewpoint(
			s.scene.NextID(),
			core.PolarCoord{},
			mgl32.Vec3{1, 1, 1},
			s.parent.ModelViewpoint().Interactive(),
		)
	}

	if s.embedding[AspectMouseHandlers] != Inherit && !s.mouse.owned {
		s.reembedMouse(Inherit)
	}
}

// reembedMouse keeps the rule that only pointer masters hold a mode table.
func (s *Subscene) reembedMouse(old Embedding) {
	switch {
	case s.embedding[AspectMouseHandlers] == Inherit:
		s.dropMouseTable()
	case old == Inherit && s.embedding[AspectMouseHandlers] == Modify && s.parent != nil:
		s.copyMouseTable(s.parent.master(AspectMouseHandlers))
	case old == Inherit:
		s.setDefaultMouseMode()
	}
}
