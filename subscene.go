package viewscene

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gekko3d/viewscene/core"
	"github.com/gekko3d/viewscene/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is a rectangle in fractions of the enclosing pixel viewport.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// FullViewport covers the whole enclosing viewport.
var FullViewport = Viewport{0, 0, 1, 1}

// Subscene is a node of the scene tree with its own viewport, projection,
// model transform and mouse handlers, each of which may be taken from the
// parent instead.
type Subscene struct {
	id       core.NodeID
	scene    *Scene
	parent   *Subscene
	children []*Subscene

	embedding    [4]Embedding
	ignoreExtent bool

	viewport    Viewport
	pviewport   core.Rect2
	bbox        core.AABox
	bboxChanges bool
	projMatrix  mgl32.Mat4
	modelMatrix mgl32.Mat4
	zRow, wRow  mgl32.Vec4

	shapes     []Shape
	unsorted   []Shape
	blended    []Shape
	clipPlanes []ClipPlaneSet
	lights     []Light

	bboxDeco       BBoxDeco
	background     Background
	userViewpoint  *viewpoint.UserViewpoint
	modelViewpoint *viewpoint.ModelViewpoint

	mouse mouseState
}

func newSubscene(sc *Scene, viewport, projection, model, mouse Embedding, ignoreExtent bool) *Subscene {
	s := &Subscene{
		id:           sc.NextID(),
		scene:        sc,
		embedding:    [4]Embedding{viewport, projection, model, mouse},
		ignoreExtent: ignoreExtent,
		viewport:     FullViewport,
		pviewport:    core.Rect2{Width: 1024, Height: 1024},
		bbox:         core.EmptyAABox(),
		projMatrix:   mgl32.Ident4(),
		modelMatrix:  mgl32.Ident4(),
	}
	s.mouse.listeners = []*Subscene{s}
	if mouse == Replace {
		s.setDefaultMouseMode()
	}
	return s
}

func (s *Subscene) ID() core.NodeID     { return s.id }
func (s *Subscene) TypeID() core.TypeID { return core.TypeSubscene }

func (s *Subscene) Parent() *Subscene { return s.parent }

func (s *Subscene) Children() []*Subscene {
	return append([]*Subscene(nil), s.children...)
}

func (s *Subscene) Shapes() []Shape {
	return append([]Shape(nil), s.shapes...)
}

func (s *Subscene) Lights() []Light {
	return append([]Light(nil), s.lights...)
}

func (s *Subscene) IgnoreExtent() bool { return s.ignoreExtent }

func (s *Subscene) SetIgnoreExtent(ignore bool) {
	s.ignoreExtent = ignore
}

func (s *Subscene) Viewport() Viewport { return s.viewport }

func (s *Subscene) SetViewport(v Viewport) {
	s.viewport = v
}

// PixelViewport is the pixel rectangle resolved by the last Update.
func (s *Subscene) PixelViewport() core.Rect2 { return s.pviewport }

func (s *Subscene) ProjMatrix() mgl32.Mat4  { return s.projMatrix }
func (s *Subscene) ModelMatrix() mgl32.Mat4 { return s.modelMatrix }

// Add attaches content of any node kind.
func (s *Subscene) Add(node core.Node) error {
	switch node.TypeID() {
	case core.TypeShape:
		shape, ok := node.(Shape)
		if !ok {
			break
		}
		if shape.IsClipPlane() {
			if _, ok := shape.(ClipPlaneSet); !ok {
				break
			}
		}
		s.addShape(shape)
		return nil

	case core.TypeLight:
		light, ok := node.(Light)
		if !ok {
			break
		}
		s.lights = append(s.lights, light)
		return nil

	case core.TypeUserViewpoint:
		vp, ok := node.(*viewpoint.UserViewpoint)
		if !ok {
			break
		}
		s.userViewpoint = vp
		return nil

	case core.TypeModelViewpoint:
		vp, ok := node.(*viewpoint.ModelViewpoint)
		if !ok {
			break
		}
		s.modelViewpoint = vp
		return nil

	case core.TypeSubscene:
		sub, ok := node.(*Subscene)
		if !ok {
			break
		}
		return s.addSubscene(sub)

	case core.TypeBackground:
		bg, ok := node.(Background)
		if !ok {
			break
		}
		s.background = bg
		return nil

	case core.TypeBBoxDeco:
		deco, ok := node.(BBoxDeco)
		if !ok {
			break
		}
		s.bboxDeco = deco
		return nil
	}

	return errors.New("node kind cannot be added to a subscene").
		WithType(ErrTypeUnsupportedNode).
		WithTag("id", node.ID()).
		WithTag("type", node.TypeID().String())
}

func (s *Subscene) addShape(shape Shape) {
	if !shape.IgnoreExtent() {
		s.growBounds(shape.BoundingBox(), shape.BBoxChanges())
	}
	s.shapes = append(s.shapes, shape)

	switch {
	case shape.IsBlended():
		s.blended = append(s.blended, shape)
	case shape.IsClipPlane():
		s.clipPlanes = append(s.clipPlanes, shape.(ClipPlaneSet))
		s.invalidateBounds()
	default:
		s.unsorted = append(s.unsorted, shape)
	}
}

func (s *Subscene) addSubscene(sub *Subscene) error {
	if sub.parent != nil {
		return errors.Newf("subscene %d is already a child of subscene %d", sub.id, sub.parent.id).
			WithType(ErrTypeAlreadyParented).
			WithTag("subscene", sub.id).
			WithTag("parent", sub.parent.id)
	}
	for a := s; a != nil; a = a.parent {
		if a == sub {
			return errors.New("subscene cannot be added below itself").
				WithType(ErrTypeCycle).
				WithTag("subscene", sub.id).
				WithTag("target", s.id)
		}
	}

	s.children = append(s.children, sub)
	sub.parent = s
	sub.newEmbedding()
	if !sub.ignoreExtent {
		s.growBounds(sub.BoundingBox(), sub.bboxChanges)
	}
	s.scene.Logger().Debugf("subscene %d attached to %d", sub.id, s.id)
	return nil
}

func removeByID[T core.Node](list []T, id core.NodeID) ([]T, bool) {
	for i, n := range list {
		if n.ID() == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// HideShape removes a shape of this subscene. Unknown ids are ignored.
func (s *Subscene) HideShape(id core.NodeID) bool {
	var ok bool
	if s.shapes, ok = removeByID(s.shapes, id); !ok {
		return false
	}
	s.blended, _ = removeByID(s.blended, id)
	s.clipPlanes, _ = removeByID(s.clipPlanes, id)
	s.unsorted, _ = removeByID(s.unsorted, id)
	s.invalidateBounds()
	return true
}

func (s *Subscene) HideLight(id core.NodeID) bool {
	var ok bool
	s.lights, ok = removeByID(s.lights, id)
	return ok
}

func (s *Subscene) HideBBoxDeco(id core.NodeID) bool {
	if s.bboxDeco == nil || s.bboxDeco.ID() != id {
		return false
	}
	s.bboxDeco = nil
	return true
}

// HideBackground removes the background. The root always gets a fresh
// default background in its place.
func (s *Subscene) HideBackground(id core.NodeID) bool {
	if s.background == nil || s.background.ID() != id {
		return false
	}
	if s.parent != nil {
		s.background = nil
	} else {
		s.background = NewDefaultBackground(s.scene.NextID())
	}
	return true
}

// HideViewpoint removes a user or model viewpoint. The root keeps its
// viewpoints.
func (s *Subscene) HideViewpoint(id core.NodeID) bool {
	switch {
	case s.userViewpoint != nil && s.userViewpoint.ID() == id:
		if s.parent != nil {
			s.userViewpoint = nil
			return true
		}
	case s.modelViewpoint != nil && s.modelViewpoint.ID() == id:
		if s.parent != nil {
			s.modelViewpoint = nil
			return true
		}
	}
	return false
}

// HideSubscene detaches a direct child and returns it, or nil. The detached
// subscene keeps its content and may be added elsewhere.
func (s *Subscene) HideSubscene(id core.NodeID) *Subscene {
	for i, sub := range s.children {
		if sub.id != id {
			continue
		}
		s.children = append(s.children[:i], s.children[i+1:]...)
		sub.parent = nil
		s.invalidateBounds()
		return sub
	}
	return nil
}

// Destroy detaches the subscene and tears down its subtree, running the
// cleanup hooks of user mouse callbacks.
func (s *Subscene) Destroy() {
	if s.parent != nil {
		s.parent.HideSubscene(s.id)
	}
	s.destroy()
}

func (s *Subscene) destroy() {
	for _, sub := range s.children {
		sub.parent = nil
		sub.destroy()
	}
	s.children = nil
	for i := range s.mouse.callbacks {
		s.releaseCallbacks(i)
	}
	s.mouse.listeners = nil
	s.mouse.destroyed = true
}

// FindSubscene searches this subtree for the subscene with the given id.
func (s *Subscene) FindSubscene(id core.NodeID) *Subscene {
	if s.id == id {
		return s
	}
	for _, sub := range s.children {
		if found := sub.FindSubscene(id); found != nil {
			return found
		}
	}
	return nil
}

// WhichSubscene returns the subscene in this subtree that directly holds the
// node with the given id.
func (s *Subscene) WhichSubscene(id core.NodeID) *Subscene {
	if s.ownNode(id) != nil {
		return s
	}
	for _, sub := range s.children {
		if owner := sub.WhichSubscene(id); owner != nil {
			return owner
		}
	}
	return nil
}

// ownNode returns the node with the given id held directly by s.
func (s *Subscene) ownNode(id core.NodeID) core.Node {
	for _, shape := range s.shapes {
		if shape.ID() == id {
			return shape
		}
	}
	for _, light := range s.lights {
		if light.ID() == id {
			return light
		}
	}
	if s.bboxDeco != nil && s.bboxDeco.ID() == id {
		return s.bboxDeco
	}
	for _, sub := range s.children {
		if sub.id == id {
			return sub
		}
	}
	if s.userViewpoint != nil && s.userViewpoint.ID() == id {
		return s.userViewpoint
	}
	if s.modelViewpoint != nil && s.modelViewpoint.ID() == id {
		return s.modelViewpoint
	}
	if s.background != nil && s.background.ID() == id {
		return s.background
	}
	return nil
}

// WhichSubsceneAt returns the innermost subscene whose resolved pixel
// viewport contains (x, y). Children are tested in the order they were
// added and the first hit wins.
func (s *Subscene) WhichSubsceneAt(x, y int) *Subscene {
	for _, sub := range s.children {
		if hit := sub.WhichSubsceneAt(x, y); hit != nil {
			return hit
		}
	}
	if s.pviewport.Contains(x, y) {
		return s
	}
	return nil
}

type IDEntry struct {
	ID   core.NodeID
	Type string
}

// IDCount counts the nodes of one kind, optionally in the whole subtree.
// Viewpoints count once per subscene owning that aspect.
func (s *Subscene) IDCount(t core.TypeID, recursive bool) int {
	n := 0
	if recursive {
		for _, sub := range s.children {
			n += sub.IDCount(t, true)
		}
	}
	switch t {
	case core.TypeShape:
		n += len(s.shapes)
	case core.TypeLight:
		n += len(s.lights)
	case core.TypeBBoxDeco:
		if s.bboxDeco != nil {
			n++
		}
	case core.TypeSubscene:
		n += len(s.children)
	case core.TypeUserViewpoint:
		if s.embedding[AspectProjection] > Inherit {
			n++
		}
	case core.TypeModelViewpoint:
		if s.embedding[AspectModel] > Inherit {
			n++
		}
	case core.TypeBackground:
		if s.background != nil {
			n++
		}
	}
	return n
}

// IDs lists the nodes of one kind with their type names, this subscene's
// first, then each child's subtree in order when recursive.
func (s *Subscene) IDs(t core.TypeID, recursive bool) []IDEntry {
	var out []IDEntry
	switch t {
	case core.TypeShape:
		for _, shape := range s.shapes {
			out = append(out, IDEntry{shape.ID(), shape.TypeName()})
		}
	case core.TypeLight:
		for _, light := range s.lights {
			out = append(out, IDEntry{light.ID(), t.String()})
		}
	case core.TypeSubscene:
		for _, sub := range s.children {
			out = append(out, IDEntry{sub.id, t.String()})
		}
	default:
		if n := s.singleton(t); n != nil {
			out = append(out, IDEntry{n.ID(), t.String()})
		}
	}
	if recursive {
		for _, sub := range s.children {
			out = append(out, sub.IDs(t, true)...)
		}
	}
	return out
}

func (s *Subscene) singleton(t core.TypeID) core.Node {
	switch t {
	case core.TypeBBoxDeco:
		if s.bboxDeco != nil {
			return s.bboxDeco
		}
	case core.TypeUserViewpoint:
		if s.userViewpoint != nil {
			return s.userViewpoint
		}
	case core.TypeModelViewpoint:
		if s.modelViewpoint != nil {
			return s.modelViewpoint
		}
	case core.TypeBackground:
		if s.background != nil {
			return s.background
		}
	}
	return nil
}

// Background resolves the background through the ancestors.
func (s *Subscene) Background() Background {
	for a := s; a != nil; a = a.parent {
		if a.background != nil {
			return a.background
		}
	}
	return nil
}

// BackgroundByID finds a resolved background with the given id in this
// subtree.
func (s *Subscene) BackgroundByID(id core.NodeID) Background {
	if bg := s.Background(); bg != nil && bg.ID() == id {
		return bg
	}
	for _, sub := range s.children {
		if bg := sub.BackgroundByID(id); bg != nil {
			return bg
		}
	}
	return nil
}

// BBoxDeco resolves the bounding-box decoration through the ancestors.
func (s *Subscene) BBoxDeco() BBoxDeco {
	for a := s; a != nil; a = a.parent {
		if a.bboxDeco != nil {
			return a.bboxDeco
		}
	}
	return nil
}

func (s *Subscene) BBoxDecoByID(id core.NodeID) BBoxDeco {
	if deco := s.BBoxDeco(); deco != nil && deco.ID() == id {
		return deco
	}
	for _, sub := range s.children {
		if deco := sub.BBoxDecoByID(id); deco != nil {
			return deco
		}
	}
	return nil
}

// UserViewpoint resolves the user viewpoint of the projection master.
// Reaching the root without one is a fatal configuration error.
func (s *Subscene) UserViewpoint() *viewpoint.UserViewpoint {
	for a := s; a != nil; a = a.parent {
		if a.userViewpoint != nil && a.embedding[AspectProjection] > Inherit {
			return a.userViewpoint
		}
	}
	panic(errors.New("must have a user viewpoint").
		WithType(ErrTypeMissingViewpoint).
		WithTag("subscene", s.id))
}

// ModelViewpoint resolves the model viewpoint of the model master.
func (s *Subscene) ModelViewpoint() *viewpoint.ModelViewpoint {
	for a := s; a != nil; a = a.parent {
		if a.modelViewpoint != nil && a.embedding[AspectModel] > Inherit {
			return a.modelViewpoint
		}
	}
	panic(errors.New("must have a model viewpoint").
		WithType(ErrTypeMissingViewpoint).
		WithTag("subscene", s.id))
}

func (s *Subscene) UserMatrix() mgl32.Mat4 {
	return s.ModelViewpoint().UserMatrix()
}

func (s *Subscene) SetUserMatrix(m mgl32.Mat4) {
	s.ModelViewpoint().SetUserMatrix(m)
}

func (s *Subscene) UserProjection() mgl32.Mat4 {
	return s.UserViewpoint().UserProjection()
}

func (s *Subscene) SetUserProjection(m mgl32.Mat4) {
	s.UserViewpoint().SetUserProjection(m)
}

func (s *Subscene) Scale() mgl32.Vec3 {
	return s.ModelViewpoint().Scale()
}

func (s *Subscene) SetScale(v mgl32.Vec3) {
	s.ModelViewpoint().SetScale(v)
}

func (s *Subscene) Position() core.PolarCoord {
	return s.ModelViewpoint().Position()
}

func (s *Subscene) SetPosition(p core.PolarCoord) {
	s.ModelViewpoint().SetPosition(p)
}
