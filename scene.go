package viewscene

import (
	"github.com/gekko3d/viewscene/core"
	"github.com/gekko3d/viewscene/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Scene owns the subscene tree of one view: the id source, the root
// subscene, the current subscene receiving new content and the pointer drag
// in progress.
type Scene struct {
	ids core.IDSource
	log Logger
	cfg Config
	tag string

	root    *Subscene
	current *Subscene
	// Subscenes detached by Hide, destroyed on Close.
	hidden []*Subscene

	// Window rectangle of the last frame, used to flip pointer coordinates.
	rect core.Rect2

	drag         int
	dragSubscene core.NodeID
}

type Option func(*Scene)

// WithLogger replaces the default logger.
func WithLogger(l Logger) Option {
	return func(sc *Scene) {
		sc.log = l
	}
}

// NewScene builds a scene whose root subscene replaces every aspect and
// carries the configured camera and a default background.
func NewScene(cfg Config, opts ...Option) *Scene {
	sc := &Scene{
		cfg: cfg,
		tag: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	if sc.log == nil {
		sc.log = NewDefaultLogger(cfg.LogPrefix, cfg.Debug).Named(sc.tag[:8])
	}

	root := newSubscene(sc, Replace, Replace, Replace, Replace, false)
	root.userViewpoint = viewpoint.NewUserViewpoint(sc.NextID(), cfg.FOV, cfg.Zoom)
	root.modelViewpoint = viewpoint.NewModelViewpoint(
		sc.NextID(),
		core.PolarCoord{Theta: cfg.Theta, Phi: cfg.Phi},
		mgl32.Vec3{1, 1, 1},
		cfg.Interactive,
	)
	root.background = NewDefaultBackground(sc.NextID())

	sc.root = root
	sc.current = root
	sc.log.Debugf("scene %s created, root subscene %d", sc.tag, root.id)
	return sc
}

// NextID allocates a node id. Hosts use it for the shapes and lights they
// add so that every node of the scene shares one id space.
func (sc *Scene) NextID() core.NodeID {
	return sc.ids.Next()
}

func (sc *Scene) Config() Config { return sc.cfg }

// Tag is a random identifier of this scene instance.
func (sc *Scene) Tag() string { return sc.tag }

func (sc *Scene) Root() *Subscene    { return sc.root }
func (sc *Scene) Current() *Subscene { return sc.current }

// SetCurrent selects the subscene that receives Add. It returns false when
// no subscene has that id.
func (sc *Scene) SetCurrent(id core.NodeID) bool {
	sub := sc.root.FindSubscene(id)
	if sub == nil {
		return false
	}
	sc.current = sub
	return true
}

// Subscene returns the attached subscene with the given id, or nil.
func (sc *Scene) Subscene(id core.NodeID) *Subscene {
	return sc.root.FindSubscene(id)
}

// NewSubscene creates a subscene below parent, or below the current
// subscene when parent is nil.
func (sc *Scene) NewSubscene(parent *Subscene, viewport, projection, model, mouse Embedding, ignoreExtent bool) (*Subscene, error) {
	if parent == nil {
		parent = sc.current
	}
	sub := newSubscene(sc, viewport, projection, model, mouse, ignoreExtent)
	if err := parent.Add(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Add attaches a node to the current subscene.
func (sc *Scene) Add(node core.Node) error {
	if err := sc.current.Add(node); err != nil {
		sc.log.Warnf("add %s %d rejected: %v", node.TypeID(), node.ID(), err)
		return err
	}
	return nil
}

// Node returns any attached node by id, or nil.
func (sc *Scene) Node(id core.NodeID) core.Node {
	if id == sc.root.id {
		return sc.root
	}
	owner := sc.root.WhichSubscene(id)
	if owner == nil {
		return nil
	}
	return owner.ownNode(id)
}

// Hide removes the node with the given id from wherever it is attached.
// Hiding the subscene holding the current one moves current to the hidden
// subscene's parent. The root cannot be hidden.
func (sc *Scene) Hide(id core.NodeID) bool {
	owner := sc.root.WhichSubscene(id)
	if owner == nil {
		return false
	}
	node := owner.ownNode(id)

	var ok bool
	switch node.TypeID() {
	case core.TypeShape:
		ok = owner.HideShape(id)
	case core.TypeLight:
		ok = owner.HideLight(id)
	case core.TypeBBoxDeco:
		ok = owner.HideBBoxDeco(id)
	case core.TypeBackground:
		ok = owner.HideBackground(id)
	case core.TypeUserViewpoint, core.TypeModelViewpoint:
		ok = owner.HideViewpoint(id)
	case core.TypeSubscene:
		sub := node.(*Subscene)
		if sub.FindSubscene(sc.current.id) != nil {
			sc.current = owner
		}
		ok = owner.HideSubscene(id) != nil
		if ok {
			sc.hidden = append(sc.hidden, sub)
		}
	}
	if ok {
		sc.log.Debugf("hid %s %d from subscene %d", node.TypeID(), id, owner.id)
	}
	return ok
}

// Close tears down the tree, running the cleanup hooks of user callbacks.
func (sc *Scene) Close() {
	sc.root.destroy()
	for _, sub := range sc.hidden {
		if !sub.mouse.destroyed {
			sub.destroy()
		}
	}
	sc.hidden = nil
	sc.current = sc.root
	sc.drag, sc.dragSubscene = 0, 0
	instrumentForgetScene(sc.tag)
}

// Render updates and draws one frame into rect: the opaque pass of the whole
// tree, then the blended pass.
func (sc *Scene) Render(backend Backend, rect core.Rect2, capture bool) {
	sc.rect = rect
	instrumentCountFrame(sc.tag)
	ctx := &RenderContext{
		Rect:    rect,
		Capture: capture,
		Backend: backend,
	}
	sc.root.Update(ctx)
	sc.root.Render(ctx, true)
	sc.root.Render(ctx, false)
}

// SetWindowRect sets the window rectangle used to map pointer coordinates
// before the first frame is rendered.
func (sc *Scene) SetWindowRect(rect core.Rect2) {
	sc.rect = rect
}

// windowToLocal converts top-down window coordinates into bottom-up
// coordinates relative to the pixel viewport of sub.
func (sc *Scene) windowToLocal(sub *Subscene, x, y int) (int, int) {
	pv := sub.pviewport
	return x - pv.X, sc.rect.Height - y - pv.Y
}

// MousePress starts a drag on the subscene under the pointer. Window
// coordinates have their origin at the top left. Only one drag runs at a
// time and only interactive subscenes accept one.
func (sc *Scene) MousePress(button, x, y int) {
	if sc.drag != 0 {
		return
	}
	sub := sc.root.WhichSubsceneAt(x, sc.rect.Height-y)
	if sub == nil || !sub.ModelViewpoint().Interactive() {
		return
	}
	lx, ly := sc.windowToLocal(sub, x, y)
	if err := sub.ButtonBegin(button, lx, ly); err != nil {
		sc.log.Warnf("mouse press ignored: %v", err)
		return
	}
	sc.drag = button
	sc.dragSubscene = sub.id
}

// MouseMove updates the drag in progress. Coordinates are clamped to the
// viewport of the dragged subscene.
func (sc *Scene) MouseMove(x, y int) {
	if sc.drag == 0 {
		return
	}
	sub := sc.root.FindSubscene(sc.dragSubscene)
	if sub == nil {
		sc.MouseRelease(sc.drag)
		return
	}
	lx, ly := sc.windowToLocal(sub, x, y)
	pv := sub.pviewport
	lx = max(0, min(lx, pv.Width-1))
	ly = max(0, min(ly, pv.Height-1))
	if err := sub.ButtonUpdate(sc.drag, lx, ly); err != nil {
		sc.log.Warnf("mouse move ignored: %v", err)
	}
}

func (sc *Scene) MouseRelease(button int) {
	if sc.drag == 0 || sc.drag != button {
		return
	}
	sub := sc.root.FindSubscene(sc.dragSubscene)
	sc.drag, sc.dragSubscene = 0, 0
	if sub != nil {
		if err := sub.ButtonEnd(button); err != nil {
			sc.log.Warnf("mouse release ignored: %v", err)
		}
	}
}

// MouseWheel rotates the wheel over the subscene under the pointer.
func (sc *Scene) MouseWheel(dir WheelDirection, x, y int) {
	sub := sc.root.WhichSubsceneAt(x, sc.rect.Height-y)
	if sub == nil {
		return
	}
	sub.WheelRotate(dir)
}

// Dragging returns the button of the drag in progress, or 0.
func (sc *Scene) Dragging() int { return sc.drag }
