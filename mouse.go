package viewscene

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

const numButtons = 3

// MouseCallbacks are host handlers for a button in MouseUser mode.
// Coordinates passed to Begin and Update are viewport pixels with the origin
// at the top left. Cleanup runs when the callbacks are replaced or their
// subscene is destroyed; per-button user data lives in the closures.
// A Modify subscene that copies the table shares Begin, Update and End but
// not Cleanup, and its copies are dropped once the owner's Cleanup has run.
type MouseCallbacks struct {
	Begin   func(x, y int)
	Update  func(x, y int)
	End     func()
	Cleanup func()
}

func (c MouseCallbacks) empty() bool {
	return c.Begin == nil && c.Update == nil && c.End == nil && c.Cleanup == nil
}

func (c MouseCallbacks) cleanup() {
	if c.Cleanup != nil {
		c.Cleanup()
	}
}

type WheelCallback func(dir WheelDirection)

// buttonBehavior is one row of the mode table. The receiver is the subscene
// under the cursor, which may differ from the master owning the table.
type buttonBehavior struct {
	begin  func(s *Subscene, x, y int)
	update func(s *Subscene, x, y int)
	end    func(s *Subscene)
}

var buttonBehaviors = map[MouseMode]buttonBehavior{
	MouseNone:      {(*Subscene).noneBegin, (*Subscene).noneUpdate, (*Subscene).noneEnd},
	MouseTrackball: {(*Subscene).trackballBegin, (*Subscene).trackballUpdate, (*Subscene).trackballEnd},
	MouseXAxis:     {(*Subscene).oneAxisBegin, (*Subscene).oneAxisUpdate, (*Subscene).trackballEnd},
	MouseYAxis:     {(*Subscene).oneAxisBegin, (*Subscene).oneAxisUpdate, (*Subscene).trackballEnd},
	MouseZAxis:     {(*Subscene).oneAxisBegin, (*Subscene).oneAxisUpdate, (*Subscene).trackballEnd},
	MousePolar:     {(*Subscene).polarBegin, (*Subscene).polarUpdate, (*Subscene).polarEnd},
	MouseSelecting: {(*Subscene).selectionBegin, (*Subscene).selectionUpdate, (*Subscene).selectionEnd},
	MouseZoom:      {(*Subscene).zoomBegin, (*Subscene).zoomUpdate, (*Subscene).zoomEnd},
	MouseFOV:       {(*Subscene).fovBegin, (*Subscene).fovUpdate, (*Subscene).fovEnd},
	MouseUser:      {(*Subscene).userBegin, (*Subscene).userUpdate, (*Subscene).userEnd},
}

var wheelBehaviors = map[WheelMode]func(s *Subscene, dir WheelDirection){
	WheelNone: (*Subscene).wheelNone,
	WheelPull: (*Subscene).wheelPull,
	WheelPush: (*Subscene).wheelPush,
	WheelUser: (*Subscene).wheelUser,
}

var modeAxes = map[MouseMode]mgl32.Vec3{
	MouseXAxis: {1, 0, 0},
	MouseYAxis: {0, 1, 0},
	MouseZAxis: {0, 0, 1},
}

type mouseState struct {
	// Mode table, held only by pointer masters.
	owned         bool
	modes         [numButtons]MouseMode
	behaviors     [numButtons]buttonBehavior
	axes          [numButtons]mgl32.Vec3
	callbacks     [numButtons]MouseCallbacks
	copiedFrom    [numButtons]*Subscene
	copies        [numButtons][]*Subscene
	busy          [numButtons]bool
	wheelMode     WheelMode
	wheel         func(s *Subscene, dir WheelDirection)
	wheelCallback WheelCallback

	// Gesture state of the subscene under the cursor.
	listeners     []*Subscene
	drag          int
	rotBase       mgl32.Vec3
	rotCurrent    mgl32.Vec3
	camBase       core.PolarCoord
	dragBase      core.PolarCoord
	dragCurrent   core.PolarCoord
	fovBaseY      int
	zoomBaseY     int
	selectState   SelectState
	mousePosition [4]float32
	destroyed     bool
}

func buttonIndex(button int) (int, error) {
	if button < 1 || button > numButtons {
		return 0, errBadButton(button)
	}
	return button - 1, nil
}

func (s *Subscene) setDefaultMouseMode() {
	cfg := s.scene.Config()
	s.mouse.owned = true
	for i, mode := range cfg.MouseModes {
		s.setModeLocal(i, mode)
	}
	s.setWheelLocal(cfg.WheelMode)
}

// releaseCallbacks runs the cleanup hook of button index i and clears every
// copy of its callbacks made by copyMouseTable.
func (s *Subscene) releaseCallbacks(i int) {
	s.mouse.callbacks[i].cleanup()
	s.mouse.callbacks[i] = MouseCallbacks{}
	s.mouse.copiedFrom[i] = nil
	copies := s.mouse.copies[i]
	s.mouse.copies[i] = nil
	for _, c := range copies {
		if c.mouse.copiedFrom[i] == s {
			c.releaseCallbacks(i)
		}
	}
}

func (s *Subscene) dropMouseTable() {
	for i := range s.mouse.callbacks {
		s.releaseCallbacks(i)
	}
	s.mouse.owned = false
	s.mouse.modes = [numButtons]MouseMode{}
	s.mouse.behaviors = [numButtons]buttonBehavior{}
	s.mouse.axes = [numButtons]mgl32.Vec3{}
	s.mouse.callbacks = [numButtons]MouseCallbacks{}
	s.mouse.busy = [numButtons]bool{}
	s.mouse.wheelMode = WheelNone
	s.mouse.wheel = nil
	s.mouse.wheelCallback = nil
}

// copyMouseTable initializes a Modify master from the table it used to
// inherit. Cleanup hooks stay with the previous owner, and the copied
// callbacks are cleared when that owner releases them.
func (s *Subscene) copyMouseTable(from *Subscene) {
	if !from.mouse.owned {
		s.setDefaultMouseMode()
		return
	}
	s.mouse.owned = true
	s.mouse.modes = from.mouse.modes
	s.mouse.behaviors = from.mouse.behaviors
	s.mouse.axes = from.mouse.axes
	for i, cb := range from.mouse.callbacks {
		s.releaseCallbacks(i)
		if cb.empty() {
			continue
		}
		cb.Cleanup = nil
		s.mouse.callbacks[i] = cb
		s.mouse.copiedFrom[i] = from
		from.mouse.copies[i] = append(from.mouse.copies[i], s)
	}
	s.mouse.wheelMode = from.mouse.wheelMode
	s.mouse.wheel = from.mouse.wheel
	s.mouse.wheelCallback = from.mouse.wheelCallback
}

func (s *Subscene) setModeLocal(index int, mode MouseMode) {
	s.mouse.modes[index] = mode
	s.mouse.behaviors[index] = buttonBehaviors[mode]
	if axis, ok := modeAxes[mode]; ok {
		s.mouse.axes[index] = axis
	}
}

func (s *Subscene) setWheelLocal(mode WheelMode) {
	s.mouse.wheelMode = mode
	s.mouse.wheel = wheelBehaviors[mode]
}

func (s *Subscene) mouseMaster() *Subscene {
	return s.master(AspectMouseHandlers)
}

// behavior falls back to MouseNone when a detached subscene has no table.
func (s *Subscene) behavior(index int) buttonBehavior {
	m := s.mouseMaster()
	if !m.mouse.owned {
		return buttonBehavior{(*Subscene).noneBegin, (*Subscene).noneUpdate, (*Subscene).noneEnd}
	}
	return m.mouse.behaviors[index]
}

// SetMouseMode binds a button (1 to 3) to a mode on the pointer master.
func (s *Subscene) SetMouseMode(button int, mode MouseMode) error {
	i, err := buttonIndex(button)
	if err != nil {
		return err
	}
	if _, ok := buttonBehaviors[mode]; !ok {
		return errors.New("unknown mouse mode").
			WithType(ErrTypeBadMode).
			WithTag("mode", int(mode))
	}
	m := s.mouseMaster()
	m.setModeLocal(i, mode)
	s.scene.Logger().Debugf("subscene %d button %d mode %s", m.id, button, mode)
	return nil
}

func (s *Subscene) MouseMode(button int) (MouseMode, error) {
	i, err := buttonIndex(button)
	if err != nil {
		return MouseNone, err
	}
	return s.mouseMaster().mouse.modes[i], nil
}

// SetMouseCallbacks installs host handlers for a button and switches it to
// MouseUser. The cleanup hook of the previous handlers runs first.
func (s *Subscene) SetMouseCallbacks(button int, cb MouseCallbacks) error {
	i, err := buttonIndex(button)
	if err != nil {
		return err
	}
	m := s.mouseMaster()
	m.releaseCallbacks(i)
	m.mouse.callbacks[i] = cb
	m.setModeLocal(i, MouseUser)
	return nil
}

func (s *Subscene) MouseCallbacks(button int) (MouseCallbacks, error) {
	i, err := buttonIndex(button)
	if err != nil {
		return MouseCallbacks{}, err
	}
	return s.mouseMaster().mouse.callbacks[i], nil
}

func (s *Subscene) SetWheelMode(mode WheelMode) error {
	if _, ok := wheelBehaviors[mode]; !ok {
		return errors.New("unknown wheel mode").
			WithType(ErrTypeBadMode).
			WithTag("mode", int(mode))
	}
	s.mouseMaster().setWheelLocal(mode)
	return nil
}

func (s *Subscene) WheelMode() WheelMode {
	return s.mouseMaster().mouse.wheelMode
}

// SetWheelCallback installs a host wheel handler and switches to WheelUser.
func (s *Subscene) SetWheelCallback(cb WheelCallback) {
	m := s.mouseMaster()
	m.mouse.wheelCallback = cb
	m.setWheelLocal(WheelUser)
}

func (s *Subscene) WheelCallback() WheelCallback {
	return s.mouseMaster().mouse.wheelCallback
}

// ButtonBegin starts a drag with the given button at viewport pixel (x, y),
// origin bottom left. The pointer master's table decides what happens; the
// gesture itself runs on s.
func (s *Subscene) ButtonBegin(button, x, y int) error {
	i, err := buttonIndex(button)
	if err != nil {
		return err
	}
	s.mouse.drag = button
	mode := s.mouseMaster().mouse.modes[i]
	instrumentCountDrag(s.scene.tag, mode)
	s.scene.Logger().Debugf("subscene %d begin %s drag at %d,%d", s.id, mode, x, y)
	s.behavior(i).begin(s, x, y)
	return nil
}

func (s *Subscene) ButtonUpdate(button, x, y int) error {
	i, err := buttonIndex(button)
	if err != nil {
		return err
	}
	s.behavior(i).update(s, x, y)
	return nil
}

func (s *Subscene) ButtonEnd(button int) error {
	i, err := buttonIndex(button)
	if err != nil {
		return err
	}
	s.behavior(i).end(s)
	s.mouse.drag = 0
	s.scene.Logger().Debugf("subscene %d end drag %d", s.id, button)
	return nil
}

func (s *Subscene) WheelRotate(dir WheelDirection) {
	if wheel := s.mouseMaster().mouse.wheel; wheel != nil {
		wheel(s, dir)
	}
}

// Dragging returns the button of the drag in progress on s, or 0.
func (s *Subscene) Dragging() int { return s.mouse.drag }

// AddMouseListener makes sub follow drags performed on s.
func (s *Subscene) AddMouseListener(sub *Subscene) {
	for _, l := range s.mouse.listeners {
		if l == sub {
			return
		}
	}
	s.mouse.listeners = append(s.mouse.listeners, sub)
}

func (s *Subscene) DeleteMouseListener(sub *Subscene) bool {
	for i, l := range s.mouse.listeners {
		if l == sub {
			s.mouse.listeners = append(s.mouse.listeners[:i], s.mouse.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Subscene) ClearMouseListeners() {
	s.mouse.listeners = nil
}

func (s *Subscene) MouseListeners() []core.NodeID {
	ids := make([]core.NodeID, 0, len(s.mouse.listeners))
	for _, l := range s.mouse.listeners {
		ids = append(ids, l.id)
	}
	return ids
}

// eachListener visits the listeners still attached to the scene.
func (s *Subscene) eachListener(fn func(sub *Subscene)) {
	for _, l := range s.mouse.listeners {
		if l == nil || l.mouse.destroyed || !l.attached() {
			continue
		}
		fn(l)
	}
}

func (s *Subscene) attached() bool {
	top := s
	for top.parent != nil {
		top = top.parent
	}
	return top == s.scene.root
}

func (s *Subscene) SelectState() SelectState { return s.mouse.selectState }

// SetSelectState lets the host abort or reset a selection drag.
func (s *Subscene) SetSelectState(state SelectState) {
	s.mouse.selectState = state
}

// MousePosition returns the selection drag start and current point as
// viewport fractions: x1, y1, x2, y2.
func (s *Subscene) MousePosition() [4]float32 {
	return s.mouse.mousePosition
}
