// Package glfwinput feeds the mouse of a GLFW window into a viewscene.Scene.
package glfwinput

import (
	"math"

	"github.com/gekko3d/viewscene"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the part of *glfw.Window the adapter uses.
type Window interface {
	SetMouseButtonCallback(cb glfw.MouseButtonCallback) glfw.MouseButtonCallback
	SetCursorPosCallback(cb glfw.CursorPosCallback) glfw.CursorPosCallback
	SetScrollCallback(cb glfw.ScrollCallback) glfw.ScrollCallback
	GetCursorPos() (x, y float64)
	GetSize() (width, height int)
	GetFramebufferSize() (width, height int)
}

// Pointer events are dispatched to the scene in framebuffer pixels, the
// same units as the rectangle passed to Scene.Render.
type Input struct {
	win   Window
	scene *viewscene.Scene
}

// Attach installs mouse-button, cursor-position and scroll callbacks on win
// that forward to scene. Callbacks previously installed on win are
// replaced.
func Attach(win Window, scene *viewscene.Scene) *Input {
	in := &Input{win: win, scene: scene}
	win.SetMouseButtonCallback(in.onButton)
	win.SetCursorPosCallback(in.onCursor)
	win.SetScrollCallback(in.onScroll)
	return in
}

// Detach removes the callbacks installed by Attach.
func (in *Input) Detach() {
	in.win.SetMouseButtonCallback(nil)
	in.win.SetCursorPosCallback(nil)
	in.win.SetScrollCallback(nil)
}

// ButtonIndex maps a GLFW button to a scene button: left 1, right 2,
// middle 3. Other buttons map to 0.
func ButtonIndex(b glfw.MouseButton) int {
	switch b {
	case glfw.MouseButtonLeft:
		return 1
	case glfw.MouseButtonRight:
		return 2
	case glfw.MouseButtonMiddle:
		return 3
	}
	return 0
}

// WheelDirection maps a vertical scroll offset to a wheel direction. A zero
// offset reports false.
func WheelDirection(yoff float64) (viewscene.WheelDirection, bool) {
	switch {
	case yoff > 0:
		return viewscene.WheelForward, true
	case yoff < 0:
		return viewscene.WheelBackward, true
	}
	return 0, false
}

// framebufferPos converts window coordinates to framebuffer pixels.
func (in *Input) framebufferPos(x, y float64) (int, int) {
	ww, wh := in.win.GetSize()
	fw, fh := in.win.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return int(math.Floor(x)), int(math.Floor(y))
}

func (in *Input) onButton(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := ButtonIndex(button)
	if b == 0 {
		return
	}
	switch action {
	case glfw.Press:
		x, y := in.framebufferPos(in.win.GetCursorPos())
		in.scene.MousePress(b, x, y)
	case glfw.Release:
		in.scene.MouseRelease(b)
	}
}

func (in *Input) onCursor(w *glfw.Window, xpos, ypos float64) {
	if in.scene.Dragging() == 0 {
		return
	}
	in.scene.MouseMove(in.framebufferPos(xpos, ypos))
}

func (in *Input) onScroll(w *glfw.Window, xoff, yoff float64) {
	dir, ok := WheelDirection(yoff)
	if !ok {
		return
	}
	x, y := in.framebufferPos(in.win.GetCursorPos())
	in.scene.MouseWheel(dir, x, y)
}
