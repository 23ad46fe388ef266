package viewscene

import (
	"math"

	"github.com/gekko3d/viewscene/core"
	"github.com/go-gl/mathgl/mgl32"
)

func (s *Subscene) noneBegin(x, y int)  {}
func (s *Subscene) noneUpdate(x, y int) {}
func (s *Subscene) noneEnd()            {}

func (s *Subscene) trackballBegin(x, y int) {
	s.mouse.rotBase = core.ScreenToVector(s.pviewport.Width, s.pviewport.Height, x, y)
}

func (s *Subscene) trackballUpdate(x, y int) {
	s.mouse.rotCurrent = core.ScreenToVector(s.pviewport.Width, s.pviewport.Height, x, y)
	s.eachListener(func(sub *Subscene) {
		sub.ModelViewpoint().UpdateMouseMatrix(s.mouse.rotBase, s.mouse.rotCurrent)
	})
}

// trackballEnd also closes one-axis drags.
func (s *Subscene) trackballEnd() {
	s.eachListener(func(sub *Subscene) {
		sub.ModelViewpoint().MergeMouseMatrix()
	})
}

// One-axis drags only look at the horizontal position.
func (s *Subscene) oneAxisBegin(x, y int) {
	s.mouse.rotBase = core.ScreenToVector(s.pviewport.Width, s.pviewport.Height, x, s.pviewport.Height/2)
}

func (s *Subscene) oneAxisUpdate(x, y int) {
	s.mouse.rotCurrent = core.ScreenToVector(s.pviewport.Width, s.pviewport.Height, x, s.pviewport.Height/2)
	if s.mouse.drag == 0 {
		return
	}
	axis := s.mouseMaster().mouse.axes[s.mouse.drag-1]
	s.eachListener(func(sub *Subscene) {
		sub.ModelViewpoint().MouseOneAxis(s.mouse.rotBase, s.mouse.rotCurrent, axis)
	})
}

func (s *Subscene) polarBegin(x, y int) {
	s.mouse.camBase = s.ModelViewpoint().Position()
	s.mouse.dragBase = core.ScreenToPolar(s.pviewport.Width, s.pviewport.Height, x, y)
}

func (s *Subscene) polarUpdate(x, y int) {
	s.mouse.dragCurrent = core.ScreenToPolar(s.pviewport.Width, s.pviewport.Height, x, y)

	pos := s.mouse.camBase.Sub(s.mouse.dragCurrent.Sub(s.mouse.dragBase))
	pos.Phi = mgl32.Clamp(pos.Phi, -90, 90)
	s.eachListener(func(sub *Subscene) {
		sub.ModelViewpoint().SetPosition(pos)
	})
}

func (s *Subscene) polarEnd() {}

func (s *Subscene) fovBegin(x, y int) {
	s.mouse.fovBaseY = y
}

func (s *Subscene) fovUpdate(x, y int) {
	if s.pviewport.Height <= 0 {
		return
	}
	dy := y - s.mouse.fovBaseY
	py := -float32(dy) / float32(s.pviewport.Height) * 180
	s.eachListener(func(sub *Subscene) {
		uv := sub.UserViewpoint()
		uv.SetFOV(uv.FOV() + py)
	})
	s.mouse.fovBaseY = y
}

func (s *Subscene) fovEnd() {}

func (s *Subscene) zoomBegin(x, y int) {
	s.mouse.zoomBaseY = y
}

func (s *Subscene) zoomUpdate(x, y int) {
	cfg := s.scene.Config()
	dy := y - s.mouse.zoomBaseY
	factor := float32(math.Exp(float64(float32(dy) * cfg.ZoomPixelLogStep)))
	s.eachListener(func(sub *Subscene) {
		uv := sub.UserViewpoint()
		uv.SetZoom(mgl32.Clamp(uv.Zoom()*factor, cfg.ZoomMin, cfg.ZoomMax))
	})
	s.mouse.zoomBaseY = y
}

func (s *Subscene) zoomEnd() {}

func (s *Subscene) wheelNone(dir WheelDirection) {}

func (s *Subscene) wheelPull(dir WheelDirection) {
	cfg := s.scene.Config()
	s.eachListener(func(sub *Subscene) {
		uv := sub.UserViewpoint()
		zoom := uv.Zoom()
		switch dir {
		case WheelForward:
			zoom *= cfg.ZoomStep
		case WheelBackward:
			zoom /= cfg.ZoomStep
		}
		uv.SetZoom(mgl32.Clamp(zoom, cfg.ZoomMin, cfg.ZoomMax))
	})
}

// wheelPush is wheelPull turned the other way.
func (s *Subscene) wheelPush(dir WheelDirection) {
	s.wheelPull(dir.inverse())
}

func (s *Subscene) wheelUser(dir WheelDirection) {
	if cb := s.mouseMaster().mouse.wheelCallback; cb != nil {
		cb(dir)
	}
}

func (s *Subscene) selectionBegin(x, y int) {
	if s.mouse.selectState == SelectAbort {
		return
	}
	fx, fy := s.viewportFraction(x, y)
	s.mouse.mousePosition = [4]float32{fx, fy, fx, fy}
	s.mouse.selectState = SelectChanging
}

func (s *Subscene) selectionUpdate(x, y int) {
	s.mouse.mousePosition[2], s.mouse.mousePosition[3] = s.viewportFraction(x, y)
}

func (s *Subscene) selectionEnd() {
	if s.mouse.selectState == SelectAbort {
		return
	}
	s.mouse.selectState = SelectDone
}

func (s *Subscene) viewportFraction(x, y int) (float32, float32) {
	var fx, fy float32
	if s.pviewport.Width > 0 {
		fx = float32(x) / float32(s.pviewport.Width)
	}
	if s.pviewport.Height > 0 {
		fy = float32(y) / float32(s.pviewport.Height)
	}
	return fx, fy
}

// User callbacks come from the pointer master and see top-down y. The busy
// flag keeps a callback from being re-entered for the same button while its
// begin or update is running.
func (s *Subscene) userBegin(x, y int) {
	if s.mouse.drag == 0 {
		return
	}
	i := s.mouse.drag - 1
	m := s.mouseMaster()
	cb := m.mouse.callbacks[i].Begin
	if cb == nil || m.mouse.busy[i] {
		return
	}
	m.mouse.busy[i] = true
	defer func() { m.mouse.busy[i] = false }()
	cb(x, s.pviewport.Height-y)
}

func (s *Subscene) userUpdate(x, y int) {
	if s.mouse.drag == 0 {
		return
	}
	i := s.mouse.drag - 1
	m := s.mouseMaster()
	cb := m.mouse.callbacks[i].Update
	if cb == nil || m.mouse.busy[i] {
		return
	}
	m.mouse.busy[i] = true
	defer func() { m.mouse.busy[i] = false }()
	cb(x, s.pviewport.Height-y)
}

func (s *Subscene) userEnd() {
	if s.mouse.drag == 0 {
		return
	}
	if cb := s.mouseMaster().mouse.callbacks[s.mouse.drag-1].End; cb != nil {
		cb()
	}
}
