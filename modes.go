package viewscene

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Embedding says how a subscene obtains one aspect. The ordering matters:
// resolvers compare with < and >.
type Embedding int

const (
	Inherit Embedding = iota + 1
	Modify
	Replace
)

func (e Embedding) String() string {
	switch e {
	case Inherit:
		return "inherit"
	case Modify:
		return "modify"
	case Replace:
		return "replace"
	}
	return "unknown"
}

func (e Embedding) valid() bool {
	return e >= Inherit && e <= Replace
}

// Aspect is one of the four independently embedded parts of a subscene.
type Aspect int

const (
	AspectViewport Aspect = iota
	AspectProjection
	AspectModel
	AspectMouseHandlers
)

func (a Aspect) String() string {
	switch a {
	case AspectViewport:
		return "viewport"
	case AspectProjection:
		return "projection"
	case AspectModel:
		return "model"
	case AspectMouseHandlers:
		return "mouse"
	}
	return "unknown"
}

type MouseMode int

const (
	MouseNone MouseMode = iota
	MouseTrackball
	MouseXAxis
	MouseYAxis
	MouseZAxis
	MousePolar
	MouseSelecting
	MouseZoom
	MouseFOV
	MouseUser
)

var mouseModeNames = map[MouseMode]string{
	MouseNone:      "none",
	MouseTrackball: "trackball",
	MouseXAxis:     "xAxis",
	MouseYAxis:     "yAxis",
	MouseZAxis:     "zAxis",
	MousePolar:     "polar",
	MouseSelecting: "selecting",
	MouseZoom:      "zoom",
	MouseFOV:       "fov",
	MouseUser:      "user",
}

func (m MouseMode) String() string {
	if name, ok := mouseModeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m *MouseMode) UnmarshalText(text []byte) error {
	for mode, name := range mouseModeNames {
		if strings.EqualFold(name, string(text)) {
			*m = mode
			return nil
		}
	}
	return errors.New("unknown mouse mode").
		WithType(ErrTypeBadMode).
		WithTag("mode", string(text))
}

func (m MouseMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type WheelMode int

const (
	WheelNone WheelMode = iota
	WheelPull
	WheelPush
	WheelUser
)

var wheelModeNames = map[WheelMode]string{
	WheelNone: "none",
	WheelPull: "pull",
	WheelPush: "push",
	WheelUser: "user",
}

func (m WheelMode) String() string {
	if name, ok := wheelModeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m *WheelMode) UnmarshalText(text []byte) error {
	for mode, name := range wheelModeNames {
		if strings.EqualFold(name, string(text)) {
			*m = mode
			return nil
		}
	}
	return errors.New("unknown wheel mode").
		WithType(ErrTypeBadMode).
		WithTag("mode", string(text))
}

func (m WheelMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// WheelDirection is the direction of one wheel tick.
type WheelDirection int

const (
	WheelForward WheelDirection = iota + 1
	WheelBackward
)

func (d WheelDirection) inverse() WheelDirection {
	switch d {
	case WheelForward:
		return WheelBackward
	case WheelBackward:
		return WheelForward
	}
	return d
}

// SelectState tracks a selection drag.
type SelectState int

const (
	SelectNone SelectState = iota
	SelectChanging
	SelectDone
	SelectAbort
)

func (s SelectState) String() string {
	switch s {
	case SelectNone:
		return "none"
	case SelectChanging:
		return "changing"
	case SelectDone:
		return "done"
	case SelectAbort:
		return "abort"
	}
	return "unknown"
}
