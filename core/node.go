package core

// NodeID identifies any node of a scene: subscenes, shapes, lights,
// viewpoints, backgrounds and bounding-box decorations share one id space.
type NodeID int32

// TypeID is the closed set of node kinds a subscene can hold.
type TypeID int

const (
	TypeShape TypeID = iota + 1
	TypeLight
	TypeBBoxDeco
	TypeSubscene
	TypeUserViewpoint
	TypeModelViewpoint
	TypeBackground
)

func (t TypeID) String() string {
	switch t {
	case TypeShape:
		return "shape"
	case TypeLight:
		return "light"
	case TypeBBoxDeco:
		return "bboxdeco"
	case TypeSubscene:
		return "subscene"
	case TypeUserViewpoint:
		return "userviewpoint"
	case TypeModelViewpoint:
		return "modelviewpoint"
	case TypeBackground:
		return "background"
	}
	return "unknown"
}

// Node is implemented by everything that can be attached to a subscene.
type Node interface {
	ID() NodeID
	TypeID() TypeID
}

// IDSource hands out node ids. The zero value starts at 1.
type IDSource struct {
	last NodeID
}

func (s *IDSource) Next() NodeID {
	s.last++
	return s.last
}

// Last returns the most recently issued id, or 0.
func (s *IDSource) Last() NodeID {
	return s.last
}
