package graph

import "github.com/optiray/optiray/internal/geometry"

// PortRole distinguishes entry points from exit points.
type PortRole string

const (
	RoleInput  PortRole = "input"
	RoleOutput PortRole = "output"
)

// PortSpec is a fixed attachment point in a component's untransformed frame.
type PortSpec struct {
	ID     string
	Role   PortRole
	Offset geometry.Vec2
}

// halfWidth is the schematic half-extent of a component on the canvas grid.
const halfWidth = 30.0

// portSchemas maps each kind to its immutable port list. The port set is a
// property of the kind, never of the instance.
var portSchemas = map[Kind][]PortSpec{
	KindSource: {
		{ID: "out", Role: RoleOutput, Offset: geometry.Vec2{X: halfWidth}},
	},
	KindMirror: {
		{ID: "in", Role: RoleInput, Offset: geometry.Vec2{X: -halfWidth}},
		{ID: "out", Role: RoleOutput, Offset: geometry.Vec2{Y: -halfWidth}},
	},
	KindBeamsplitter: {
		{ID: "in", Role: RoleInput, Offset: geometry.Vec2{X: -halfWidth}},
		{ID: "transmit", Role: RoleOutput, Offset: geometry.Vec2{X: halfWidth}},
		{ID: "reflect", Role: RoleOutput, Offset: geometry.Vec2{Y: -halfWidth}},
	},
	KindLens: {
		{ID: "in", Role: RoleInput, Offset: geometry.Vec2{X: -halfWidth}},
		{ID: "out", Role: RoleOutput, Offset: geometry.Vec2{X: halfWidth}},
	},
	KindDetector: {
		{ID: "in", Role: RoleInput, Offset: geometry.Vec2{X: -halfWidth}},
	},
}

// Ports returns the port schema for a kind. The returned slice is shared and
// must not be mutated.
func Ports(kind Kind) []PortSpec {
	return portSchemas[kind]
}

// FindPort looks up a port by id on a kind's schema.
func FindPort(kind Kind, portID string) (PortSpec, bool) {
	for _, p := range portSchemas[kind] {
		if p.ID == portID {
			return p, true
		}
	}
	return PortSpec{}, false
}
