// Package graph builds the typed, read-only component/connection graph from a
// setup document and validates it exhaustively before any tracing happens.
package graph

import (
	"fmt"
	"math"

	"github.com/optiray/optiray/internal/geometry"
	"github.com/optiray/optiray/internal/model"
)

// Kind enumerates the supported component types.
type Kind string

const (
	KindSource       Kind = "source"
	KindMirror       Kind = "mirror"
	KindBeamsplitter Kind = "beamsplitter"
	KindLens         Kind = "lens"
	KindDetector     Kind = "detector"
)

// Kinds lists all known kinds in canonical order.
var Kinds = []Kind{KindSource, KindMirror, KindBeamsplitter, KindLens, KindDetector}

// KindNames returns the kinds as plain strings, in canonical order.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return names
}

// Component is the validated, immutable form of a setup component.
type Component struct {
	ID          model.ID
	Kind        Kind
	Position    geometry.Vec2
	RotationDeg float64
	Properties  map[string]float64
}

// Prop returns the first property present under any of the given names.
func (c *Component) Prop(names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := c.Properties[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// PropOr returns the property value or a default when absent.
func (c *Component) PropOr(def float64, names ...string) float64 {
	if v, ok := c.Prop(names...); ok {
		return v
	}
	return def
}

// PortWorld resolves a port's world-space position.
func (c *Component) PortWorld(portID string) (geometry.Vec2, bool) {
	spec, ok := FindPort(c.Kind, portID)
	if !ok {
		return geometry.Vec2{}, false
	}
	return geometry.WorldPosition(c.Position, c.RotationDeg, spec.Offset), true
}

// Connection is a directed edge from an output port to an input port.
type Connection struct {
	ID   string
	From model.ID
	Port string
	To   model.ID
	In   string
}

type portKey struct {
	id   model.ID
	port string
}

// Graph is the validated setup, read-only for the duration of a trace.
type Graph struct {
	components  []*Component
	byID        map[model.ID]*Component
	connections []*Connection
	outgoing    map[portKey][]*Connection
	warnings    []string
}

func (g *Graph) Components() []*Component { return g.components }

func (g *Graph) Component(id model.ID) (*Component, bool) {
	c, ok := g.byID[id]
	return c, ok
}

func (g *Graph) Connections() []*Connection { return g.connections }

// Outgoing returns the connections departing a given output port, in
// document order.
func (g *Graph) Outgoing(id model.ID, port string) []*Connection {
	return g.outgoing[portKey{id, port}]
}

// Sources returns the source components in document order.
func (g *Graph) Sources() []*Component {
	var out []*Component
	for _, c := range g.components {
		if c.Kind == KindSource {
			out = append(out, c)
		}
	}
	return out
}

// CountByKind tallies components per kind.
func (g *Graph) CountByKind() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, c := range g.components {
		counts[c.Kind]++
	}
	return counts
}

// Warnings returns non-fatal findings recorded while building, such as a
// beam splitter whose reflectivity and transmissivity sum above one.
func (g *Graph) Warnings() []string { return g.warnings }

// Build validates the setup document and constructs the graph. It collects
// every issue instead of stopping at the first; on any issue the returned
// error is a *ValidationError enumerating all of them.
func Build(setup *model.OpticalSetup) (*Graph, error) {
	g := &Graph{
		byID:     make(map[model.ID]*Component),
		outgoing: make(map[portKey][]*Connection),
	}
	var issues []Issue

	for i, mc := range setup.Components {
		element := fmt.Sprintf("component %s", mc.ID)
		if mc.ID == "" {
			element = fmt.Sprintf("component #%d", i)
			issues = append(issues, Issue{element, "missing id"})
			continue
		}
		if _, dup := g.byID[mc.ID]; dup {
			issues = append(issues, Issue{element, "duplicate component id"})
			continue
		}

		kind := Kind(mc.Type)
		if _, known := portSchemas[kind]; !known {
			issues = append(issues, Issue{element, fmt.Sprintf("unrecognized kind %q", mc.Type)})
			continue
		}

		c := &Component{
			ID:          mc.ID,
			Kind:        kind,
			Position:    geometry.Vec2{X: mc.Position.X, Y: mc.Position.Y},
			RotationDeg: mc.Rotation,
			Properties:  mc.Properties,
		}
		issues = append(issues, checkComponent(c, element, g)...)

		g.components = append(g.components, c)
		g.byID[mc.ID] = c
	}

	for i, conn := range setup.Connections {
		element := fmt.Sprintf("connection %s", conn.ID)
		if conn.ID == "" {
			element = fmt.Sprintf("connection #%d", i)
		}

		c := &Connection{
			ID:   conn.ID,
			From: conn.From.ComponentID,
			Port: conn.From.Port,
			To:   conn.To.ComponentID,
			In:   conn.To.Port,
		}

		ok := true
		from, found := g.byID[c.From]
		if !found {
			issues = append(issues, Issue{element, fmt.Sprintf("references unknown component %q", c.From)})
			ok = false
		} else if spec, has := FindPort(from.Kind, c.Port); !has {
			issues = append(issues, Issue{element, fmt.Sprintf("component %q has no port %q", c.From, c.Port)})
			ok = false
		} else if spec.Role != RoleOutput {
			issues = append(issues, Issue{element, fmt.Sprintf("port %q on %q is not an output", c.Port, c.From)})
			ok = false
		}

		to, found := g.byID[c.To]
		if !found {
			issues = append(issues, Issue{element, fmt.Sprintf("references unknown component %q", c.To)})
			ok = false
		} else if spec, has := FindPort(to.Kind, c.In); !has {
			issues = append(issues, Issue{element, fmt.Sprintf("component %q has no port %q", c.To, c.In)})
			ok = false
		} else if spec.Role != RoleInput {
			issues = append(issues, Issue{element, fmt.Sprintf("port %q on %q is not an input", c.In, c.To)})
			ok = false
		}

		if !ok {
			continue
		}
		g.connections = append(g.connections, c)
		key := portKey{c.From, c.Port}
		g.outgoing[key] = append(g.outgoing[key], c)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return g, nil
}

// requiredProps lists the property names each kind must carry. Each entry is
// a set of accepted aliases; the first name is canonical. radiusOfCurvature
// and beamAngle are optional with flat/collimated defaults because setups
// exported by older editor versions omit them.
var requiredProps = map[Kind][][]string{
	KindSource:       {{"wavelengthNm", "wavelength"}, {"power"}},
	KindMirror:       {{"reflectivity"}},
	KindBeamsplitter: {{"reflectivity"}, {"transmissivity"}},
	KindLens:         {{"focalLength"}},
	KindDetector:     {{"sensitivity"}},
}

func checkComponent(c *Component, element string, g *Graph) []Issue {
	var issues []Issue

	if !c.Position.IsValid() {
		issues = append(issues, Issue{element, "position is not finite"})
	}
	if math.IsNaN(c.RotationDeg) || math.IsInf(c.RotationDeg, 0) {
		issues = append(issues, Issue{element, "rotation is not finite"})
	}

	for _, names := range requiredProps[c.Kind] {
		v, ok := c.Prop(names...)
		if !ok {
			issues = append(issues, Issue{element, fmt.Sprintf("missing required property %q", names[0])})
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues = append(issues, Issue{element, fmt.Sprintf("property %q is not finite", names[0])})
		}
	}
	for name, v := range c.Properties {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			issues = append(issues, Issue{element, fmt.Sprintf("property %q is not finite", name)})
		}
	}

	switch c.Kind {
	case KindSource:
		if v, ok := c.Prop("wavelengthNm", "wavelength"); ok && v <= 0 {
			issues = append(issues, Issue{element, "wavelength must be positive"})
		}
		if v, ok := c.Prop("power"); ok && v < 0 {
			issues = append(issues, Issue{element, "power must be non-negative"})
		}
	case KindMirror:
		issues = append(issues, checkUnit(c, element, "reflectivity")...)
	case KindBeamsplitter:
		issues = append(issues, checkUnit(c, element, "reflectivity")...)
		issues = append(issues, checkUnit(c, element, "transmissivity")...)
		r, okR := c.Prop("reflectivity")
		t, okT := c.Prop("transmissivity")
		if okR && okT && r+t > 1 {
			g.warnings = append(g.warnings, fmt.Sprintf(
				"%s: reflectivity+transmissivity = %.3f exceeds 1; branches will be renormalized", element, r+t))
		}
	case KindLens:
		if v, ok := c.Prop("focalLength"); ok && v == 0 {
			issues = append(issues, Issue{element, "focalLength must be non-zero"})
		}
	case KindDetector:
		issues = append(issues, checkUnit(c, element, "sensitivity")...)
	}

	return issues
}

func checkUnit(c *Component, element, name string) []Issue {
	if v, ok := c.Prop(name); ok && (v < 0 || v > 1) {
		return []Issue{{element, fmt.Sprintf("%s must be within [0,1], got %g", name, v)}}
	}
	return nil
}
