package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiray/optiray/internal/model"
)

func sourceComponent(id string) model.Component {
	return model.Component{
		ID:       model.ID(id),
		Type:     "source",
		Position: model.Position{X: 100, Y: 300},
		Properties: map[string]float64{
			"wavelength": 550,
			"power":      1.0,
		},
	}
}

func detectorComponent(id string) model.Component {
	return model.Component{
		ID:       model.ID(id),
		Type:     "detector",
		Position: model.Position{X: 400, Y: 300},
		Properties: map[string]float64{
			"sensitivity": 1.0,
		},
	}
}

func TestBuildValidSetup(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			sourceComponent("1"),
			detectorComponent("2"),
		},
		Connections: []model.Connection{
			{
				ID:   "c1",
				From: model.PortRef{ComponentID: "1", Port: "out"},
				To:   model.PortRef{ComponentID: "2", Port: "in"},
			},
		},
	}

	g, err := Build(setup)
	require.NoError(t, err)

	assert.Len(t, g.Components(), 2)
	assert.Len(t, g.Sources(), 1)
	assert.Len(t, g.Outgoing("1", "out"), 1)
	assert.Empty(t, g.Outgoing("2", "in"))
}

func TestBuildUnknownKind(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			{ID: "1", Type: "prism", Properties: map[string]float64{}},
		},
	}

	_, err := Build(setup)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, verr.Error(), "unrecognized kind")
}

func TestBuildCollectsAllIssues(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			{ID: "1", Type: "mirror", Properties: map[string]float64{"reflectivity": 1.5}},
			{ID: "2", Type: "lens", Properties: map[string]float64{"focalLength": 0}},
			{ID: "3", Type: "detector", Properties: map[string]float64{}},
		},
	}

	_, err := Build(setup)
	require.Error(t, err)

	verr := err.(*ValidationError)
	// Out-of-range reflectivity, zero focal length, missing sensitivity.
	assert.Len(t, verr.Issues, 3)
}

func TestBuildDanglingConnection(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{sourceComponent("1")},
		Connections: []model.Connection{
			{
				ID:   "broken",
				From: model.PortRef{ComponentID: "1", Port: "out"},
				To:   model.PortRef{ComponentID: "99", Port: "in"},
			},
		},
	}

	_, err := Build(setup)
	require.Error(t, err)

	verr := err.(*ValidationError)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "connection broken", verr.Issues[0].Element)
	assert.Contains(t, verr.Issues[0].Message, "99")
}

func TestBuildRejectsRoleMismatch(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			sourceComponent("1"),
			detectorComponent("2"),
		},
		Connections: []model.Connection{
			{
				ID:   "c1",
				From: model.PortRef{ComponentID: "2", Port: "in"},
				To:   model.PortRef{ComponentID: "1", Port: "out"},
			},
		},
	}

	_, err := Build(setup)
	require.Error(t, err)

	verr := err.(*ValidationError)
	assert.Len(t, verr.Issues, 2)
}

func TestBuildSplitterRenormWarning(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			{
				ID:   "bs",
				Type: "beamsplitter",
				Properties: map[string]float64{
					"reflectivity":   0.7,
					"transmissivity": 0.7,
				},
			},
		},
	}

	g, err := Build(setup)
	require.NoError(t, err)
	require.Len(t, g.Warnings(), 1)
	assert.Contains(t, g.Warnings()[0], "renormalized")
}

func TestBuildDuplicateIDs(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{
			sourceComponent("1"),
			sourceComponent("1"),
		},
	}

	_, err := Build(setup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestPortSchemas(t *testing.T) {
	for _, kind := range Kinds {
		assert.NotEmpty(t, Ports(kind), "kind %s should have ports", kind)
	}

	spec, ok := FindPort(KindBeamsplitter, "reflect")
	require.True(t, ok)
	assert.Equal(t, RoleOutput, spec.Role)

	_, ok = FindPort(KindDetector, "out")
	assert.False(t, ok)
}

func TestPortWorldPosition(t *testing.T) {
	setup := &model.OpticalSetup{
		Components: []model.Component{sourceComponent("1")},
	}
	g, err := Build(setup)
	require.NoError(t, err)

	c, ok := g.Component("1")
	require.True(t, ok)

	pos, ok := c.PortWorld("out")
	require.True(t, ok)
	assert.InDelta(t, 130.0, pos.X, 1e-9)
	assert.InDelta(t, 300.0, pos.Y, 1e-9)
}
