// Package model defines the normalized setup and result documents exchanged
// with external collaborators (the canvas editor and the HTTP layer).
package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a component. The canvas editor historically emitted numeric
// ids, so both JSON numbers and strings are accepted and normalized.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("component id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Component struct {
	ID         ID                 `json:"id"`
	Type       string             `json:"type"`
	Position   Position           `json:"position"`
	Rotation   float64            `json:"rotation"`
	Properties map[string]float64 `json:"properties"`
}

// Prop returns the first property present under any of the given names.
// Older setup files use "wavelength" where newer ones use "wavelengthNm".
func (c Component) Prop(names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := c.Properties[name]; ok {
			return v, true
		}
	}
	return 0, false
}

type PortRef struct {
	ComponentID ID     `json:"componentId"`
	Port        string `json:"port"`
}

type Connection struct {
	ID   string  `json:"id"`
	From PortRef `json:"from"`
	To   PortRef `json:"to"`
}

// SweepConfig holds the spectral sweep range. StartFreq and StopFreq are
// wavelengths in nanometers; the field names are inherited from the
// originating tool and kept for document compatibility.
type SweepConfig struct {
	StartFreq float64 `json:"startFreq"`
	StopFreq  float64 `json:"stopFreq"`
	Points    int     `json:"points"`
}

type Simulation struct {
	SweepConfig SweepConfig `json:"sweepConfig"`
}

type OpticalSetup struct {
	Version     string       `json:"version"`
	Timestamp   string       `json:"timestamp"`
	Components  []Component  `json:"components"`
	Connections []Connection `json:"connections"`
	Simulation  Simulation   `json:"simulation"`
}

func ParseSetup(data []byte) (*OpticalSetup, error) {
	var setup OpticalSetup
	if err := json.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("invalid setup document: %w", err)
	}
	return &setup, nil
}
