package morph

import "fmt"

// Axis is the physical size of one unit along an axis.
type Axis struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

func (a Axis) String() string { return fmt.Sprintf("%g %s", a.Value, a.Units) }

// Scale maps volume coordinates to physical units. Z is the section pitch.
type Scale struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
	Z Axis `json:"z"`
}

// DefaultScale is one unit per voxel on every axis, used when a graph is
// built without physical calibration.
func DefaultScale() Scale {
	return Scale{
		X: Axis{Value: 1, Units: "px"},
		Y: Axis{Value: 1, Units: "px"},
		Z: Axis{Value: 1, Units: "section"},
	}
}

// SectionThickness returns the physical thickness of one section.
func (s Scale) SectionThickness() float64 { return s.Z.Value }

// Structure is optional metadata describing the biological structure a
// graph represents.
type Structure struct {
	ID    uint64   `json:"id"`
	Type  string   `json:"type,omitempty"`
	Label string   `json:"label,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}
