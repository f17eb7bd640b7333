package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// ReadJSON decodes a graph tree from r and builds it.
//
// ReadJSON returns an error if the JSON is malformed, a shape or flag is
// invalid, a node key repeats within one structure, an edge references a
// missing node or is a self-loop, or a structure ID repeats among siblings.
// Duplicate edges are ignored. Errors wrap the morph sentinels, so callers
// can use errors.Is with [morph.ErrDuplicateKey] and friends.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*morph.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToMorph(data)
}

// ImportJSON reads the JSON file at path and builds the graph tree.
func ImportJSON(path string) (*morph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// UnmarshalGraph decodes JSON bytes into a graph tree.
func UnmarshalGraph(data []byte) (*morph.Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToMorph(g)
}

// ToMorph builds the graph tree described by the wire form.
func ToMorph(g Graph) (*morph.Graph, error) {
	spec, err := specFrom(g, morph.DefaultScale())
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

func specFrom(g Graph, inherited morph.Scale) (StructureSpec, error) {
	spec := StructureSpec{
		ID:        g.StructureID,
		Structure: g.Structure,
		Scale:     inherited,
	}
	if g.Scale != nil {
		spec.Scale = *g.Scale
	}

	for _, n := range g.Nodes {
		shape, err := n.Shape.Geom()
		if err != nil {
			return spec, fmt.Errorf("structure %d: node %d: %w", g.StructureID, n.ID, err)
		}
		flags, err := flagsFrom(n.Flags)
		if err != nil {
			return spec, fmt.Errorf("structure %d: node %d: %w", g.StructureID, n.ID, err)
		}
		spec.Locations = append(spec.Locations, location{
			id:        n.ID,
			shape:     shape,
			z:         n.Z,
			unscaledZ: n.UnscaledZ,
			flags:     flags,
			tags:      n.Tags,
		})
	}
	for _, e := range g.Edges {
		spec.Links = append(spec.Links, link(e))
	}
	for _, sg := range g.Subgraphs {
		child, err := specFrom(sg, spec.Scale)
		if err != nil {
			return spec, err
		}
		spec.Children = append(spec.Children, child)
	}
	return spec, nil
}
