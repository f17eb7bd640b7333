package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/morphgraph/pkg/morph"
)

// FromMorph converts a graph tree to its wire form. Nodes, edges and
// subgraphs are sorted by key, so the output is deterministic.
func FromMorph(g *morph.Graph) Graph {
	scale := g.Scale()
	out := Graph{
		StructureID: g.ID(),
		Scale:       &scale,
		Structure:   g.Structure(),
		Nodes:       make([]Node, 0, g.NodeCount()),
		Edges:       make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{
			ID:        n.Key,
			Z:         n.Z,
			UnscaledZ: n.UnscaledZ,
			Shape:     ShapeFrom(n.Shape),
			Flags:     n.Flags.Names(),
			Tags:      n.Tags,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{A: e.Key.A, B: e.Key.B})
	}
	for _, sg := range g.Subgraphs() {
		out.Subgraphs = append(out.Subgraphs, FromMorph(sg))
	}
	return out
}

// WriteJSON encodes a graph tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *morph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromMorph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph tree to a JSON file at path.
func ExportJSON(g *morph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// MarshalGraph encodes a graph tree to JSON bytes.
func MarshalGraph(g *morph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
