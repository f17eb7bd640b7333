package io

import (
	"fmt"

	"github.com/matzehuels/morphgraph/pkg/geom"
	"github.com/matzehuels/morphgraph/pkg/morph"
)

// StructureSpec describes one structure to build: its metadata, the
// locations and links traced for it, and the structures attached to it.
type StructureSpec struct {
	ID        uint64
	Structure *morph.Structure // nil for a bare container
	Scale     morph.Scale
	Locations []morph.Location
	Links     []morph.LocationLink
	Children  []StructureSpec
}

// Build assembles the graph tree described by spec.
//
// Each graph is populated before its children are attached, so every child
// gets a nearest-node back-reference whenever its parent has nodes. The
// order of Locations, Links and Children does not affect the result.
// Duplicate links are ignored.
func Build(spec StructureSpec) (*morph.Graph, error) {
	var g *morph.Graph
	if spec.Structure != nil {
		s := *spec.Structure
		s.ID = spec.ID
		g = morph.NewForStructure(s, spec.Scale)
	} else {
		g = morph.New(spec.ID, spec.Scale)
	}

	for _, loc := range spec.Locations {
		n, err := morph.NewNodeFromLocation(loc)
		if err != nil {
			return nil, fmt.Errorf("structure %d: %w", spec.ID, err)
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("structure %d: %w", spec.ID, err)
		}
	}
	for _, l := range spec.Links {
		e, err := morph.NewEdgeFromLink(l)
		if err != nil {
			return nil, fmt.Errorf("structure %d: %w", spec.ID, err)
		}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("structure %d: %w", spec.ID, err)
		}
	}
	for _, cs := range spec.Children {
		child, err := Build(cs)
		if err != nil {
			return nil, err
		}
		if err := g.AddSubgraph(child); err != nil {
			return nil, fmt.Errorf("structure %d: %w", spec.ID, err)
		}
	}
	return g, nil
}

// location is a decoded wire node. It satisfies [morph.Location].
type location struct {
	id        uint64
	shape     geom.Shape
	z         float64
	unscaledZ float64
	flags     morph.Flags
	tags      []string
}

func (l location) ID() uint64         { return l.id }
func (l location) Shape() geom.Shape  { return l.shape }
func (l location) Z() float64         { return l.z }
func (l location) UnscaledZ() float64 { return l.unscaledZ }
func (l location) Flags() morph.Flags { return l.flags }
func (l location) Tags() []string     { return l.tags }

// link is a wire edge. It satisfies [morph.LocationLink].
type link Edge

func (l link) Endpoints() (uint64, uint64) { return l.A, l.B }
