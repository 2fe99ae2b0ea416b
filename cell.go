// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2voronoi implements planar Voronoi diagrams, built on Delaunay triangulation.

package r2voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.site(c.idx)
}

// IsBounded reports whether the cell is a closed polygon. Cells of sites on
// the convex hull extend to infinity.
func (c Cell) IsBounded() bool {
	return !c.d.Hull[c.idx]
}

// Area returns the area of the cell, or delaunay.UnboundedArea for unbounded
// cells.
func (c Cell) Area() float32 {
	return c.d.CellAreas[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// For bounded cells this equals the number of neighbors.
func (c Cell) NumVertices() int {
	return c.d.CellVertexOffsets[c.idx+1] - c.d.CellVertexOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order around the site.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellVertexOffsets[c.idx]:c.d.CellVertexOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellVertexOffsets[c.idx]
	end := c.d.CellVertexOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, errors.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NumNeighbors returns the number of neighboring cells.
func (c Cell) NumNeighbors() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order around the site.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// SideLengths returns the lengths of the sides shared with each neighbor,
// aligned with NeighborIndices.
func (c Cell) SideLengths() []float32 {
	return c.d.CellSides[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, errors.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}
