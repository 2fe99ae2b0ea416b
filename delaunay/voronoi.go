// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"math"
	"slices"

	"github.com/2dChan/r2voronoi/mempool"
	"github.com/2dChan/r2voronoi/quadedge"
	"github.com/pkg/errors"
)

// generateVoronoiVertices attaches the circumcenter of every bounded face to
// the three edges around it. Faces on synthetic sites are included so that
// edges between input sites always see both of their Voronoi vertices.
func (t *Triangulator) generateVoronoiVertices() error {
	n := len(t.sites)
	t.vertices = mempool.New[quadedge.VSite](2*n, mempool.Fixed)

	var err error
	t.forEachFace(func(e, eOnext, eLnext quadedge.Edge) {
		if err != nil {
			return
		}
		vs, _ := t.vertices.New()
		if vs == nil {
			exhausted("voronoi vertex pool: %d slots in use", t.vertices.ChunkSize())
		}
		if cerr := quadedge.Circumcenter(e.Org(), eOnext.Dest(), e.Dest(), vs); cerr != nil {
			err = errors.Wrap(cerr, "delaunay: voronoi vertex")
			return
		}
		e.SetVDest(vs)
		eOnext.SetVOrg(vs)
		eLnext.SetVDest(vs)
	})
	if err != nil {
		return err
	}

	if t.vertices.Data() != nil {
		t.numVoronoiVertices = 2*n - t.vertices.FreeCount()
	}
	return nil
}

// generateNodeNeighbours derives per-site neighbour counts and, as
// requested, neighbour lists, Voronoi side lengths and cell areas. Edges
// touching a synthetic site are ignored.
func (t *Triangulator) generateNodeNeighbours() {
	data := t.edges.Data()
	for i := range data {
		data[i].ResetVisited()
	}

	t.numNeighbours = make([]int, t.numInput)
	for i := range data {
		q := &data[i]
		if q.IsFree() || q.Visited() != 0 {
			continue
		}
		e := q.Edge0()
		if src, dst := e.Org(), e.Dest(); !t.isSynthetic(src) && !t.isSynthetic(dst) {
			t.numNeighbours[src.ID]++
			t.numNeighbours[dst.ID]++
		}
		q.IncrementVisited()
	}

	t.neighbourOffsets = make([]int, t.numInput+1)
	for i, c := range t.numNeighbours {
		t.neighbourOffsets[i+1] = t.neighbourOffsets[i] + c
	}
	total := t.neighbourOffsets[t.numInput]

	if t.attr&NodeNeighbours != 0 {
		t.neighbours = make([]int, total)
	}
	if t.attr&VoronoiSides != 0 {
		t.voronoiSides = make([]float32, total)
	}
	var areas []float64
	if t.attr&VoronoiCellAreas != 0 {
		areas = make([]float64, t.numInput)
	}
	if t.neighbours == nil && t.voronoiSides == nil && areas == nil {
		return
	}

	cursor := slices.Clone(t.neighbourOffsets[:t.numInput])
	for i := range data {
		q := &data[i]
		if q.IsFree() || q.Visited() != 1 {
			continue
		}
		q.IncrementVisited()

		e := q.Edge0()
		src, dst := e.Org(), e.Dest()
		if t.isSynthetic(src) || t.isSynthetic(dst) {
			continue
		}
		si, di := cursor[src.ID], cursor[dst.ID]
		cursor[src.ID]++
		cursor[dst.ID]++

		if t.neighbours != nil {
			t.neighbours[si] = dst.ID
			t.neighbours[di] = src.ID
		}

		vsrc, vdst := e.VOrg(), e.VDest()
		if vsrc == nil || vdst == nil {
			continue
		}
		if t.voronoiSides != nil {
			side := float32(math.Hypot(float64(vdst.X-vsrc.X), float64(vdst.Y-vsrc.Y)))
			t.voronoiSides[si] = side
			t.voronoiSides[di] = side
		}
		if areas != nil {
			areas[src.ID] += math.Abs(quadedge.CCWVoronoi(src, vsrc, vdst)) * 0.5
			areas[dst.ID] += math.Abs(quadedge.CCWVoronoi(dst, vsrc, vdst)) * 0.5
		}
	}

	if areas == nil {
		return
	}
	t.voronoiAreas = make([]float32, t.numInput)
	for i, a := range areas {
		if t.outputHull[i] {
			t.voronoiAreas[i] = UnboundedArea
			continue
		}
		t.voronoiAreas[i] = float32(a)
	}
}
