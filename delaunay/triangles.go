// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import "github.com/2dChan/r2voronoi/quadedge"

// forEachFace calls fn once for every bounded triangular face, with e one of
// its edges (the face lies to the left of e), eOnext = e.Onext() and
// eLnext = e.Lnext(). The vertices e.Org, e.Dest, eOnext.Dest are in
// counter-clockwise order. Visitation counters are reset first and each
// bounding edge is incremented after fn returns, so fn sees how many faces
// were already reported on each of its edges.
//
// Every directed edge of every live bundle is a candidate. A face is reported
// from the edge whose bundle has the lowest index. The outer face is
// rejected by orientation, which matters once the hull is a triangle.
func (t *Triangulator) forEachFace(fn func(e, eOnext, eLnext quadedge.Edge)) {
	data := t.edges.Data()
	for i := range data {
		data[i].ResetVisited()
	}

	for i := range data {
		q := &data[i]
		if q.IsFree() {
			continue
		}
		for _, e := range [2]quadedge.Edge{q.Edge0(), q.Edge0().Sym()} {
			eOnext, eLnext := e.Onext(), e.Lnext()
			if eLnext.Lnext() != eOnext.Sym() || eLnext.Dest() != eOnext.Dest() {
				continue
			}
			if eOnext.Quad().Index() < q.Index() || eLnext.Quad().Index() < q.Index() {
				continue
			}
			if quadedge.CCW(e.Org(), e.Dest(), eOnext.Dest()) <= 0 {
				continue
			}
			fn(e, eOnext, eLnext)
			e.Quad().IncrementVisited()
			eOnext.Quad().IncrementVisited()
			eLnext.Quad().IncrementVisited()
		}
	}
}

func (t *Triangulator) isSynthetic(s *quadedge.Site) bool {
	return s.ID >= t.numInput
}

// generateTriangles records the triangle list and, when requested, the
// triangle adjacency derived from the at most two faces of each edge.
func (t *Triangulator) generateTriangles() {
	withNeighbours := t.attr&TriangleNeighbours != 0

	var edgeFaces [][2]int
	if withNeighbours {
		edgeFaces = make([][2]int, len(t.edges.Data()))
		for i := range edgeFaces {
			edgeFaces[i] = [2]int{NoNeighbour, NoNeighbour}
		}
	}

	t.triangles = make([][3]int, 0, 2*t.numInput)
	t.forEachFace(func(e, eOnext, eLnext quadedge.Edge) {
		a, b, c := e.Org(), e.Dest(), eOnext.Dest()
		if t.isSynthetic(a) || t.isSynthetic(b) || t.isSynthetic(c) {
			return
		}
		idx := len(t.triangles)
		t.triangles = append(t.triangles, [3]int{a.ID, b.ID, c.ID})
		if withNeighbours {
			for _, q := range [3]*quadedge.QuadEdge{e.Quad(), eOnext.Quad(), eLnext.Quad()} {
				edgeFaces[q.Index()][q.Visited()] = idx
			}
		}
	})

	if !withNeighbours {
		return
	}

	t.triangleNeighbours = make([][3]int, len(t.triangles))
	for i := range t.triangleNeighbours {
		t.triangleNeighbours[i] = [3]int{NoNeighbour, NoNeighbour, NoNeighbour}
	}
	filled := make([]int, len(t.triangles))
	for _, f := range edgeFaces {
		a, b := f[0], f[1]
		if a != NoNeighbour {
			t.triangleNeighbours[a][filled[a]] = b
			filled[a]++
		}
		if b != NoNeighbour {
			t.triangleNeighbours[b][filled[b]] = a
			filled[b]++
		}
	}
}
