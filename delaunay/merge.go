// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"github.com/2dChan/r2voronoi/mempool"
	"github.com/2dChan/r2voronoi/quadedge"
)

// triangulate builds the Delaunay triangulation of t.sites[lo:hi], which
// must be sorted. It returns the counter-clockwise hull edge out of the
// leftmost site and the clockwise hull edge out of the rightmost site.
func (t *Triangulator) triangulate(lo, hi int) (le, re quadedge.Edge) {
	s := t.sites

	switch hi - lo {
	case 2:
		a := t.makeEdge()
		a.SetOrg(&s[lo])
		a.SetDest(&s[lo+1])
		return a, a.Sym()

	case 3:
		a := t.makeEdge()
		b := t.makeEdge()
		quadedge.Splice(a.Sym(), b)
		a.SetOrg(&s[lo])
		a.SetDest(&s[lo+1])
		b.SetOrg(&s[lo+1])
		b.SetDest(&s[lo+2])

		switch ct := quadedge.CCW(&s[lo], &s[lo+1], &s[lo+2]); {
		case ct > 0:
			t.connect(b, a)
			return a, b.Sym()
		case ct < 0:
			c := t.connect(b, a)
			return c.Sym(), c
		}
		return a, b.Sym()
	}

	mid := (lo + hi) / 2
	ldo, ldi := t.triangulate(lo, mid)
	rdi, rdo := t.triangulate(mid, hi)

	// Lower common tangent of the two halves.
	for {
		if leftOf(rdi.Org(), ldi) {
			ldi = ldi.Lnext()
		} else if rightOf(ldi.Org(), rdi) {
			rdi = rdi.Rprev()
		} else {
			break
		}
	}

	basel := t.connect(rdi.Sym(), ldi)
	if ldi.Org() == ldo.Org() {
		ldo = basel.Sym()
	}
	if rdi.Org() == rdo.Org() {
		rdo = basel
	}

	// Merge loop.
	for {
		lcand := basel.Sym().Onext()
		if valid(lcand, basel) {
			for quadedge.InCircle(basel.Dest(), basel.Org(), lcand.Dest(), lcand.Onext().Dest()) {
				next := lcand.Onext()
				t.deleteEdge(lcand)
				lcand = next
			}
		}

		rcand := basel.Oprev()
		if valid(rcand, basel) {
			for quadedge.InCircle(basel.Dest(), basel.Org(), rcand.Dest(), rcand.Oprev().Dest()) {
				next := rcand.Oprev()
				t.deleteEdge(rcand)
				rcand = next
			}
		}

		lvalid, rvalid := valid(lcand, basel), valid(rcand, basel)
		if !lvalid && !rvalid {
			break
		}
		if !lvalid || (rvalid && quadedge.InCircle(lcand.Dest(), lcand.Org(), rcand.Org(), rcand.Dest())) {
			basel = t.connect(rcand, basel.Sym())
		} else {
			basel = t.connect(basel.Sym(), lcand.Sym())
		}
	}

	return ldo, rdo
}

func (t *Triangulator) makeEdge() quadedge.Edge {
	q, h := t.edges.New()
	if q == nil {
		exhausted("makeEdge: %d slots in use", t.edges.ChunkSize())
	}
	q.Init(int(h))
	return q.Edge0()
}

// connect adds an edge from a.Dest to b.Org so that a, the new edge and b
// share a left face.
func (t *Triangulator) connect(a, b quadedge.Edge) quadedge.Edge {
	e := t.makeEdge()
	quadedge.Splice(e, a.Lnext())
	quadedge.Splice(e.Sym(), b)
	e.SetOrg(a.Dest())
	e.SetDest(b.Org())
	return e
}

func (t *Triangulator) deleteEdge(e quadedge.Edge) {
	f := e.Sym()
	if e.Onext() != e {
		quadedge.Splice(e, e.Oprev())
	}
	if f.Onext() != f {
		quadedge.Splice(f, f.Oprev())
	}
	q := e.Quad()
	q.SetFree()
	t.edges.Delete(mempool.Handle(q.Index()))
}

func leftOf(s *quadedge.Site, e quadedge.Edge) bool {
	return quadedge.CCW(s, e.Org(), e.Dest()) > 0
}

func rightOf(s *quadedge.Site, e quadedge.Edge) bool {
	return quadedge.CCW(s, e.Dest(), e.Org()) > 0
}

func valid(e, basel quadedge.Edge) bool {
	return rightOf(e.Dest(), basel)
}
