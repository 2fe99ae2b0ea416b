// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package quadedge implements the quad-edge structure of Guibas and Stolfi
// (1985) together with the geometric predicates used to build a Delaunay
// triangulation and its Voronoi dual.
//
// A QuadEdge bundles four directed edges: the primal edge, its reverse and
// the two dual edges. Only one "next" reference is stored per directed edge;
// every other relation is derived by rotating within the bundle.
package quadedge

// Edge is a directed edge: a bundle and the role (0..3) within it.
// The zero Edge is nil.
type Edge struct {
	q *QuadEdge
	r uint8
}

type record struct {
	next Edge
	org  *Site
	vorg *VSite
}

// QuadEdge is one undirected edge of a subdivision and its dual.
type QuadEdge struct {
	e       [4]record
	index   int
	visited uint16
	inUse   bool
}

// Init resets q to an isolated edge in the sense of MakeEdge, Guibas and
// Stolfi p. 96. The edge is marked in use and carries the given index.
func (q *QuadEdge) Init(index int) {
	*q = QuadEdge{index: index, inUse: true}
	q.e[0].next = Edge{q, 0}
	q.e[1].next = Edge{q, 3}
	q.e[2].next = Edge{q, 2}
	q.e[3].next = Edge{q, 1}
}

// Edge0 returns the canonical representative of the bundle.
func (q *QuadEdge) Edge0() Edge {
	return Edge{q, 0}
}

// Index returns the index given to Init.
func (q *QuadEdge) Index() int {
	return q.index
}

// Visited returns the visitation count.
func (q *QuadEdge) Visited() int {
	return int(q.visited)
}

func (q *QuadEdge) IncrementVisited() {
	q.visited++
}

func (q *QuadEdge) DecrementVisited() {
	q.visited--
}

func (q *QuadEdge) ResetVisited() {
	q.visited = 0
}

// IsFree reports whether q is not part of a subdivision.
func (q *QuadEdge) IsFree() bool {
	return !q.inUse
}

func (q *QuadEdge) SetFree() {
	q.inUse = false
}

func (q *QuadEdge) SetInUse() {
	q.inUse = true
}

// IsNil reports whether e refers to no edge.
func (e Edge) IsNil() bool {
	return e.q == nil
}

// Quad returns the bundle e belongs to.
func (e Edge) Quad() *QuadEdge {
	return e.q
}

// Role returns the position of e within its bundle.
func (e Edge) Role() int {
	return int(e.r)
}

// Rot returns the dual edge rotated 90 degrees counter-clockwise.
func (e Edge) Rot() Edge {
	return Edge{e.q, (e.r + 1) & 3}
}

// Tor is the inverse of Rot.
func (e Edge) Tor() Edge {
	return Edge{e.q, (e.r + 3) & 3}
}

// Sym returns e with its direction reversed.
func (e Edge) Sym() Edge {
	return Edge{e.q, e.r ^ 2}
}

// Onext returns the next edge counter-clockwise around the origin.
func (e Edge) Onext() Edge {
	return e.q.e[e.r].next
}

func (e Edge) Oprev() Edge {
	return e.Rot().Onext().Rot()
}

func (e Edge) Dnext() Edge {
	return e.Sym().Onext().Sym()
}

func (e Edge) Dprev() Edge {
	return e.Tor().Onext().Tor()
}

// Lnext returns the next edge counter-clockwise around the left face.
func (e Edge) Lnext() Edge {
	return e.Tor().Onext().Rot()
}

func (e Edge) Lprev() Edge {
	return e.Onext().Sym()
}

func (e Edge) Rnext() Edge {
	return e.Rot().Onext().Tor()
}

func (e Edge) Rprev() Edge {
	return e.Sym().Onext()
}

func (e Edge) Org() *Site {
	return e.q.e[e.r].org
}

func (e Edge) Dest() *Site {
	return e.Sym().Org()
}

// VOrg returns the Voronoi vertex of the face to the right of e, if any.
func (e Edge) VOrg() *VSite {
	return e.q.e[e.r].vorg
}

// VDest returns the Voronoi vertex of the face to the left of e, if any.
func (e Edge) VDest() *VSite {
	return e.Sym().VOrg()
}

func (e Edge) SetOnext(n Edge) {
	e.q.e[e.r].next = n
}

func (e Edge) SetOrg(s *Site) {
	e.q.e[e.r].org = s
}

func (e Edge) SetDest(s *Site) {
	e.Sym().SetOrg(s)
}

func (e Edge) SetVOrg(vs *VSite) {
	e.q.e[e.r].vorg = vs
}

func (e Edge) SetVDest(vs *VSite) {
	e.Sym().SetVOrg(vs)
}

// Splice exchanges a.Onext and b.Onext together with the corresponding dual
// rings, Guibas and Stolfi p. 98.
func Splice(a, b Edge) {
	alpha := a.Onext().Rot()
	beta := b.Onext().Rot()

	ta, tb := a.Onext(), b.Onext()
	a.SetOnext(tb)
	b.SetOnext(ta)

	ta, tb = alpha.Onext(), beta.Onext()
	alpha.SetOnext(tb)
	beta.SetOnext(ta)
}
