// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"
	"slices"

	"github.com/2dChan/r2voronoi/delaunay"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const diagramAttributes = delaunay.TriangleIndices | delaunay.VoronoiVertices |
	delaunay.VoronoiSides | delaunay.VoronoiCellAreas | delaunay.NodeNeighbours

// Diagram is the Voronoi diagram of a planar point set together with the
// Delaunay connectivity it was derived from.
type Diagram struct {
	Sites [][2]float32
	// Vertices[i] is the circumcenter of Triangles[i].
	Vertices  []r2.Point
	Triangles [][3]int

	// NOTE: Sort in CCW per Cell
	CellVertices      []int
	CellVertexOffsets []int

	// NOTE: Sort in CCW per Cell
	CellNeighbors []int
	// CellSides[k] is the length of the Voronoi side shared with
	// CellNeighbors[k], 0 where the side is unbounded.
	CellSides   []float32
	CellOffsets []int

	// CellAreas holds delaunay.UnboundedArea for hull cells.
	CellAreas []float32
	Hull      []bool

	dt *delaunay.Triangulator
}

type DiagramOptions struct {
	SuperTriangle bool
	Logger        *zap.Logger
}

type DiagramOption func(*DiagramOptions) error

// WithSuperTriangle encloses the sites in a synthetic triangle so that every
// cell is bounded.
func WithSuperTriangle() DiagramOption {
	return func(o *DiagramOptions) error {
		o.SuperTriangle = true
		return nil
	}
}

// WithLogger sets the logger handed to the triangulator.
func WithLogger(l *zap.Logger) DiagramOption {
	return func(o *DiagramOptions) error {
		if l == nil {
			return errors.New("WithLogger: logger must be non-nil")
		}
		o.Logger = l
		return nil
	}
}

// NewDiagram computes the Voronoi diagram of points. The diagram borrows
// points; they must not change while it is in use.
func NewDiagram(points [][2]float32, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Logger: zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	attr := diagramAttributes
	if opts.SuperTriangle {
		attr |= delaunay.SuperTriangle
	}
	dt, err := delaunay.New(points, attr, delaunay.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	numTriangles := dt.NumTriangles()
	d := &Diagram{
		Sites:         points,
		Vertices:      make([]r2.Point, numTriangles),
		Triangles:     dt.Triangles(),
		CellNeighbors: slices.Clone(dt.NeighbourIndices()),
		CellSides:     slices.Clone(dt.VoronoiSideLengths()),
		CellOffsets:   dt.NeighbourOffsets(),
		CellAreas:     dt.VoronoiCellAreas(),
		Hull:          dt.Hull(),
		dt:            dt,
	}

	// Pool order of the triangulator's Voronoi vertices differs from triangle order.
	for i, tri := range d.Triangles {
		d.Vertices[i] = triangleCircumcenter(d.site(tri[0]), d.site(tri[1]), d.site(tri[2]))
	}
	d.buildCellVertices()
	d.sortNeighborsCCW()

	return d, nil
}

// NumCells returns the number of cells, one per site.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

// Cell returns the cell of site i.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= len(d.Sites) {
		return Cell{}, errors.Errorf("Cell: index %d out of range [0 %d)", i, len(d.Sites))
	}
	return Cell{idx: i, d: d}, nil
}

// Triangulation returns the triangulation the diagram was built from.
func (d *Diagram) Triangulation() *delaunay.Triangulator {
	return d.dt
}

func (d *Diagram) site(i int) r2.Point {
	return r2.Point{X: float64(d.Sites[i][0]), Y: float64(d.Sites[i][1])}
}

// buildCellVertices lists, per site, the circumcenters of its incident
// triangles.
func (d *Diagram) buildCellVertices() {
	numSites := len(d.Sites)
	d.CellVertexOffsets = make([]int, numSites+1)
	for _, tri := range d.Triangles {
		for _, v := range tri {
			d.CellVertexOffsets[v+1]++
		}
	}
	for i := range numSites {
		d.CellVertexOffsets[i+1] += d.CellVertexOffsets[i]
	}

	d.CellVertices = make([]int, 3*len(d.Triangles))
	nxt := slices.Clone(d.CellVertexOffsets[:numSites])
	for tIdx, tri := range d.Triangles {
		for _, v := range tri {
			d.CellVertices[nxt[v]] = tIdx
			nxt[v]++
		}
	}

	for i := range numSites {
		center := d.site(i)
		vs := d.CellVertices[d.CellVertexOffsets[i]:d.CellVertexOffsets[i+1]]
		slices.SortFunc(vs, func(a, b int) int {
			return compareAngle(center, d.Vertices[a], d.Vertices[b])
		})
	}
}

// sortNeighborsCCW orders each neighbour list by angle, keeping the side
// lengths aligned.
func (d *Diagram) sortNeighborsCCW() {
	type entry struct {
		idx  int
		side float32
	}
	var buf []entry
	for i := range d.Sites {
		start, end := d.CellOffsets[i], d.CellOffsets[i+1]
		buf = buf[:0]
		for k := start; k < end; k++ {
			buf = append(buf, entry{d.CellNeighbors[k], d.CellSides[k]})
		}
		center := d.site(i)
		slices.SortFunc(buf, func(a, b entry) int {
			return compareAngle(center, d.site(a.idx), d.site(b.idx))
		})
		for k, e := range buf {
			d.CellNeighbors[start+k] = e.idx
			d.CellSides[start+k] = e.side
		}
	}
}

func compareAngle(center, a, b r2.Point) int {
	aa := angle(a.Sub(center))
	ab := angle(b.Sub(center))
	switch {
	case aa < ab:
		return -1
	case aa > ab:
		return 1
	}
	return 0
}

// angle returns the polar angle of v in [0, 2π).
func angle(v r2.Point) float64 {
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func triangleCircumcenter(p1, p2, p3 r2.Point) r2.Point {
	b := p2.Sub(p1)
	c := p3.Sub(p1)

	d := 2 * b.Cross(c)
	lb, lc := b.Dot(b), c.Dot(c)

	return r2.Point{
		X: p1.X + (c.Y*lb-b.Y*lc)/d,
		Y: p1.Y + (b.X*lc-c.X*lb)/d,
	}
}
