// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay computes the Delaunay triangulation of a planar point set
// with the divide-and-conquer algorithm of Guibas and Stolfi (1985) and
// derives the Voronoi dual and per-node mesh connectivity from it.
package delaunay

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/2dChan/r2voronoi/mempool"
	"github.com/2dChan/r2voronoi/quadedge"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Attributes selects the optional outputs computed by New.
type Attributes uint

const (
	// SuperTriangle encloses the input in three synthetic sites. Triangles
	// touching them are never reported.
	SuperTriangle Attributes = 1 << iota
	TriangleIndices
	// TriangleNeighbours implies TriangleIndices.
	TriangleNeighbours
	VoronoiVertices
	// VoronoiSides implies VoronoiVertices.
	VoronoiSides
	// VoronoiCellAreas implies VoronoiVertices.
	VoronoiCellAreas
	NodeNeighbours
)

const (
	// NoNeighbour marks a triangle side on the convex hull.
	NoNeighbour = -1
	// UnboundedArea is the cell area reported for hull nodes.
	UnboundedArea = math.MaxFloat32
)

type Options struct {
	Logger *zap.Logger
}

type Option func(*Options) error

// WithLogger sets the logger used to report construction statistics.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) error {
		if l == nil {
			return errors.New("delaunay: WithLogger: logger must be non-nil")
		}
		o.Logger = l
		return nil
	}
}

// Triangulator holds the quad-edge subdivision of a point set and the
// outputs derived from it. It borrows the input points and must not outlive
// them; the points must not change while it is in use.
type Triangulator struct {
	attr   Attributes
	logger *zap.Logger

	points        [][2]float32
	numInput      int
	sites         []quadedge.Site
	superTriangle [3][2]float32

	edges    *mempool.Pool[quadedge.QuadEdge]
	vertices *mempool.Pool[quadedge.VSite]
	le, re   quadedge.Edge

	numEdges           int
	numFaces           int
	numVoronoiVertices int

	// hull flags every site on the topological hull, synthetic ones included.
	hull       []bool
	outputHull []bool

	triangles          [][3]int
	triangleNeighbours [][3]int

	numNeighbours    []int
	neighbourOffsets []int
	neighbours       []int
	voronoiSides     []float32
	voronoiAreas     []float32
}

// New triangulates points and computes the outputs selected by attr.
// It needs at least two distinct points.
func New(points [][2]float32, attr Attributes, setters ...Option) (t *Triangulator, err error) {
	opts := Options{
		Logger: zap.NewNop(),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	if len(points) < 2 {
		return nil, ErrInsufficientSites
	}
	if attr&TriangleNeighbours != 0 {
		attr |= TriangleIndices
	}
	if attr&(VoronoiSides|VoronoiCellAreas) != 0 {
		attr |= VoronoiVertices
	}

	start := time.Now()
	t = &Triangulator{
		attr:     attr,
		logger:   opts.Logger,
		points:   points,
		numInput: len(points),
	}
	t.initSites()
	if err := t.checkDuplicates(); err != nil {
		return nil, err
	}

	defer func() {
		if rerr := handlePanicRecover(recover()); rerr != nil {
			t, err = nil, rerr
		}
	}()

	n := len(t.sites)
	t.edges = mempool.New[quadedge.QuadEdge](3*n, mempool.Fixed)
	t.le, t.re = t.triangulate(0, n)
	t.numEdges = 3*n - t.edges.FreeCount()
	t.numFaces = t.numEdges - n + 2

	t.markHull()
	if attr&TriangleIndices != 0 {
		t.generateTriangles()
	}
	if attr&VoronoiVertices != 0 {
		if err := t.generateVoronoiVertices(); err != nil {
			t.logger.Error("voronoi vertex construction failed", zap.Error(err))
			return nil, err
		}
	}
	t.generateNodeNeighbours()

	t.logger.Debug("triangulation complete",
		zap.Int("sites", n),
		zap.Int("edges", t.numEdges),
		zap.Int("faces", t.numFaces),
		zap.Int("triangles", len(t.triangles)),
		zap.Int("voronoiVertices", t.numVoronoiVertices),
		zap.Duration("elapsed", time.Since(start)),
	)
	return t, nil
}

func (t *Triangulator) initSites() {
	n := t.numInput
	if t.attr&SuperTriangle != 0 {
		n += 3
	}
	t.sites = make([]quadedge.Site, n)
	for i := range t.points {
		t.sites[i] = quadedge.NewSite(&t.points[i], i)
	}
	if t.attr&SuperTriangle != 0 {
		t.initSuperTriangle()
		for k := range t.superTriangle {
			t.sites[t.numInput+k] = quadedge.NewSite(&t.superTriangle[k], t.numInput+k)
		}
	}
	slices.SortStableFunc(t.sites, quadedge.Compare)
}

// initSuperTriangle places an equilateral triangle whose incircle has the
// bounding box diagonal as radius.
func (t *Triangulator) initSuperTriangle() {
	b := t.Bound()
	c := b.Center()
	r := b.Size().Norm()
	tan60 := math.Tan(math.Pi / 3)

	t.superTriangle[0] = [2]float32{float32(c.X - tan60*r), float32(c.Y - r)}
	t.superTriangle[1] = [2]float32{float32(c.X + tan60*r), float32(c.Y - r)}
	t.superTriangle[2] = [2]float32{float32(c.X), float32(c.Y + r/math.Cos(math.Pi/3))}
}

// checkDuplicates relies on the sites being sorted.
func (t *Triangulator) checkDuplicates() error {
	for i := 1; i < len(t.sites); i++ {
		a, b := &t.sites[i-1], &t.sites[i]
		if a.Coord() == b.Coord() {
			return errors.Wrapf(ErrDuplicateSite, "sites %d and %d at (%v, %v)", a.ID, b.ID, a.X(), a.Y())
		}
	}
	return nil
}

// Attributes returns the effective attributes, implied ones included.
func (t *Triangulator) Attributes() Attributes {
	return t.attr
}

// NumSites returns the number of input sites.
func (t *Triangulator) NumSites() int {
	return t.numInput
}

// NumEdges returns the number of undirected edges, synthetic ones included.
func (t *Triangulator) NumEdges() int {
	return t.numEdges
}

// NumFaces returns the number of faces by Euler's formula, the outer face
// included.
func (t *Triangulator) NumFaces() int {
	return t.numFaces
}

// NumTriangles returns the number of reported triangles.
func (t *Triangulator) NumTriangles() int {
	return len(t.triangles)
}

// NumVoronoiVertices returns the number of circumcenters computed.
func (t *Triangulator) NumVoronoiVertices() int {
	return t.numVoronoiVertices
}

// Triangles returns the triangles as counter-clockwise triples of input
// indices. It is nil unless TriangleIndices was requested.
func (t *Triangulator) Triangles() [][3]int {
	return t.triangles
}

// TriangleNeighbours returns, for each triangle, the indices of the
// triangles across its sides, padded with NoNeighbour. It is nil unless
// TriangleNeighbours was requested.
func (t *Triangulator) TriangleNeighbours() [][3]int {
	return t.triangleNeighbours
}

// VoronoiVertices returns the circumcenters in pool order. It is nil unless
// VoronoiVertices was requested.
func (t *Triangulator) VoronoiVertices() []quadedge.VSite {
	if t.vertices == nil || t.vertices.Data() == nil {
		return nil
	}
	return t.vertices.Data()[t.vertices.FreeCount():]
}

// Hull reports, per input site, whether it lies on the convex hull.
func (t *Triangulator) Hull() []bool {
	return t.outputHull
}

// NumNeighbours returns the natural neighbour count per input site.
func (t *Triangulator) NumNeighbours() []int {
	return t.numNeighbours
}

// NeighbourOffsets returns the prefix sums of NumNeighbours; it has one more
// entry than there are input sites.
func (t *Triangulator) NeighbourOffsets() []int {
	return t.neighbourOffsets
}

// NeighbourIndices returns the flat neighbour array indexed by
// NeighbourOffsets. It is nil unless NodeNeighbours was requested.
func (t *Triangulator) NeighbourIndices() []int {
	return t.neighbours
}

// Neighbours returns the natural neighbours of site i.
func (t *Triangulator) Neighbours(i int) []int {
	if i < 0 || i >= t.numInput {
		panic("Neighbours: index out of range")
	}
	if t.neighbours == nil {
		return nil
	}
	return t.neighbours[t.neighbourOffsets[i]:t.neighbourOffsets[i+1]]
}

// VoronoiSideLengths returns the flat array of Voronoi side lengths, aligned
// with NeighbourIndices. It is nil unless VoronoiSides was requested.
func (t *Triangulator) VoronoiSideLengths() []float32 {
	return t.voronoiSides
}

// VoronoiSides returns the lengths of the Voronoi sides shared by site i and
// each of its neighbours. Sides on unbounded cells are 0.
func (t *Triangulator) VoronoiSides(i int) []float32 {
	if i < 0 || i >= t.numInput {
		panic("VoronoiSides: index out of range")
	}
	if t.voronoiSides == nil {
		return nil
	}
	return t.voronoiSides[t.neighbourOffsets[i]:t.neighbourOffsets[i+1]]
}

// VoronoiCellAreas returns the Voronoi cell area per input site, with
// UnboundedArea for every site reported by Hull, including the sites next to
// the super triangle. It is nil unless VoronoiCellAreas was requested.
func (t *Triangulator) VoronoiCellAreas() []float32 {
	return t.voronoiAreas
}

// Bound returns the bounding box of the input sites.
func (t *Triangulator) Bound() r2.Rect {
	r := r2.EmptyRect()
	for _, p := range t.points {
		r = r.AddPoint(r2.Point{X: float64(p[0]), Y: float64(p[1])})
	}
	return r
}

func (t *Triangulator) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Triangulator (%p)\n", t)
	fmt.Fprintf(&sb, "\tNum Sites: %d\n", t.numInput)
	fmt.Fprintf(&sb, "\tNum Edges: %d\n", t.numEdges)
	fmt.Fprintf(&sb, "\tNum Faces: %d\n", t.numFaces)
	if t.attr&TriangleIndices != 0 {
		fmt.Fprintf(&sb, "\tNum Triangles: %d\n", len(t.triangles))
	}
	if t.attr&VoronoiVertices != 0 {
		fmt.Fprintf(&sb, "\tNum Voronoi Vertices: %d\n", t.numVoronoiVertices)
	}
	return sb.String()
}
