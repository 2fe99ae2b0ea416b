// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package quadedge

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDegenerateTriangle is returned by Circumcenter for zero-area triangles.
var ErrDegenerateTriangle = errors.New("quadedge: degenerate triangle")

// VSite is a Voronoi vertex, the circumcenter of a Delaunay triangle.
type VSite struct {
	X, Y float32
}

func (v VSite) String() string {
	return fmt.Sprintf("VSite: (%v, %v)", v.X, v.Y)
}

// Site is a node of the triangulation. It borrows its coordinates from the
// caller's point array and never writes through them.
type Site struct {
	coord *[2]float32
	// ID is the position of the site in input order. IDs at or above the
	// input count denote synthetic sites.
	ID int
}

// NewSite returns a Site reading its coordinates from coord.
func NewSite(coord *[2]float32, id int) Site {
	return Site{coord: coord, ID: id}
}

// X returns the x-coordinate widened to float64.
func (s *Site) X() float64 {
	return float64(s.coord[0])
}

// Y returns the y-coordinate widened to float64.
func (s *Site) Y() float64 {
	return float64(s.coord[1])
}

// Coord returns a copy of the site's coordinates.
func (s *Site) Coord() [2]float32 {
	return *s.coord
}

func (s *Site) String() string {
	return fmt.Sprintf("Site: id(%d): (%v, %v)", s.ID, s.coord[0], s.coord[1])
}

// Less orders sites by x, then by y.
func Less(a, b *Site) bool {
	if a.coord[0] != b.coord[0] {
		return a.coord[0] < b.coord[0]
	}
	return a.coord[1] < b.coord[1]
}

// Compare is the three-way form of Less, suitable for slices.SortStableFunc.
func Compare(a, b Site) int {
	switch {
	case Less(&a, &b):
		return -1
	case Less(&b, &a):
		return 1
	}
	return 0
}

// InCircle reports whether d lies strictly inside the circle through a, b
// and c, which must be in counter-clockwise order.
func InCircle(a, b, c, d *Site) bool {
	x1, y1 := a.X(), a.Y()
	x2, y2 := b.X(), b.Y()
	x3, y3 := c.X(), c.Y()
	x4, y4 := d.X(), d.Y()

	return ((y4-y1)*(x2-x3)+(x4-x1)*(y2-y3))*((x4-x3)*(x2-x1)-(y4-y3)*(y2-y1)) >
		((y4-y3)*(x2-x1)+(x4-x3)*(y2-y1))*((x4-x1)*(x2-x3)-(y4-y1)*(y2-y3))
}

// CCW returns twice the signed area of the triangle a, b, c. The area is
// positive when the triangle is oriented counter-clockwise.
func CCW(a, b, c *Site) float64 {
	return ccw(a.X(), a.Y(), b.X(), b.Y(), c.X(), c.Y())
}

// CCWVoronoi is CCW with b and c given as Voronoi vertices.
func CCWVoronoi(a *Site, b, c *VSite) float64 {
	return ccw(a.X(), a.Y(),
		float64(b.X), float64(b.Y),
		float64(c.X), float64(c.Y))
}

func ccw(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx*cy - by*cx) - (ax*cy - ay*cx) + (ax*by - ay*bx)
}

// Circumcenter stores the circumcenter of the triangle a, b, c in vs. It
// returns ErrDegenerateTriangle, leaving vs untouched, when the triangle has
// zero area.
func Circumcenter(a, b, c *Site, vs *VSite) error {
	x1, y1 := a.X(), a.Y()

	// Offsets relative to a.
	x21, y21 := b.X()-x1, b.Y()-y1
	x31, y31 := c.X()-x1, c.Y()-y1

	area2 := x21*y31 - y21*x31
	if area2 == 0 {
		return errors.Wrapf(ErrDegenerateTriangle, "sites %d, %d, %d", a.ID, b.ID, c.ID)
	}
	denominator := 0.5 / area2

	len21 := x21*x21 + y21*y21
	len31 := x31*x31 + y31*y31

	vs.X = float32((y31*len21-y21*len31)*denominator + x1)
	vs.Y = float32((x21*len31-x31*len21)*denominator + y1)
	return nil
}
