// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides point generators and fixture loading for planar
// Delaunay triangulations.

package utils

import (
	"io"
	"math/rand"
	"strconv"

	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// GenerateRandomPoints generates cnt points distributed uniformly in bound.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bound r2.Rect) [][2]float32 {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([][2]float32, cnt)

	lo, size := bound.Lo(), bound.Size()
	for i := range cnt {
		points[i] = [2]float32{
			float32(lo.X + random.Float64()*size.X),
			float32(lo.Y + random.Float64()*size.Y),
		}
	}

	return points
}

// GenerateGrid generates an nx by ny lattice spanning lower to upper. Point
// i*ny+j lies in column i and row j.
func GenerateGrid(nx, ny int, lower, upper r2.Point) [][2]float32 {
	if nx < 2 || ny < 2 {
		panic("GenerateGrid: nx and ny must be at least 2")
	}

	dx := (upper.X - lower.X) / float64(nx-1)
	dy := (upper.Y - lower.Y) / float64(ny-1)
	points := make([][2]float32, nx*ny)
	for i := range nx {
		for j := range ny {
			points[i*ny+j] = [2]float32{
				float32(lower.X + float64(i)*dx),
				float32(lower.Y + float64(j)*dy),
			}
		}
	}

	return points
}

// LoadSVGPoints reads the centers of all circle elements of an SVG document.
func LoadSVGPoints(r io.Reader) ([][2]float32, error) {
	root, err := svgparser.Parse(r, true)
	if err != nil {
		return nil, errors.Wrap(err, "utils: parse svg")
	}

	circles := root.FindAll("circle")
	points := make([][2]float32, 0, len(circles))
	for i, c := range circles {
		x, err := strconv.ParseFloat(c.Attributes["cx"], 32)
		if err != nil {
			return nil, errors.Wrapf(err, "utils: circle %d: invalid cx", i)
		}
		y, err := strconv.ParseFloat(c.Attributes["cy"], 32)
		if err != nil {
			return nil, errors.Wrapf(err, "utils: circle %d: invalid cy", i)
		}
		points = append(points, [2]float32{float32(x), float32(y)})
	}

	return points, nil
}
