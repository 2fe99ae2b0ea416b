// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

import (
	"github.com/2dChan/r2voronoi/quadedge"
	"github.com/pkg/errors"
)

var (
	ErrInsufficientSites = errors.New("delaunay: insufficient sites for triangulation (minimum 2 required)")
	ErrDuplicateSite     = errors.New("delaunay: duplicate site")
	ErrPoolExhausted     = errors.New("delaunay: edge pool exhausted")

	// ErrDegenerateGeometry matches errors caused by a triangle with no
	// well-defined circumcenter.
	ErrDegenerateGeometry = quadedge.ErrDegenerateTriangle
)

// Threading pool exhaustion through every level of the merge recursion would
// clutter it. The operators panic instead and New recovers.

func exhausted(format string, args ...any) {
	panic(errors.Wrapf(ErrPoolExhausted, format, args...))
}

func handlePanicRecover(r any) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok && errors.Is(err, ErrPoolExhausted) {
		return err
	}
	panic(r)
}
