// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package delaunay

// markHull walks the outer face from the leftmost hull edge. With a super
// triangle the topological hull consists of the synthetic sites only, so the
// reported hull is made of the input sites adjacent to them.
func (t *Triangulator) markHull() {
	t.hull = make([]bool, len(t.sites))
	e := t.le
	for {
		t.hull[e.Org().ID] = true
		t.hull[e.Dest().ID] = true
		e = e.Rprev()
		if e == t.le {
			break
		}
	}

	t.outputHull = make([]bool, t.numInput)
	if t.attr&SuperTriangle == 0 {
		copy(t.outputHull, t.hull)
		return
	}

	e = t.le
	for {
		first := e.Dnext()
		for d := first; ; {
			if id := d.Org().ID; id < t.numInput {
				t.outputHull[id] = true
			}
			d = d.Dnext()
			if d == first {
				break
			}
		}
		e = e.Rprev()
		if e == t.le {
			break
		}
	}
}
