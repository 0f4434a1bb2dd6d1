// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location in 3-space: a source, a target, a box center, or a
// translation vector. The axis order is fixed by r3.Vec's fields: X, Y, Z.
type Point = r3.Vec

// Charge is the strength of a source.
type Charge = float64

// Multipole is the outer expansion of a box: a MTerm(P)-length vector whose
// slot 0 holds total charge and whose other slots hold weighted moments of
// the box's sources about its center. Multipoles are accumulated in place
// by P2M and M2M and never decremented.
type Multipole []float64

// NewMultipole returns a zeroed multipole vector for expansion order p.
func NewMultipole(p int) Multipole {
	return make(Multipole, MTerm(p))
}

// Add accumulates src into m in place: m[i] += src[i] for all i.
func (m Multipole) Add(src Multipole) {
	floats.Add(m, src)
}

// Local is the inner expansion of a box: a LTerm(P)-length vector
// representing a truncated Taylor series of the far-field potential about
// the box center. Locals are accumulated in place by M2L and L2L.
type Local []float64

// NewLocal returns a zeroed local vector for expansion order p.
func NewLocal(p int) Local {
	return make(Local, LTerm(p))
}

// Add accumulates src into l in place: l[i] += src[i] for all i.
func (l Local) Add(src Local) {
	floats.Add(l, src)
}

// Result accumulates the potential and force field evaluated at a target:
// Result{potential, fx, fy, fz}.
type Result [4]float64

// Potential returns the accumulated potential.
func (r Result) Potential() float64 { return r[0] }

// Force returns the accumulated force vector.
func (r Result) Force() Point { return Point{X: r[1], Y: r[2], Z: r[3]} }

// Add accumulates src into r in place.
func (r *Result) Add(src Result) {
	r[0] += src[0]
	r[1] += src[1]
	r[2] += src[2]
	r[3] += src[3]
}

// Scale returns r scaled by f, for turning Eval's unit-charge result
// into the contribution of a source of charge f.
func (r Result) Scale(f float64) Result {
	return Result{r[0] * f, r[1] * f, r[2] * f, r[3] * f}
}
