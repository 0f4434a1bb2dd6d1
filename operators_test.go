// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import (
	"math"
	"testing"
)

// TestEvalDirect is scenario S1: direct evaluation of the Laplace kernel
// and force field at a source/target pair away from the singularity.
func TestEvalDirect(t *testing.T) {
	s := Point{X: 0.1, Y: 0.2, Z: 0.3}
	target := Point{X: 3, Y: 4, Z: 5}

	dx, dy, dz := s.X-target.X, s.Y-target.Y, s.Z-target.Z
	r2 := dx*dx + dy*dy + dz*dz
	r := math.Sqrt(r2)
	wantPot := 1 / r
	wantF := Point{X: dx / (r * r2), Y: dy / (r * r2), Z: dz / (r * r2)}

	got := Eval(target, s)
	if math.Abs(got.Potential()-wantPot) > 1e-12 {
		t.Errorf("potential = %v, want %v", got.Potential(), wantPot)
	}
	f := got.Force()
	if math.Abs(f.X-wantF.X) > 1e-12 || math.Abs(f.Y-wantF.Y) > 1e-12 || math.Abs(f.Z-wantF.Z) > 1e-12 {
		t.Errorf("force = %v, want %v", f, wantF)
	}
}

// TestEvalSelfInteraction is scenario S5: eval(t, t) returns the zero
// Result exactly.
func TestEvalSelfInteraction(t *testing.T) {
	p := Point{X: 1.5, Y: -2.5, Z: 0.25}
	got := Eval(p, p)
	if got != (Result{}) {
		t.Errorf("Eval(p, p) = %v, want zero Result", got)
	}
}

func TestKernelPanicsOnBadOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(0) did not panic")
		}
	}()
	New(0)
}

func TestOperatorsPanicOnLengthMismatch(t *testing.T) {
	k := New(3)
	defer func() {
		if recover() == nil {
			t.Fatal("P2M with wrong-length multipole did not panic")
		}
	}()
	bad := make(Multipole, 1)
	k.P2M(Point{}, 1, Point{}, bad)
}

// m2mGeneric runs the plain double-loop convolution M2M would fall back to
// if no internal/triples table were registered for k.Order(). It is the
// reference half of the "compute both forms and compare" check: any table
// registered by cmd/fmmgen must agree with this loop exactly, since both
// compute the same Σ_{β≤α} C[α-β]·source[β] sum.
func m2mGeneric(k *Kernel, source, target Multipole, translation Point) {
	c := make([]float64, k.ord.mterm)
	buildPower(translation, k.p-1, c, 1)
	for slotA, a := range k.ord.alpha[:k.ord.mterm] {
		var sum float64
		for bx := 0; bx <= a.nx; bx++ {
			for by := 0; by <= a.ny; by++ {
				for bz := 0; bz <= a.nz; bz++ {
					slotB := monoIndex(bx, by, bz)
					slotC := monoIndex(a.nx-bx, a.ny-by, a.nz-bz)
					sum += c[slotC] * source[slotB]
				}
			}
		}
		target[slotA] += sum
	}
}

// TestM2MTripleTableMatchesGeneric exercises the internal/triples registered
// tables for P=1 and P=2 against the generic fallback loop, for a handful of
// source multipoles and translations. Kernel.M2M prefers the registered
// table when one exists (see operators.go); this test pins the two paths to
// identical output so that regenerating the tables can never silently change
// results.
func TestM2MTripleTableMatchesGeneric(t *testing.T) {
	cases := []Point{
		{X: 0.3, Y: -0.2, Z: 0.1},
		{X: 1, Y: 0, Z: 0},
		{X: -0.7, Y: 0.5, Z: 0.9},
	}
	for _, p := range []int{1, 2} {
		k := New(p)
		for _, translation := range cases {
			source := k.NewMultipole()
			for i := range source {
				source[i] = float64(i) + 1.5
			}

			got := k.NewMultipole()
			k.M2M(source, got, translation)

			want := k.NewMultipole()
			m2mGeneric(k, source, want, translation)

			for i := range want {
				if math.Abs(got[i]-want[i]) > 1e-12 {
					t.Errorf("P=%d translation=%v slot %d: table path = %v, generic path = %v", p, translation, i, got[i], want[i])
				}
			}
		}
	}
}
