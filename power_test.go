// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// TestBuildPowerCorrectness checks testable property #5: after populating C
// from displacement d, C[I(α)]·α! = d_x^nx · d_y^ny · d_z^nz for all α with
// |α| ≤ D.
func TestBuildPowerCorrectness(t *testing.T) {
	const degree = 6
	d := Point{X: 0.7, Y: -1.3, Z: 2.1}
	ord := getOrder(degree)
	c := make([]float64, ord.lterm)
	buildPower(d, degree, c, 1)

	for slot, a := range ord.alpha {
		got := c[slot] * ord.weight[slot]
		want := math.Pow(d.X, float64(a.nx)) * math.Pow(d.Y, float64(a.ny)) * math.Pow(d.Z, float64(a.nz))
		if !scalar.EqualWithinAbs(got, want, 1e-9) && !scalar.EqualWithinRel(got, want, 1e-9) {
			t.Errorf("slot %d (%d,%d,%d): C·α! = %v, want %v", slot, a.nx, a.ny, a.nz, got, want)
		}
	}
}

func TestBuildPowerBaseCharge(t *testing.T) {
	d := Point{X: 1, Y: 2, Z: 3}
	c := make([]float64, LTerm(2))
	buildPower(d, 2, c, 5.0)
	if c[0] != 5.0 {
		t.Fatalf("c[0] = %v, want 5", c[0])
	}
	// slot for (1,0,0) should be 5*d.X/1.
	if got, want := c[monoIndex(1, 0, 0)], 5.0*d.X; got != want {
		t.Errorf("c[(1,0,0)] = %v, want %v", got, want)
	}
}
