// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import (
	"math"
	"testing"
)

// centralPartial approximates ∂^(nx,ny,nz) f(center) with the tensor-product
// central-difference stencil
//
//	D^m[f](x) = (1/h^m) Σ_{k=0}^{m} (-1)^k C(m,k) f(x + (m/2-k)h)
//
// applied independently along each axis, used to verify the derivative
// builder (testable property #6) without assuming anything about its
// internal recursion.
func centralPartial(f func(Point) float64, center Point, nx, ny, nz int, h float64) float64 {
	var sum float64
	for ix := 0; ix <= nx; ix++ {
		cx := binom(nx, ix) * sign(ix)
		ox := (float64(nx)/2 - float64(ix)) * h
		for iy := 0; iy <= ny; iy++ {
			cy := binom(ny, iy) * sign(iy)
			oy := (float64(ny)/2 - float64(iy)) * h
			for iz := 0; iz <= nz; iz++ {
				cz := binom(nz, iz) * sign(iz)
				oz := (float64(nz)/2 - float64(iz)) * h
				coeff := cx * cy * cz
				if coeff == 0 {
					continue
				}
				sum += coeff * f(Point{X: center.X + ox, Y: center.Y + oy, Z: center.Z + oz})
			}
		}
	}
	return sum / math.Pow(h, float64(nx+ny+nz))
}

func sign(k int) float64 {
	if k%2 == 0 {
		return 1
	}
	return -1
}

func binom(n, k int) float64 {
	return factorial(n) / (factorial(k) * factorial(n-k))
}

// TestBuildDerivativeCorrectness checks testable property #6: after
// populating C from displacement d, C[I(α)] = α!·∂^α(1/|d|), verified
// numerically against central finite differences.
func TestBuildDerivativeCorrectness(t *testing.T) {
	const degree = 4
	d := Point{X: 1.3, Y: -0.8, Z: 0.5}
	ord := getOrder(degree)
	c := make([]float64, ord.lterm)
	buildDerivative(ord, d, c)

	inv := func(p Point) float64 {
		r2 := p.X*p.X + p.Y*p.Y + p.Z*p.Z
		return 1 / math.Sqrt(r2)
	}

	const h = 5e-3
	for slot, a := range ord.alpha {
		n := a.nx + a.ny + a.nz
		if n > degree {
			continue
		}
		fd := ord.weight[slot] * centralPartial(inv, d, a.nx, a.ny, a.nz, h)
		got := c[slot]
		tol := 1e-3 + 1e-3*math.Abs(fd)
		if math.Abs(got-fd) > tol {
			t.Errorf("slot %d (%d,%d,%d): builder = %v, weighted central-difference = %v (tol %v)",
				slot, a.nx, a.ny, a.nz, got, fd, tol)
		}
	}
}

func TestBuildDerivativeSlotZero(t *testing.T) {
	d := Point{X: 3, Y: 4, Z: 0}
	ord := getOrder(2)
	c := make([]float64, ord.lterm)
	buildDerivative(ord, d, c)
	want := 1.0 / 5.0
	if math.Abs(c[0]-want) > 1e-12 {
		t.Errorf("c[0] = %v, want %v", c[0], want)
	}
}
