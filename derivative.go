// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import "math"

// buildDerivative populates c, a coefficient vector of length LTerm(p),
// with
//
//	c[I(α)] = α! · ∂^α(1/R) evaluated at d,   for every α with |α| ≤ p,
//
// per spec §4.4. The recursion follows from differentiating the identity
// R²·∂_a(1/R) = -d_a/R (itself obtained from 1/R having R²·(1/R)² = 1) a
// total of |α|-1 times with Leibniz's rule, picking a single reduction axis
// a with α_a ≥ 1 per multi-index (z, then y, then x, mirroring the
// precedence buildPower uses). For α = γ+e_a with the two remaining axes o1,
// o2:
//
//	R² D[α] = -(2α_a-1)·d_a·D[α-e_a] - (α_a-1)²·D[α-2e_a]
//	          - 2·Σ_o α_o·d_o·D[α-e_o] - Σ_o α_o(α_o-1)·D[α-2e_o]
//
// where terms referencing a negative multi-index component are omitted.
// Slots are filled in ascending order (lower total degree first, since
// monoIndex is degree-graded), then every slot is scaled by α! (phase B).
func buildDerivative(ord *Order, d Point, c []float64) {
	r2 := d.X*d.X + d.Y*d.Y + d.Z*d.Z
	invR2 := 1 / r2
	invR := math.Sqrt(invR2)

	c[0] = invR

	disp := [3]float64{d.X, d.Y, d.Z}
	for slot := 1; slot < len(c); slot++ {
		a := ord.alpha[slot]
		n := [3]int{a.nx, a.ny, a.nz}

		axis := 2
		switch {
		case n[2] != 0:
			axis = 2
		case n[1] != 0:
			axis = 1
		default:
			axis = 0
		}

		sum := -float64(2*n[axis]-1) * disp[axis] * c[shiftSlot(n, axis, 1)]
		if n[axis] >= 2 {
			k := float64(n[axis] - 1)
			sum -= k * k * c[shiftSlot(n, axis, 2)]
		}
		for b := 0; b < 3; b++ {
			if b == axis || n[b] == 0 {
				continue
			}
			sum -= 2 * float64(n[b]) * disp[b] * c[shiftSlot(n, b, 1)]
			if n[b] >= 2 {
				sum -= float64(n[b]*(n[b]-1)) * c[shiftSlot(n, b, 2)]
			}
		}
		c[slot] = invR2 * sum
	}

	for slot, w := range ord.weight {
		c[slot] *= w
	}
}

// shiftSlot returns the slot of the multi-index n with axis decremented by
// by. The caller must ensure n[axis] >= by.
func shiftSlot(n [3]int, axis, by int) int {
	n[axis] -= by
	return monoIndex(n[0], n[1], n[2])
}
