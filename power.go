// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

// buildPower populates c, a coefficient vector of length LTerm(degree) or
// MTerm(degree+1) (any vector long enough to hold all slots of total degree
// up to degree), with
//
//	c[I(α)] = base · d^α / α!     for every α with |α| ≤ degree,
//
// per spec §4.3. c[0] is set to base (1 for the ordinary power tableau, or a
// P2M source charge when base is a charge). Slots are populated in
// ascending order, which — because monoIndex is degree-graded — visits
// lower-degree multi-indices before the ones that depend on them.
func buildPower(d Point, degree int, c []float64, base float64) {
	c[0] = base
	for deg := 1; deg <= degree; deg++ {
		for nx := 0; nx <= deg; nx++ {
			for ny := 0; ny <= deg-nx; ny++ {
				nz := deg - nx - ny
				slot := monoIndex(nx, ny, nz)
				switch {
				case nz >= 1:
					c[slot] = c[monoIndex(nx, ny, nz-1)] * d.Z / float64(nz)
				case ny >= 1:
					c[slot] = c[monoIndex(nx, ny-1, 0)] * d.Y / float64(ny)
				default:
					c[slot] = c[monoIndex(nx-1, 0, 0)] * d.X / float64(nx)
				}
			}
		}
	}
}
