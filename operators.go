// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/go-fmm/lapfmm/internal/triples"
)

// selfInteractionR2 is the squared-distance guard below which Eval treats
// two points as coincident and returns a zero kernel value (spec §4.5, §7).
const selfInteractionR2 = 1e-8

// Eval returns the direct (P2P) kernel value at t due to a unit charge at
// s: (1/R, (s-t).X/R³, (s-t).Y/R³, (s-t).Z/R³) where R = |s-t|. Eval
// returns the zero Result when t and s coincide, to the tolerance of
// selfInteractionR2.
func Eval(t, s Point) Result {
	d := r3.Sub(s, t)
	r2 := r3.Dot(d, d)
	if r2 < selfInteractionR2 {
		return Result{}
	}
	invR2 := 1 / r2
	invR := math.Sqrt(invR2)
	invR3 := invR * invR2
	return Result{invR, d.X * invR3, d.Y * invR3, d.Z * invR3}
}

// P2M accumulates the contribution of a source of the given charge at
// source into the multipole M about center:
//
//	M[α] += charge · (center-source)^α / α!   for every α with |α| < P.
func (k *Kernel) P2M(source Point, charge Charge, center Point, m Multipole) {
	k.checkMultipole("P2M", m)
	d := r3.Sub(center, source)
	c := make([]float64, k.ord.mterm)
	buildPower(d, k.p-1, c, charge)
	m.Add(c)
}

// M2M shifts the multipole source, about center center_source, into the
// multipole target, about center_source+translation:
//
//	target[α] += Σ_{β≤α} C[α-β]·source[β]    for every α with |α| < P,
//
// where C[γ] = translation^γ/γ! and β ranges over multi-indices
// componentwise no greater than α.
func (k *Kernel) M2M(source, target Multipole, translation Point) {
	k.checkMultipole("M2M source", source)
	k.checkMultipole("M2M target", target)
	c := make([]float64, k.ord.mterm)
	buildPower(translation, k.p-1, c, 1)

	if tbl, ok := triples.Lookup("M2M", k.p); ok {
		for _, e := range tbl.Entries {
			target[e.Target] += c[e.Left] * source[e.Right]
		}
		return
	}

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

// M2L translates the multipole m, about a source center, into a
// contribution on the local local, about source_center+translation:
//
//	local[α] += Σ_{β: |α+β|≤P} m[β]·D[α+β]    for every α with |α| ≤ P,
//
// where D[γ] = ∂^γ(1/R) evaluated at translation, the unweighted
// partial derivative: the exact Taylor expansion of a point charge's
// potential carries no extra factorial beyond the one already folded
// into M[β] by P2M, so the γ!·∂^γ(1/R) buildDerivative produces must be
// unscaled back by γ! before it's used here.
func (k *Kernel) M2L(m Multipole, local Local, translation Point) {
	k.checkMultipole("M2L", m)
	k.checkLocal("M2L", local)
	c := make([]float64, k.ord.lterm)
	buildDerivative(k.ord, translation, c)

	p := k.p
	for slotA, a := range k.ord.alpha {
		var sum float64
		for slotB, b := range k.ord.alpha[:k.ord.mterm] {
			cx, cy, cz := a.nx+b.nx, a.ny+b.ny, a.nz+b.nz
			if cx+cy+cz > p {
				continue
			}
			idx := monoIndex(cx, cy, cz)
			sum += m[slotB] * c[idx] / k.ord.weight[idx]
		}
		local[slotA] += sum
	}
}

// M2P evaluates the multipole m, about center, directly at target,
// accumulating the potential and force field into result:
//
//	result[0]   += Σ_β m[β]·D[β]
//	result[1+k] += Σ_β m[β]·D[β+e_k]     for k = x,y,z,
//
// where D[γ] = ∂^γ(1/R) evaluated at target-center, the same unweighted
// partial derivative M2L uses (see its doc comment).
func (k *Kernel) M2P(m Multipole, center, target Point, result *Result) {
	k.checkMultipole("M2P", m)
	d := r3.Sub(target, center)
	c := make([]float64, k.ord.lterm)
	buildDerivative(k.ord, d, c)

	var pot, fx, fy, fz float64
	for slotB, b := range k.ord.alpha[:k.ord.mterm] {
		mb := m[slotB]
		if mb == 0 {
			continue
		}
		pot += mb * c[slotB] / k.ord.weight[slotB]
		ix, iy, iz := monoIndex(b.nx+1, b.ny, b.nz), monoIndex(b.nx, b.ny+1, b.nz), monoIndex(b.nx, b.ny, b.nz+1)
		fx += mb * c[ix] / k.ord.weight[ix]
		fy += mb * c[iy] / k.ord.weight[iy]
		fz += mb * c[iz] / k.ord.weight[iz]
	}
	result.Add(Result{pot, fx, fy, fz})
}

// L2L shifts the local source, about a center, into the local target,
// about center+translation:
//
//	target[α] += source[α] + Σ_{β≥α, β≠α, |β|≤P} C[β-α]·source[β]
//
// for every α with |α| ≤ P, where C[γ] = translation^γ/γ!.
func (k *Kernel) L2L(source, target Local, translation Point) {
	k.checkLocal("L2L source", source)
	k.checkLocal("L2L target", target)
	c := make([]float64, k.ord.lterm)
	buildPower(translation, k.p, c, 1)

	target.Add(source)

	p := k.p
	for slotA, a := range k.ord.alpha {
		var sum float64
		for bx := a.nx; bx <= p; bx++ {
			for by := a.ny; by <= p-bx; by++ {
				for bz := a.nz; bz <= p-bx-by; bz++ {
					if bx == a.nx && by == a.ny && bz == a.nz {
						continue
					}
					slotB := monoIndex(bx, by, bz)
					slotC := monoIndex(bx-a.nx, by-a.ny, bz-a.nz)
					sum += c[slotC] * source[slotB]
				}
			}
		}
		target[slotA] += sum
	}
}

// L2P evaluates the local l, about center, at target, accumulating the
// potential and force field into result:
//
//	result[0]   += l[0] + Σ_{i>0} C[i]·l[i]
//	result[1+k] += Σ_{α: α_k≥1} C[α-e_k]·l[α]   for k = x,y,z,
//
// where C[γ] = (target-center)^γ/γ!.
func (k *Kernel) L2P(l Local, center, target Point, result *Result) {
	k.checkLocal("L2P", l)
	d := r3.Sub(target, center)
	c := make([]float64, k.ord.lterm)
	buildPower(d, k.p, c, 1)

	pot := l[0]
	var fx, fy, fz float64
	for slot, a := range k.ord.alpha {
		if slot == 0 {
			continue
		}
		li := l[slot]
		pot += c[slot] * li
		if li == 0 {
			continue
		}
		if a.nx >= 1 {
			fx += c[monoIndex(a.nx-1, a.ny, a.nz)] * li
		}
		if a.ny >= 1 {
			fy += c[monoIndex(a.nx, a.ny-1, a.nz)] * li
		}
		if a.nz >= 1 {
			fz += c[monoIndex(a.nx, a.ny, a.nz-1)] * li
		}
	}
	result.Add(Result{pot, fx, fy, fz})
}
