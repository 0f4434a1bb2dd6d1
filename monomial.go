// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import "sync"

// MTerm returns the number of monomials of total degree strictly less than
// p, the length of a multipole vector of order p.
func MTerm(p int) int {
	return p * (p + 1) * (p + 2) / 6
}

// LTerm returns the number of monomials of total degree at most p, the
// length of a local vector of order p.
func LTerm(p int) int {
	return (p + 1) * (p + 2) * (p + 3) / 6
}

// monoIndex implements the degree-graded colexicographic bijection between
// a multi-index (nx,ny,nz) and its linear slot, as described by spec §3:
//
//	I(nx,ny,nz) = n(n+1)(n+2)/6 + m(m+1)/2 + nz,  n = nx+ny+nz, m = ny+nz.
//
// Slots for total degree d occupy the contiguous range
// [d(d+1)(d+2)/6, (d+1)(d+2)(d+3)/6), so iterating slots in increasing order
// visits multi-indices in non-decreasing total degree.
func monoIndex(nx, ny, nz int) int {
	n := nx + ny + nz
	m := ny + nz
	return n*(n+1)*(n+2)/6 + m*(m+1)/2 + nz
}

// MonoIndex exports monoIndex for callers outside the package that need the
// same multi-index bijection without a Kernel, such as cmd/fmmgen when it
// regenerates internal/triples tables.
func MonoIndex(nx, ny, nz int) int { return monoIndex(nx, ny, nz) }

// multiIndex is a decoded (nx,ny,nz) triple.
type multiIndex struct {
	nx, ny, nz int
}

var factorials = [...]float64{
	1, 1, 2, 6, 24, 120, 720, 5040, 40320, 362880, 3628800,
	39916800, 479001600, 6227020800, 87178291200, 1307674368000,
	20922789888000, 355687428096000, 6402373705728000, 121645100408832000,
	2432902008176640000,
}

func factorial(n int) float64 {
	if n < len(factorials) {
		return factorials[n]
	}
	f := factorials[len(factorials)-1]
	for k := len(factorials); k <= n; k++ {
		f *= float64(k)
	}
	return f
}

// Order memoizes the per-slot decoding and factorial weights needed by the
// power and derivative builders for a fixed expansion order P, so that
// repeated operator calls don't re-derive the same (nx,ny,nz)/α! bookkeeping.
type Order struct {
	p      int
	mterm  int
	lterm  int
	alpha  []multiIndex // slot -> (nx,ny,nz), length lterm
	weight []float64    // slot -> nx!*ny!*nz!, length lterm
}

var orderCache sync.Map // map[int]*Order

// getOrder returns the cached Order for p, building it on first use.
func getOrder(p int) *Order {
	if v, ok := orderCache.Load(p); ok {
		return v.(*Order)
	}
	ord := buildOrder(p)
	actual, _ := orderCache.LoadOrStore(p, ord)
	return actual.(*Order)
}

func buildOrder(p int) *Order {
	lterm := LTerm(p)
	alpha := make([]multiIndex, lterm)
	weight := make([]float64, lterm)
	for nx := 0; nx <= p; nx++ {
		for ny := 0; ny <= p-nx; ny++ {
			for nz := 0; nz <= p-nx-ny; nz++ {
				slot := monoIndex(nx, ny, nz)
				alpha[slot] = multiIndex{nx, ny, nz}
				weight[slot] = factorial(nx) * factorial(ny) * factorial(nz)
			}
		}
	}
	return &Order{p: p, mterm: MTerm(p), lterm: lterm, alpha: alpha, weight: weight}
}
