// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lapfmm

import "fmt"

// Kernel is the Laplace FMM facade: a value parametrised by a fixed
// expansion order P that exposes the six translation/evaluation operators
// (P2M, M2M, M2L, M2P, L2L, L2P) plus direct evaluation (Eval). Kernel
// methods are pure accumulators over caller-owned vectors; Kernel itself
// allocates no expansion storage and holds no per-call state beyond its
// precomputed monomial table.
//
// The zero value of Kernel is not usable; construct one with New.
type Kernel struct {
	p   int
	ord *Order
}

// New returns a Kernel for expansion order p. p must be a positive integer;
// New panics otherwise, since an invalid order is a programming error (spec
// §7).
func New(p int) *Kernel {
	if p < 1 {
		panic(fmt.Sprintf("lapfmm: invalid expansion order %d", p))
	}
	return &Kernel{p: p, ord: getOrder(p)}
}

// Order returns the expansion order P this Kernel was constructed with.
func (k *Kernel) Order() int { return k.p }

// MTerm returns the length of multipole vectors for this Kernel's order.
func (k *Kernel) MTerm() int { return k.ord.mterm }

// LTerm returns the length of local vectors for this Kernel's order.
func (k *Kernel) LTerm() int { return k.ord.lterm }

// NewMultipole returns a zeroed multipole vector sized for this Kernel.
func (k *Kernel) NewMultipole() Multipole { return NewMultipole(k.p) }

// NewLocal returns a zeroed local vector sized for this Kernel.
func (k *Kernel) NewLocal() Local { return NewLocal(k.p) }

func (k *Kernel) checkMultipole(name string, m Multipole) {
	if len(m) != k.ord.mterm {
		panic(fmt.Sprintf("lapfmm: %s: multipole has length %d, want %d", name, len(m), k.ord.mterm))
	}
}

func (k *Kernel) checkLocal(name string, l Local) {
	if len(l) != k.ord.lterm {
		panic(fmt.Sprintf("lapfmm: %s: local has length %d, want %d", name, len(l), k.ord.lterm))
	}
}
