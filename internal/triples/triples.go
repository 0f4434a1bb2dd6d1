// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package triples holds precomputed sparse index tables for the lapfmm
// shift operators, realizing Design Note §9's suggestion of precomputing
// "the sparse lists of (target_slot, left_slot, right_slot, sign) triples
// per operator and per P into flat arrays" so an operator's inner loop can
// run as a single pass over a slice instead of a nested walk over
// multi-indices.
//
// Tables are registered by generated *_gen.go files (see cmd/fmmgen) via
// init(). Operators that have no table for a requested order fall back to
// the plain double-loop over multi-indices; correctness never depends on
// generation having been run.
package triples

import "sync"

// Triple is one term of a shift operator's convolution: the contribution of
// coefficient-vector slot Left and operand-vector slot Right to output slot
// Target.
type Triple struct {
	Target int
	Left   int
	Right  int
}

// Table is the flat triple list for one operator at one expansion order.
type Table struct {
	Op      string
	P       int
	Entries []Triple
}

var (
	mu       sync.RWMutex
	registry = map[string]map[int]*Table{}
)

// Register adds tbl to the registry under its Op and P. Register is called
// from the init() functions of generated *_gen.go files; it panics if a
// table for the same (Op, P) pair is already registered, since that
// indicates a generation bug, not a runtime condition.
func Register(tbl *Table) {
	mu.Lock()
	defer mu.Unlock()
	byP, ok := registry[tbl.Op]
	if !ok {
		byP = map[int]*Table{}
		registry[tbl.Op] = byP
	}
	if _, dup := byP[tbl.P]; dup {
		panic("triples: duplicate registration for " + tbl.Op)
	}
	byP[tbl.P] = tbl
}

// Lookup returns the registered table for op at order p, if any.
func Lookup(op string, p int) (*Table, bool) {
	mu.RLock()
	defer mu.RUnlock()
	tbl, ok := registry[op][p]
	return tbl, ok
}
