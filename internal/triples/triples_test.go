// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package triples

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupRegistered(t *testing.T) {
	for _, p := range []int{1, 2} {
		tbl, ok := Lookup("M2M", p)
		if !ok {
			t.Fatalf("M2M order %d: not registered", p)
		}
		if tbl.P != p || tbl.Op != "M2M" {
			t.Errorf("M2M order %d: table = %+v", p, tbl)
		}
		if len(tbl.Entries) == 0 {
			t.Errorf("M2M order %d: empty table", p)
		}
	}
}

// TestM2MP1Entries pins the P=1 table's exact contents with cmp.Diff,
// catching any accidental reordering or duplication a future
// regeneration might introduce that a length-only check would miss.
func TestM2MP1Entries(t *testing.T) {
	tbl, ok := Lookup("M2M", 1)
	if !ok {
		t.Fatal("M2M order 1: not registered")
	}
	want := []Triple{
		{Target: 0, Left: 0, Right: 0},
	}
	if diff := cmp.Diff(want, tbl.Entries); diff != "" {
		t.Errorf("M2M order 1 entries mismatch (-want +got):\n%s", diff)
	}
}

// TestM2MP2Entries does the same for P=2, where the table has enough
// entries that a manual element-by-element comparison would be noisy.
func TestM2MP2Entries(t *testing.T) {
	tbl, ok := Lookup("M2M", 2)
	if !ok {
		t.Fatal("M2M order 2: not registered")
	}
	want := []Triple{
		{Target: 0, Left: 0, Right: 0},
		{Target: 1, Left: 1, Right: 0},
		{Target: 1, Left: 0, Right: 1},
		{Target: 2, Left: 2, Right: 0},
		{Target: 2, Left: 0, Right: 2},
		{Target: 3, Left: 3, Right: 0},
		{Target: 3, Left: 0, Right: 3},
	}
	if diff := cmp.Diff(want, tbl.Entries); diff != "" {
		t.Errorf("M2M order 2 entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Lookup("M2M", 3); ok {
		t.Fatal("unexpected table for M2M order 3")
	}
	if _, ok := Lookup("M2L", 1); ok {
		t.Fatal("unexpected table for an operator with no generated tables")
	}
}
