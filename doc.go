// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lapfmm implements the cartesian-Taylor multipole/local expansion
// core of a fast multipole method (FMM) for the 3D Laplace kernel
// K(t,s) = 1/|s-t| and its associated force field (s-t)/|s-t|^3.
//
// The package provides the six translation and evaluation operators used by
// a hierarchical N-body solver — P2M, M2M, M2L, M2P, L2L, L2P — plus direct
// P2P evaluation, all parametrised by a fixed expansion order P through the
// Kernel type. It does not implement the octree/dual-tree traversal that
// decides which pairs of boxes are treated with M2L versus direct P2P; that
// decision, and the storage for per-box expansions, belongs to a caller (see
// package boxtree for a minimal example).
package lapfmm // import "github.com/go-fmm/lapfmm"
