// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boxtree is a minimal, non-adaptive octree that drives the
// lapfmm shift operators top-down and bottom-up. It exists to exercise
// P2M/M2M/M2L/M2P/L2L/L2P/Eval the way a real FMM dispatcher would, for
// integration tests and benchmarks. It implements a fixed
// separation-ratio multipole acceptance criterion and nothing more: no
// adaptive refinement, no error control, no periodicity. It is
// test/demo scaffolding, not a production dispatcher.
package boxtree

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/go-fmm/lapfmm"
)

// Source is a charge at a fixed location.
type Source struct {
	Point  lapfmm.Point
	Charge lapfmm.Charge
}

// Target is an evaluation point. Result accumulates across every
// Downward call that touches the box owning it.
type Target struct {
	Point  lapfmm.Point
	Result lapfmm.Result
}

// Box is one node of the octree: a cube of half-width HalfWidth
// centered at Center, holding either eight Children or leaf Sources
// and Targets directly.
type Box struct {
	Center    lapfmm.Point
	HalfWidth float64

	Children [8]*Box
	Sources  []*Source
	Targets  []*Target

	Multipole lapfmm.Multipole
	Local     lapfmm.Local

	mu sync.Mutex
}

func (b *Box) leaf() bool { return b.Children[0] == nil }

// octant returns which of the box's eight children p falls in, coded
// as a 3-bit mask: bit 0 set when p.X >= center.X, bit 1 for Y, bit 2
// for Z.
func octant(center, p lapfmm.Point) int {
	var o int
	if p.X >= center.X {
		o |= 1
	}
	if p.Y >= center.Y {
		o |= 2
	}
	if p.Z >= center.Z {
		o |= 4
	}
	return o
}

func childCenter(center lapfmm.Point, halfWidth float64, octant int) lapfmm.Point {
	q := halfWidth / 2
	c := center
	if octant&1 != 0 {
		c.X += q
	} else {
		c.X -= q
	}
	if octant&2 != 0 {
		c.Y += q
	} else {
		c.Y -= q
	}
	if octant&4 != 0 {
		c.Z += q
	} else {
		c.Z -= q
	}
	return c
}

func (b *Box) split() {
	for o := range b.Children {
		b.Children[o] = &Box{
			Center:    childCenter(b.Center, b.HalfWidth, o),
			HalfWidth: b.HalfWidth / 2,
		}
	}
	sources, targets := b.Sources, b.Targets
	b.Sources, b.Targets = nil, nil
	for _, s := range sources {
		c := b.Children[octant(b.Center, s.Point)]
		c.Sources = append(c.Sources, s)
	}
	for _, tg := range targets {
		c := b.Children[octant(b.Center, tg.Point)]
		c.Targets = append(c.Targets, tg)
	}
}

// Tree is an octree of Boxes, parametrised by the lapfmm.Kernel that
// builds and evaluates its expansions.
type Tree struct {
	Kernel *lapfmm.Kernel
	Root   *Box

	// Theta is the multipole acceptance ratio: two boxes of half-widths
	// ha, hb and center separation d are treated as well separated when
	// (ha+hb)/d < Theta. Smaller Theta means more direct P2P work and a
	// more accurate approximation; Theta<=0 disables the tree entirely
	// and forces Eval for every pair.
	Theta float64

	// LeafCapacity bounds the number of sources and targets, counted
	// together, a leaf box holds before it is split into eight children,
	// subject to MaxDepth.
	LeafCapacity int

	// MaxDepth bounds how many times a box may be split regardless of
	// LeafCapacity, so a degenerate cluster of coincident points cannot
	// recurse forever.
	MaxDepth int

	// Concurrent gates parallel traversal of sibling subtrees during
	// Upward and Downward, the way gonum.org/v1/gonum/diff/fd.Settings
	// gates its own concurrency and the way
	// gonum.org/v1/gonum/spatial/barneshut's Reset records a TODO to
	// parallelize across root quadrants: this is that parallelization,
	// done, for the octree case.
	Concurrent bool
}

// NewTree returns an empty Tree rooted at a cube of the given center
// and half-width. Insert populates it with sources and targets.
func NewTree(k *lapfmm.Kernel, center lapfmm.Point, halfWidth float64) *Tree {
	return &Tree{
		Kernel:       k,
		Root:         &Box{Center: center, HalfWidth: halfWidth},
		Theta:        0.5,
		LeafCapacity: 8,
		MaxDepth:     12,
	}
}

// Insert adds sources and targets to the tree, splitting boxes as
// LeafCapacity and MaxDepth require. Insert panics if a point lies
// outside the root box, since that indicates the caller picked too
// small a root.
func (t *Tree) Insert(sources []Source, targets []Target) {
	for i := range sources {
		t.insertSource(t.Root, &sources[i], 0)
	}
	for i := range targets {
		t.insertTarget(t.Root, &targets[i], 0)
	}
}

func (t *Tree) checkBounds(p lapfmm.Point) {
	h := t.Root.HalfWidth
	c := t.Root.Center
	if p.X < c.X-h || p.X > c.X+h || p.Y < c.Y-h || p.Y > c.Y+h || p.Z < c.Z-h || p.Z > c.Z+h {
		panic(fmt.Sprintf("boxtree: point %v outside root box %v ± %v", p, c, h))
	}
}

func (t *Tree) insertSource(b *Box, s *Source, depth int) {
	if depth == 0 {
		t.checkBounds(s.Point)
	}
	if !b.leaf() {
		t.insertSource(b.Children[octant(b.Center, s.Point)], s, depth+1)
		return
	}
	b.Sources = append(b.Sources, s)
	if len(b.Sources)+len(b.Targets) > t.LeafCapacity && depth < t.MaxDepth {
		b.split()
	}
}

func (t *Tree) insertTarget(b *Box, tg *Target, depth int) {
	if depth == 0 {
		t.checkBounds(tg.Point)
	}
	if !b.leaf() {
		t.insertTarget(b.Children[octant(b.Center, tg.Point)], tg, depth+1)
		return
	}
	b.Targets = append(b.Targets, tg)
	if len(b.Sources)+len(b.Targets) > t.LeafCapacity && depth < t.MaxDepth {
		b.split()
	}
}

// Upward builds every box's multipole: P2M at the leaves, M2M from
// each child into its parent, post-order.
func (t *Tree) Upward(ctx context.Context) error {
	return t.upward(ctx, t.Root)
}

func (t *Tree) upward(ctx context.Context, b *Box) error {
	b.Multipole = t.Kernel.NewMultipole()
	b.Local = t.Kernel.NewLocal()
	if b.leaf() {
		for _, s := range b.Sources {
			t.Kernel.P2M(s.Point, s.Charge, b.Center, b.Multipole)
		}
		return nil
	}

	if t.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range b.Children {
			c := c
			g.Go(func() error { return t.upward(gctx, c) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, c := range b.Children {
			if err := t.upward(ctx, c); err != nil {
				return err
			}
		}
	}

	for _, c := range b.Children {
		t.Kernel.M2M(c.Multipole, b.Multipole, r3.Sub(b.Center, c.Center))
	}
	return nil
}

// Downward evaluates every target: it walks the dual-tree interaction
// list between Root and itself, translating well-separated boxes with
// M2L and falling back to direct Eval (P2P) between near leaf pairs,
// then pushes every box's local expansion down to its children with
// L2L and evaluates leaf targets with L2P. Upward must be called first.
func (t *Tree) Downward(ctx context.Context) error {
	t.Root.Local = t.Kernel.NewLocal()
	if err := t.interact(ctx, t.Root, t.Root); err != nil {
		return err
	}
	return t.downward(ctx, t.Root)
}

func wellSeparated(a, b *Box, theta float64) bool {
	if theta <= 0 {
		return false
	}
	d := r3.Norm(r3.Sub(a.Center, b.Center))
	if d == 0 {
		return false
	}
	return (a.HalfWidth+b.HalfWidth)/d < theta
}

// interact populates a.Local and b.Local with the far-field
// contribution each receives from the other (or from itself, when
// a==b), and evaluates direct P2P between any pair of leaves that
// isn't well separated.
func (t *Tree) interact(ctx context.Context, a, b *Box) error {
	if a.leaf() && b.leaf() {
		t.directPair(a, b)
		return nil
	}
	if a != b && wellSeparated(a, b, t.Theta) {
		t.translate(a, b)
		return nil
	}

	var pairs [][2]*Box
	switch {
	case a == b:
		for i, ci := range a.Children {
			for j := i; j < len(a.Children); j++ {
				pairs = append(pairs, [2]*Box{ci, a.Children[j]})
			}
		}
	case a.leaf():
		for _, cb := range b.Children {
			pairs = append(pairs, [2]*Box{a, cb})
		}
	case b.leaf():
		for _, ca := range a.Children {
			pairs = append(pairs, [2]*Box{ca, b})
		}
	case a.HalfWidth >= b.HalfWidth:
		for _, ca := range a.Children {
			pairs = append(pairs, [2]*Box{ca, b})
		}
	default:
		for _, cb := range b.Children {
			pairs = append(pairs, [2]*Box{a, cb})
		}
	}

	if t.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, pr := range pairs {
			pr := pr
			g.Go(func() error { return t.interact(gctx, pr[0], pr[1]) })
		}
		return g.Wait()
	}
	for _, pr := range pairs {
		if err := t.interact(ctx, pr[0], pr[1]); err != nil {
			return err
		}
	}
	return nil
}

// translate accumulates the M2L contribution of a's multipole into
// b's local and, when a and b differ, b's multipole into a's local.
// Box.mu serializes concurrent writers sharing a destination box.
func (t *Tree) translate(a, b *Box) {
	b.mu.Lock()
	t.Kernel.M2L(a.Multipole, b.Local, r3.Sub(b.Center, a.Center))
	b.mu.Unlock()

	a.mu.Lock()
	t.Kernel.M2L(b.Multipole, a.Local, r3.Sub(a.Center, b.Center))
	a.mu.Unlock()
}

// directPair adds the exact P2P contribution of a's sources to b's
// targets and, when a and b differ, b's sources to a's targets.
func (t *Tree) directPair(a, b *Box) {
	b.mu.Lock()
	for _, tg := range b.Targets {
		for _, s := range a.Sources {
			tg.Result.Add(lapfmm.Eval(tg.Point, s.Point).Scale(s.Charge))
		}
	}
	b.mu.Unlock()

	if a == b {
		return
	}
	a.mu.Lock()
	for _, tg := range a.Targets {
		for _, s := range b.Sources {
			tg.Result.Add(lapfmm.Eval(tg.Point, s.Point).Scale(s.Charge))
		}
	}
	a.mu.Unlock()
}

func (t *Tree) downward(ctx context.Context, b *Box) error {
	if b.leaf() {
		for _, tg := range b.Targets {
			t.Kernel.L2P(b.Local, b.Center, tg.Point, &tg.Result)
		}
		return nil
	}

	for _, c := range b.Children {
		t.Kernel.L2L(b.Local, c.Local, r3.Sub(c.Center, b.Center))
	}

	if t.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range b.Children {
			c := c
			g.Go(func() error { return t.downward(gctx, c) })
		}
		return g.Wait()
	}
	for _, c := range b.Children {
		if err := t.downward(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
