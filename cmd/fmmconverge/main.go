// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fmmconverge program renders a convergence plot of the Laplace FMM
// round-trip potential error (P2M -> M2L -> L2P against direct Eval) as
// a function of expansion order, for a fixed random placement of
// sources and a far target. It is a visual companion to the round-trip
// testable property, not a substitute for the numeric tests.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/go-fmm/lapfmm"
)

func main() {
	pMin := flag.Int("p-min", 1, "lowest expansion order to plot")
	pMax := flag.Int("p-max", 12, "highest expansion order to plot")
	seed := flag.Uint64("seed", 1, "random seed for source placement")
	nSources := flag.Int("sources", 12, "number of sources placed in the source box")
	out := flag.String("out", "", "output plot file (required, formats eps, jpg, jpeg, pdf, png, svg, tex or tif)")
	flag.Parse()

	if *pMin < 1 || *pMax < *pMin {
		fmt.Fprintln(os.Stderr, "invalid -p-min/-p-max range")
		flag.Usage()
		os.Exit(2)
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "missing output filename")
		flag.Usage()
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(*seed))

	type source struct {
		pos    lapfmm.Point
		charge float64
	}
	centerA := lapfmm.Point{}
	centerB := lapfmm.Point{X: 8, Y: 6, Z: 4}
	target := r3.Add(centerB, lapfmm.Point{X: 0.3, Y: -0.2, Z: 0.1})

	sources := make([]source, *nSources)
	for i := range sources {
		sources[i] = source{
			pos: lapfmm.Point{
				X: rng.Float64()*0.4 - 0.2,
				Y: rng.Float64()*0.4 - 0.2,
				Z: rng.Float64()*0.4 - 0.2,
			},
			charge: rng.Float64()*2 - 1,
		}
	}

	var want float64
	for _, s := range sources {
		want += lapfmm.Eval(target, s.pos).Potential() * s.charge
	}

	pts := make(plotter.XYs, 0, *pMax-*pMin+1)
	for p := *pMin; p <= *pMax; p++ {
		k := lapfmm.New(p)
		m := k.NewMultipole()
		for _, s := range sources {
			k.P2M(s.pos, s.charge, centerA, m)
		}
		l := k.NewLocal()
		k.M2L(m, l, r3.Sub(centerB, centerA))
		var result lapfmm.Result
		k.L2P(l, centerB, target, &result)

		err := math.Abs(result.Potential() - want)
		if err == 0 {
			err = 1e-17 // keep the log-scale axis finite at machine precision
		}
		pts = append(pts, plotter.XY{X: float64(p), Y: math.Log10(err)})
	}

	p := plot.New()
	p.Title.Text = "Laplace FMM round-trip convergence"
	p.X.Label.Text = "expansion order P"
	p.Y.Label.Text = "log10 |potential error|"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		log.Fatalf("convergence line: %v", err)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		log.Fatalf("convergence points: %v", err)
	}
	p.Add(line, scatter)
	p.Legend.Add("round-trip error", line)
	p.Legend.Top = true

	if err := p.Save(16*vg.Centimeter, 10*vg.Centimeter, *out); err != nil {
		log.Fatal(err)
	}
}
