// Copyright ©2024 The lapfmm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fmmgen program regenerates internal/triples/*_gen.go: the flat
// (target, left, right) index tables Design Note §9 of the design
// document describes, precomputed ahead of time so the shift operators
// can replace a nested multi-index walk with a single pass over a
// slice. Currently only M2M, the simplest of the shift convolutions
// (target[α] += Σ_{β≤α} C[α-β]·source[β]), has a generator; M2L and
// L2L's triangular sum ranges are left to the runtime double loop (see
// operators.go) until a generator is written for them.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/go-fmm/lapfmm"
)

var tmpl = template.Must(template.New("gen").Parse(`// Code generated by cmd/fmmgen -order={{.P}} -op=M2M. DO NOT EDIT.

package triples

func init() {
	Register(&Table{
		Op: "M2M",
		P:  {{.P}},
		Entries: []Triple{
{{- range .Entries}}
			{Target: {{.Target}}, Left: {{.Left}}, Right: {{.Right}}},
{{- end}}
		},
	})
}
`))

type entry struct{ Target, Left, Right int }

// m2mEntries enumerates the same (target, left, right) triples the
// generic M2M double loop in operators.go visits, in the same order, for
// expansion order p: for every target slot α with |α| < p, in ascending
// slot order, every source slot β ≤ α componentwise contributes via
// power-vector slot α-β.
func m2mEntries(p int) []entry {
	var entries []entry
	for n := 0; n < p; n++ {
		for m := 0; m <= n; m++ {
			for az := 0; az <= m; az++ {
				ax, ay := n-m, m-az
				target := lapfmm.MonoIndex(ax, ay, az)
				for bx := 0; bx <= ax; bx++ {
					for by := 0; by <= ay; by++ {
						for bz := 0; bz <= az; bz++ {
							entries = append(entries, entry{
								Target: target,
								Left:   lapfmm.MonoIndex(ax-bx, ay-by, az-bz),
								Right:  lapfmm.MonoIndex(bx, by, bz),
							})
						}
					}
				}
			}
		}
	}
	return entries
}

func main() {
	order := flag.Int("order", 0, "expansion order to generate a table for (required)")
	op := flag.String("op", "M2M", "operator to generate a table for")
	dir := flag.String("dir", "internal/triples", "output directory")
	flag.Parse()

	if *order < 1 {
		fmt.Fprintln(os.Stderr, "missing or invalid -order")
		flag.Usage()
		os.Exit(2)
	}
	if *op != "M2M" {
		log.Fatalf("fmmgen: no generator for operator %q", *op)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		P       int
		Entries []entry
	}{P: *order, Entries: m2mEntries(*order)}); err != nil {
		log.Fatalf("fmmgen: executing template: %v", err)
	}

	formatted, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		log.Fatalf("fmmgen: formatting generated source: %v", err)
	}

	name := filepath.Join(*dir, fmt.Sprintf("m2m_p%d_gen.go", *order))
	if err := os.WriteFile(name, formatted, 0o644); err != nil {
		log.Fatalf("fmmgen: writing %s: %v", name, err)
	}
	log.Printf("fmmgen: wrote %s (%d entries)", name, len(m2mEntries(*order)))
}
