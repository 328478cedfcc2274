// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treeout_test

import (
	"math"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
	"github.com/klauspost/compress/gzip"
)

const tree = "((A:1,B:2):0.5,(C:3,D:4):0.5);"

const composite = tree + `
0.25 NA NA NA (A:0.1,B:0.2):0.05 (C:0.3,D:0.1):0.02
0.1 NA NA NA B:0.2 D:0.1
`

func TestReadTree(t *testing.T) {
	reg := poptree.NewRegistry()
	f, err := treeout.Read(strings.NewReader(tree+"\n"), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A", "B", "C", "D"}
	if terms := f.Tree.Terms(); !reflect.DeepEqual(terms, want) {
		t.Errorf("terms: got %v, want %v", terms, want)
	}
	if len(f.Edges) != 0 {
		t.Errorf("edges: got %d, want none", len(f.Edges))
	}
	if f.Skipped != 0 {
		t.Errorf("skipped lines: got %d, want 0", f.Skipped)
	}
}

func TestReadComposite(t *testing.T) {
	reg := poptree.NewRegistry()
	f, err := treeout.Read(strings.NewReader(composite), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A", "B", "C", "D"}
	if terms := f.Tree.Terms(); !reflect.DeepEqual(terms, want) {
		t.Errorf("terms: got %v, want %v", terms, want)
	}
	if len(f.Edges) != 2 {
		t.Fatalf("edges: got %d, want %d", len(f.Edges), 2)
	}

	e := f.Edges[0]
	if math.Abs(e.Weight-0.25) > 1e-9 {
		t.Errorf("edge weight: got %.6f, want %.6f", e.Weight, 0.25)
	}
	if !reflect.DeepEqual(e.Source, []string{"A", "B"}) {
		t.Errorf("edge source: got %v, want [A B]", e.Source)
	}
	if !reflect.DeepEqual(e.Target, []string{"C", "D"}) {
		t.Errorf("edge target: got %v, want [C D]", e.Target)
	}

	e = f.Edges[1]
	if !reflect.DeepEqual(e.Source, []string{"B"}) {
		t.Errorf("edge source: got %v, want [B]", e.Source)
	}
}

func TestReadBadTree(t *testing.T) {
	bad := []string{
		"((A,B),(C,D)",
		"((A,B),(C,D)\n0.25 NA NA NA (A,B) (C,D)",
		"((A,B),(C,D); 0.25 NA NA NA (A,B) (C,D)",
	}
	for _, s := range bad {
		if _, err := treeout.Read(strings.NewReader(s), poptree.NewRegistry()); err == nil {
			t.Errorf("content %q: expecting error", s)
		}
	}
}

func TestMigrations(t *testing.T) {
	block := `
0.25 x x x (A,B) (C,D)

0.5 x x (A,B) (C,D)
weight x x x (A,B) (C,D)
0.5 x x x ((A,B) (C,D)
0.125 x x x ((E:0.1,F:0.2):0.3,G:0.4):0.1 H:0.2
`
	edges, skipped := treeout.Migrations(block)
	if len(edges) != 2 {
		t.Fatalf("edges: got %d, want %d", len(edges), 2)
	}
	if skipped != 3 {
		t.Errorf("skipped lines: got %d, want %d", skipped, 3)
	}

	if !reflect.DeepEqual(edges[0].Source, []string{"A", "B"}) {
		t.Errorf("edge source: got %v, want [A B]", edges[0].Source)
	}
	if !reflect.DeepEqual(edges[1].Source, []string{"E", "F", "G"}) {
		t.Errorf("edge source: got %v, want [E F G]", edges[1].Source)
	}
	if !reflect.DeepEqual(edges[1].Target, []string{"H"}) {
		t.Errorf("edge target: got %v, want [H]", edges[1].Target)
	}
}

func TestMigrationsOrder(t *testing.T) {
	edges, skipped := treeout.Migrations("0.25 x x x (D,C) (B,A)")
	if skipped != 0 {
		t.Fatalf("skipped lines: got %d, want 0", skipped)
	}
	if !reflect.DeepEqual(edges[0].Source, []string{"D", "C"}) {
		t.Errorf("edge source: got %v, want [D C] (fragment order)", edges[0].Source)
	}
	if !reflect.DeepEqual(edges[0].Target, []string{"B", "A"}) {
		t.Errorf("edge target: got %v, want [B A] (fragment order)", edges[0].Target)
	}
}

func TestReadFile(t *testing.T) {
	name := "tmp-treeout-for-test.treeout.gz"
	defer os.Remove(name)

	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("unable to create test file: %v", err)
	}
	z := gzip.NewWriter(f)
	if _, err := z.Write([]byte(composite)); err != nil {
		t.Fatalf("unable to write test file: %v", err)
	}
	if err := z.Close(); err != nil {
		t.Fatalf("unable to close test file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unable to close test file: %v", err)
	}

	out, err := treeout.ReadFile(name, poptree.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terms := out.Tree.Terms(); !reflect.DeepEqual(terms, []string{"A", "B", "C", "D"}) {
		t.Errorf("terms: got %v", terms)
	}
	if len(out.Edges) != 2 {
		t.Errorf("edges: got %d, want %d", len(out.Edges), 2)
	}
}
