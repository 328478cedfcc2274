// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ped_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ChandrashekarCR/TreeMix-Workflow/ped"
)

// two French and two Han individuals with 4 SNPs each
const pedFile = `F1 F1 0 0 1 -9 A A A G C C T T
F2 F2 0 0 2 -9 A G A A C T T T
H1 H1 0 0 1 -9 G G G G T T C C
H2 H2 0 0 2 -9 G A G G T C C C
`

func TestRead(t *testing.T) {
	inds, err := ped.Read(strings.NewReader(pedFile))
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if len(inds) != 4 {
		t.Fatalf("individuals: got %d, want %d", len(inds), 4)
	}

	i := inds[0]
	if i.IID != "F1" || i.Sex != "1" || i.Phenotype != "-9" {
		t.Errorf("metadata: got %+v", i)
	}
	if i.SNPs() != 4 {
		t.Errorf("SNPs: got %d, want %d", i.SNPs(), 4)
	}
	if !reflect.DeepEqual(i.Alleles[:2], []string{"A", "A"}) {
		t.Errorf("alleles: got %v", i.Alleles[:2])
	}
}

func TestReadError(t *testing.T) {
	bad := []string{
		"",
		"F1 F1 0 0 1\n",
		"F1 F1 0 0 1 -9 A A A\n",
		"F1 F1 0 0 1 -9 A A\nF2 F2 0 0 1 -9 A A G G\n",
	}
	for _, s := range bad {
		if _, err := ped.Read(strings.NewReader(s)); err == nil {
			t.Errorf("content %q: expecting error", s)
		}
	}
}

func TestWrite(t *testing.T) {
	inds, err := ped.Read(strings.NewReader(pedFile))
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}

	var sb strings.Builder
	if err := ped.Write(&sb, inds); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	if sb.String() != pedFile {
		t.Errorf("got %q, want %q", sb.String(), pedFile)
	}
}

func TestSplitHybrids(t *testing.T) {
	inds, err := ped.Read(strings.NewReader(pedFile))
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}

	hybrids, err := ped.SplitHybrids(inds, "French-Han", []string{"French", "Han"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hybrids) != 2 {
		t.Fatalf("hybrids: got %d, want %d", len(hybrids), 2)
	}

	h := hybrids[0]
	if h.IID != "French-Han_0" {
		t.Errorf("hybrid ID: got %q, want %q", h.IID, "French-Han_0")
	}
	if h.SNPs() != 4 {
		t.Errorf("hybrid SNPs: got %d, want %d", h.SNPs(), 4)
	}

	// first two SNPs from F1, last two from H1
	want := []string{"A", "A", "A", "G", "T", "T", "C", "C"}
	if !reflect.DeepEqual(h.Alleles, want) {
		t.Errorf("hybrid alleles: got %v, want %v", h.Alleles, want)
	}

	if _, err := ped.SplitHybrids(inds, "x", []string{"a", "b", "c"}); err == nil {
		t.Errorf("uneven blocks: expecting error")
	}
}
