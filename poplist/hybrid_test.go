// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package poplist_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"golang.org/x/exp/rand"
)

func TestStructures(t *testing.T) {
	sizes := map[int]int{
		2:  10,
		5:  4,
		51: 3,
	}
	for pops, want := range sizes {
		s, err := poplist.Structures(pops)
		if err != nil {
			t.Fatalf("structures %d: unexpected error: %v", pops, err)
		}
		if len(s) != want {
			t.Errorf("structures %d: got %d hybrids, want %d", pops, len(s), want)
		}
	}

	if _, err := poplist.Structures(3); err == nil {
		t.Errorf("structures 3: expecting error")
	}
}

func TestStructureJSON(t *testing.T) {
	s := poplist.Structure{
		"French-Han": {"French", "Han"},
		"Mbuti-Han":  {"Mbuti", "Han"},
	}

	var sb strings.Builder
	if err := s.JSON(&sb); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	ns, err := poplist.ReadStructure(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	if !reflect.DeepEqual(ns, s) {
		t.Errorf("got %v, want %v", ns, s)
	}

	want := []string{"French-Han", "Mbuti-Han"}
	if h := s.Hybrids(); !reflect.DeepEqual(h, want) {
		t.Errorf("hybrids: got %v, want %v", h, want)
	}

	if _, err := poplist.ReadStructure(strings.NewReader("not json")); err == nil {
		t.Errorf("invalid document: expecting error")
	}
}

func TestKeepLists(t *testing.T) {
	l := testList()
	s := poplist.Structure{
		"French-Yoruba": {"French", "Yoruba"},
		"Han-Karitiana": {"Han", "Karitiana"},
	}
	rng := rand.New(rand.NewSource(42))

	keep, updated, skipped := l.KeepLists(s, rng)

	// Karitiana is absent, so its hybrid is skipped
	if !reflect.DeepEqual(skipped, []string{"Han-Karitiana"}) {
		t.Errorf("skipped hybrids: got %v, want [Han-Karitiana]", skipped)
	}
	if len(keep) != 1 {
		t.Fatalf("keep lists: got %d, want 1", len(keep))
	}

	// Yoruba has 2 individuals, so both sources trim to 2
	kl := keep["French-Yoruba"]
	if len(kl) != 4 {
		t.Fatalf("keep list: got %d individuals, want 4", len(kl))
	}
	counts := make(map[string]int)
	for _, smp := range kl {
		counts[smp.Pop]++
	}
	if counts["French"] != 2 || counts["Yoruba"] != 2 {
		t.Errorf("keep list counts: got %v, want 2 per source", counts)
	}

	if len(updated) != len(l)+2 {
		t.Fatalf("updated list: got %d individuals, want %d", len(updated), len(l)+2)
	}
	want := poplist.Sample{
		FID: "French-Yoruba_0",
		IID: "French-Yoruba_0",
		Pop: "French-Yoruba",
	}
	if got := updated[len(l)]; got != want {
		t.Errorf("hybrid individual: got %v, want %v", got, want)
	}
}
