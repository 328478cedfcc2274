// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treecmp_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treecmp"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
)

func compare(t testing.TB, s1, s2 string, prune bool, edges []treeout.MigrationEdge) *treecmp.Result {
	t.Helper()

	reg := poptree.NewRegistry()
	t1, err := poptree.Newick(strings.NewReader(s1), reg)
	if err != nil {
		t.Fatalf("newick %q: unexpected error: %v", s1, err)
	}
	t2, err := poptree.Newick(strings.NewReader(s2), reg)
	if err != nil {
		t.Fatalf("newick %q: unexpected error: %v", s2, err)
	}

	res, err := treecmp.New(t1, t2, edges).Compare(prune)
	if err != nil {
		t.Fatalf("compare: unexpected error: %v", err)
	}
	return res
}

func TestCompareIdentical(t *testing.T) {
	s := "((A:1,B:2):0.5,(C:3,D:4):0.5);"
	res := compare(t, s, s, false, nil)

	g := res.Global
	if g.JaccardIndex != 1 {
		t.Errorf("jaccard index: got %.6f, want 1", g.JaccardIndex)
	}
	if !g.SameTaxa {
		t.Errorf("same taxa: got false, want true")
	}
	if g.RFDistance != 0 {
		t.Errorf("rf distance: got %d, want 0", g.RFDistance)
	}
	if g.NormalizedRF != 0 {
		t.Errorf("normalized rf: got %.6f, want 0", g.NormalizedRF)
	}
	if g.BSD != 0 {
		t.Errorf("bsd: got %.6f, want 0", g.BSD)
	}
	if g.NormalizedBSD != 0 {
		t.Errorf("normalized bsd: got %.6f, want 0", g.NormalizedBSD)
	}
	want := treecmp.TaxaInfo{
		Tree1Count:  4,
		Tree2Count:  4,
		CommonCount: 4,
		UnionCount:  4,
	}
	if g.TaxaInfo != want {
		t.Errorf("taxa info: got %+v, want %+v", g.TaxaInfo, want)
	}

	if len(res.Siblings.DifferentPopulations) != 0 {
		t.Errorf("different populations: got %v, want none", res.Siblings.DifferentPopulations)
	}

	// identical distributions: zero deltas and zero scores
	for _, zs := range []treecmp.ZScore{res.RootDistances, res.PairwiseDists} {
		if zs.MeanDelta != 0 {
			t.Errorf("mean delta: got %.6f, want 0", zs.MeanDelta)
		}
		if zs.StdDelta != 0 {
			t.Errorf("std delta: got %.6f, want 0", zs.StdDelta)
		}
		for _, d := range zs.Differences {
			if d.Delta != 0 || d.Z != 0 {
				t.Errorf("key %s: got delta %.6f, z %.6f, want 0, 0", d.Key, d.Delta, d.Z)
			}
		}
	}
	if len(res.RootDistances.Differences) != 4 {
		t.Errorf("root distance entries: got %d, want 4", len(res.RootDistances.Differences))
	}
	if len(res.PairwiseDists.Differences) != 6 {
		t.Errorf("pairwise entries: got %d, want 6", len(res.PairwiseDists.Differences))
	}
}

func TestCompareTopology(t *testing.T) {
	// the two non-trivial bipartitions disagree fully
	res := compare(t, "((A:1,B:1):1,(C:1,D:1):1);", "((A:1,C:1):1,(B:1,D:1):1);", false, nil)

	g := res.Global
	if g.RFDistance != 4 {
		t.Errorf("rf distance: got %d, want 4", g.RFDistance)
	}
	if g.NormalizedRF != 1 {
		t.Errorf("normalized rf: got %.6f, want 1", g.NormalizedRF)
	}
	if g.NormalizedRF < 0 || g.NormalizedRF > 1 {
		t.Errorf("normalized rf out of range: %.6f", g.NormalizedRF)
	}
	if g.NormalizedBSD < 0 || g.NormalizedBSD > 1 {
		t.Errorf("normalized bsd out of range: %.6f", g.NormalizedBSD)
	}

	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(res.Siblings.DifferentPopulations, want) {
		t.Errorf("different populations: got %v, want %v", res.Siblings.DifferentPopulations, want)
	}

	sc, ok := res.Siblings.Comparisons["A"]
	if !ok {
		t.Fatalf("taxon A: comparison not recorded")
	}
	if sc.JaccardIndex != 0 {
		t.Errorf("taxon A: jaccard index: got %.6f, want 0", sc.JaccardIndex)
	}
	if !reflect.DeepEqual(sc.Siblings1, []string{"B"}) {
		t.Errorf("taxon A: siblings1: got %v, want [B]", sc.Siblings1)
	}
	if !reflect.DeepEqual(sc.Siblings2, []string{"C"}) {
		t.Errorf("taxon A: siblings2: got %v, want [C]", sc.Siblings2)
	}
	if !reflect.DeepEqual(sc.Differences.OnlyInTree1, []string{"B"}) {
		t.Errorf("taxon A: only in tree1: got %v, want [B]", sc.Differences.OnlyInTree1)
	}
	if !reflect.DeepEqual(sc.Differences.OnlyInTree2, []string{"C"}) {
		t.Errorf("taxon A: only in tree2: got %v, want [C]", sc.Differences.OnlyInTree2)
	}
}

func TestCompareBranchLengths(t *testing.T) {
	// same topology, the branch of A is one unit longer in tree1
	res := compare(t, "((A:2,B:2):0.5,(C:3,D:4):0.5);", "((A:1,B:2):0.5,(C:3,D:4):0.5);", false, nil)

	g := res.Global
	if g.RFDistance != 0 {
		t.Errorf("rf distance: got %d, want 0", g.RFDistance)
	}
	if math.Abs(g.BSD-1) > 1e-9 {
		t.Errorf("bsd: got %.6f, want 1", g.BSD)
	}
	if math.Abs(g.NormalizedBSD-1.0/6.0) > 1e-9 {
		t.Errorf("normalized bsd: got %.6f, want %.6f", g.NormalizedBSD, 1.0/6.0)
	}

	// topology is unchanged, so no sibling differences
	if len(res.Siblings.DifferentPopulations) != 0 {
		t.Errorf("different populations: got %v, want none", res.Siblings.DifferentPopulations)
	}

	// root distance deltas: A +1, the rest 0
	zs := res.RootDistances
	if math.Abs(zs.MeanDelta-0.25) > 1e-9 {
		t.Errorf("mean delta: got %.6f, want %.6f", zs.MeanDelta, 0.25)
	}
	wantStd := math.Sqrt(0.1875)
	if math.Abs(zs.StdDelta-wantStd) > 1e-9 {
		t.Errorf("std delta: got %.6f, want %.6f", zs.StdDelta, wantStd)
	}
	for _, d := range zs.Differences {
		wantZ := (0 - 0.25) / wantStd
		if d.Key == "A" {
			wantZ = (1 - 0.25) / wantStd
		}
		if math.Abs(d.Z-wantZ) > 1e-6 {
			t.Errorf("key %s: z score: got %.6f, want %.6f", d.Key, d.Z, wantZ)
		}
	}
}

func TestCompareSymmetry(t *testing.T) {
	s1 := "((A:1,B:2):0.5,(C:3,D:4):0.5);"
	s2 := "((A:2,C:1):0.25,(B:1,D:2):0.75);"

	r12 := compare(t, s1, s2, false, nil)
	r21 := compare(t, s2, s1, false, nil)

	if math.Abs(r12.Global.BSD-r21.Global.BSD) > 1e-9 {
		t.Errorf("bsd symmetry: got %.6f and %.6f", r12.Global.BSD, r21.Global.BSD)
	}
	if r12.Global.RFDistance != r21.Global.RFDistance {
		t.Errorf("rf symmetry: got %d and %d", r12.Global.RFDistance, r21.Global.RFDistance)
	}
}

func TestComparePruned(t *testing.T) {
	// E is only in tree1, F only in tree2
	s1 := "((A:1,B:1):1,(C:1,(D:1,E:1):1):1);"
	s2 := "((A:1,B:1):1,((C:1,F:1):1,D:1):1);"
	res := compare(t, s1, s2, true, nil)

	if res.GlobalPruned == nil {
		t.Fatalf("pruned distances: not computed")
	}

	g := res.Global
	if g.SameTaxa {
		t.Errorf("same taxa: got true, want false")
	}
	if math.Abs(g.JaccardIndex-4.0/6.0) > 1e-9 {
		t.Errorf("jaccard index: got %.6f, want %.6f", g.JaccardIndex, 4.0/6.0)
	}

	p := *res.GlobalPruned
	if !p.SameTaxa {
		t.Errorf("pruned same taxa: got false, want true")
	}
	if p.JaccardIndex != 1 {
		t.Errorf("pruned jaccard index: got %.6f, want 1", p.JaccardIndex)
	}
	if p.TaxaInfo.CommonCount != 4 {
		t.Errorf("pruned common taxa: got %d, want 4", p.TaxaInfo.CommonCount)
	}

	// downstream comparisons run on the pruned trees:
	// neither E nor F can appear in any entry
	for _, zs := range []treecmp.ZScore{res.RootDistances, res.PairwiseDists} {
		for _, d := range zs.Differences {
			if strings.Contains(d.Key, "E") || strings.Contains(d.Key, "F") {
				t.Errorf("pruned key %q: unshared taxon", d.Key)
			}
		}
	}
	if len(res.RootDistances.Differences) != 4 {
		t.Errorf("root distance entries: got %d, want 4", len(res.RootDistances.Differences))
	}
}

func TestCompareSharedTaxa(t *testing.T) {
	reg := poptree.NewRegistry()
	t1, _ := poptree.Newick(strings.NewReader("((A:1,B:1):1,C:1);"), reg)
	t2, _ := poptree.Newick(strings.NewReader("((A:1,B:1):1,D:1);"), reg)

	_, err := treecmp.New(t1, t2, nil).Compare(false)
	if !errors.Is(err, treecmp.ErrSharedTaxa) {
		t.Errorf("got %v, want %v", err, treecmp.ErrSharedTaxa)
	}
}

func TestCompareMigrationEdges(t *testing.T) {
	s := "((A:1,B:2):0.5,(C:3,D:4):0.5);"
	edges := []treeout.MigrationEdge{
		{Weight: 0.25, Source: []string{"A", "B"}, Target: []string{"C"}},
	}

	res := compare(t, s, s, false, edges)
	if !reflect.DeepEqual(res.MigrationEdges, edges) {
		t.Errorf("migration edges: got %v, want %v", res.MigrationEdges, edges)
	}

	res = compare(t, s, s, false, nil)
	if res.MigrationEdges != nil {
		t.Errorf("migration edges: got %v, want none", res.MigrationEdges)
	}
}

func TestResultWriters(t *testing.T) {
	res := compare(t, "((A:1,B:1):1,(C:1,D:1):1);", "((A:1,C:1):1,(B:1,D:1):1);", false, nil)

	var sb strings.Builder
	if err := res.Differences(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sb.String(); got != "A\nB\nC\nD\n" {
		t.Errorf("differences: got %q", got)
	}

	sb.Reset()
	if err := res.JSON(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range []string{"global_distances", "sibling_comparisons", "root_distances", "pairwise_distances", "rf_distance"} {
		if !strings.Contains(sb.String(), f) {
			t.Errorf("result document: missing field %q", f)
		}
	}
	if strings.Contains(sb.String(), "global_distances_pruned") {
		t.Errorf("result document: unexpected pruned distances")
	}
}
