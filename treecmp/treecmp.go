// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treecmp implements the comparison
// of two population trees,
// a baseline and an experimental variant,
// measuring their topological and branch length differences.
package treecmp

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
)

// ErrSharedTaxa is returned when two trees
// share fewer than 3 taxa,
// so a normalized distance is undefined.
var ErrSharedTaxa = errors.New("fewer than 3 shared taxa")

// TaxaInfo is the count of taxa
// in each compared tree.
type TaxaInfo struct {
	Tree1Count  int `json:"tree1_taxa_count"`
	Tree2Count  int `json:"tree2_taxa_count"`
	CommonCount int `json:"common_taxa_count"`
	UnionCount  int `json:"total_unique_taxa"`
}

// Distances is the suite of global distance metrics
// between two trees.
type Distances struct {
	JaccardIndex  float64  `json:"jaccard_index"`
	SameTaxa      bool     `json:"same_taxa"`
	RFDistance    int      `json:"rf_distance"`
	NormalizedRF  float64  `json:"normalized_rf"`
	BSD           float64  `json:"bsd"`
	NormalizedBSD float64  `json:"normalized_bsd"`
	TaxaInfo      TaxaInfo `json:"taxa_info"`
}

// A SiblingComparison records the change
// in the sibling set of a taxon
// between the two trees.
type SiblingComparison struct {
	Siblings1    []string    `json:"siblings1"`
	Siblings2    []string    `json:"siblings2"`
	JaccardIndex float64     `json:"jaccard_index"`
	Differences  SiblingDiff `json:"differences"`
}

// A SiblingDiff lists the siblings
// found in only one of the trees.
type SiblingDiff struct {
	OnlyInTree1 []string `json:"only_in_tree1"`
	OnlyInTree2 []string `json:"only_in_tree2"`
}

// Siblings collects the sibling comparisons
// of the taxa whose sibling set changed.
type Siblings struct {
	DifferentPopulations []string                     `json:"different_populations"`
	Comparisons          map[string]SiblingComparison `json:"comparisons"`
}

// A Result is the output of a tree comparison.
type Result struct {
	Global         Distances               `json:"global_distances"`
	GlobalPruned   *Distances              `json:"global_distances_pruned,omitempty"`
	Siblings       Siblings                `json:"sibling_comparisons"`
	RootDistances  ZScore                  `json:"root_distances"`
	PairwiseDists  ZScore                  `json:"pairwise_distances"`
	MigrationEdges []treeout.MigrationEdge `json:"migration_edges,omitempty"`
}

// A Comparator compares a baseline tree
// with an experimental tree.
// Both trees must have been parsed
// against the same taxon registry.
type Comparator struct {
	t1    *poptree.Tree // baseline
	t2    *poptree.Tree // experimental
	edges []treeout.MigrationEdge
}

// New creates a comparator
// for a baseline and an experimental tree,
// with the migration edges extracted
// from the experimental output,
// if any.
func New(baseline, experimental *poptree.Tree, edges []treeout.MigrationEdge) *Comparator {
	return &Comparator{
		t1:    baseline,
		t2:    experimental,
		edges: edges,
	}
}

// Compare computes the full metric suite.
//
// Global distances are always computed
// on the original trees.
// If pruneToShared is true,
// both trees are also restricted
// to their common taxa,
// the global distances are recomputed on the restriction,
// and the sibling and distance comparisons
// use the restricted trees.
func (c *Comparator) Compare(pruneToShared bool) (*Result, error) {
	common := commonTaxa(c.t1, c.t2)

	global, err := computeDistances(c.t1, c.t2)
	if err != nil {
		return nil, err
	}
	res := &Result{Global: global}

	t1, t2 := c.t1, c.t2
	if pruneToShared {
		t1 = t1.Prune(common)
		t2 = t2.Prune(common)
		pruned, err := computeDistances(t1, t2)
		if err != nil {
			return nil, err
		}
		res.GlobalPruned = &pruned
	}

	res.Siblings = compareSiblings(t1, t2, common)
	res.RootDistances = zScore(t1.RootDistances(), t2.RootDistances())
	res.PairwiseDists = zScore(pairwise(t1, common), pairwise(t2, common))

	if len(c.edges) > 0 {
		res.MigrationEdges = c.edges
	}
	return res, nil
}

// commonTaxa returns the set of taxa
// present in both trees.
func commonTaxa(t1, t2 *poptree.Tree) map[string]bool {
	common := make(map[string]bool)
	for _, n := range t1.Terms() {
		if t2.HasTerm(n) {
			common[n] = true
		}
	}
	return common
}

// computeDistances calculates the global distance metrics
// between two trees.
// Trees are treated as rooted.
func computeDistances(a, b *poptree.Tree) (Distances, error) {
	la := a.Terms()
	lb := b.Terms()

	union := make(map[string]bool, len(la)+len(lb))
	var inter int
	for _, n := range la {
		union[n] = true
	}
	for _, n := range lb {
		if union[n] {
			inter++
		}
		union[n] = true
	}
	same := len(la) == len(lb) && inter == len(la)

	var jaccard float64
	if len(union) > 0 {
		jaccard = float64(inter) / float64(len(union))
	}

	shared := commonTaxa(a, b)
	rf := rfDistance(a, b, shared)
	bsd := bsdDistance(a, b, shared)

	nrf, err := normalizedRF(rf, inter, true)
	if err != nil {
		return Distances{}, err
	}

	return Distances{
		JaccardIndex:  jaccard,
		SameTaxa:      same,
		RFDistance:    rf,
		NormalizedRF:  nrf,
		BSD:           bsd,
		NormalizedBSD: normalizedBSD(bsd, inter, true),
		TaxaInfo: TaxaInfo{
			Tree1Count:  len(la),
			Tree2Count:  len(lb),
			CommonCount: inter,
			UnionCount:  len(union),
		},
	}, nil
}

// normalizedRF normalizes a Robinson-Foulds distance
// by its maximum value
// for the given number of shared taxa.
// The unrooted denominator is kept for completeness
// but is never exercised.
func normalizedRF(rf, shared int, rooted bool) (float64, error) {
	if shared < 3 {
		return 0, fmt.Errorf("%w: got %d", ErrSharedTaxa, shared)
	}
	maxRF := 2 * (shared - 2)
	if !rooted {
		maxRF = 2 * (shared - 3)
	}
	if maxRF <= 0 {
		return 0, nil
	}
	return float64(rf) / float64(maxRF), nil
}

// normalizedBSD normalizes a branch score distance
// by the branch count of a fully resolved tree
// with the given number of shared taxa.
// The unrooted denominator is kept for completeness
// but is never exercised.
func normalizedBSD(bsd float64, shared int, rooted bool) float64 {
	if shared < 3 {
		return 0
	}
	branches := 2*shared - 2
	if !rooted {
		branches = 2*shared - 3
	}
	return bsd / float64(branches)
}

// rfDistance is the Robinson-Foulds symmetric difference:
// the number of bipartitions induced by an internal edge
// that appear in exactly one of the two trees,
// restricted to the shared taxon universe.
func rfDistance(a, b *poptree.Tree, shared map[string]bool) int {
	ba := bipartitions(a, shared)
	bb := bipartitions(b, shared)

	var d int
	for k := range ba {
		if !bb[k] {
			d++
		}
	}
	for k := range bb {
		if !ba[k] {
			d++
		}
	}
	return d
}

// bipartitions returns the set of non-trivial bipartitions
// induced by the internal edges of a tree,
// restricted to the shared taxon universe.
// Restricted clades that are empty,
// a single taxon,
// or the whole shared set
// are trivial and discarded.
func bipartitions(t *poptree.Tree, shared map[string]bool) map[string]bool {
	bp := make(map[string]bool)
	for _, c := range t.Clades() {
		if !c.Internal {
			continue
		}
		taxa := restrict(c.Taxa, shared)
		if len(taxa) < 2 || len(taxa) >= len(shared) {
			continue
		}
		bp[cladeKey(taxa)] = true
	}
	return bp
}

// bsdDistance is the branch score distance:
// the Euclidean norm of the difference
// of the branch length vectors of the two trees,
// over all bipartitions present in either tree,
// using length 0 for a bipartition absent from one tree.
func bsdDistance(a, b *poptree.Tree, shared map[string]bool) float64 {
	la := branchLengths(a, shared)
	lb := branchLengths(b, shared)

	var sum float64
	for k, v := range la {
		d := v - lb[k]
		sum += d * d
	}
	for k, v := range lb {
		if _, ok := la[k]; !ok {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// branchLengths maps every bipartition of a tree,
// restricted to the shared taxon universe,
// to its branch length.
// Edges that collapse to the same restricted clade
// sum their lengths.
func branchLengths(t *poptree.Tree, shared map[string]bool) map[string]float64 {
	bl := make(map[string]float64)
	for _, c := range t.Clades() {
		taxa := restrict(c.Taxa, shared)
		if len(taxa) == 0 {
			continue
		}
		bl[cladeKey(taxa)] += c.Length
	}
	return bl
}

// restrict filters a sorted label list
// to the members of a set.
func restrict(taxa []string, set map[string]bool) []string {
	var r []string
	for _, n := range taxa {
		if set[n] {
			r = append(r, n)
		}
	}
	return r
}

// cladeKey builds a comparable key
// from a sorted label list.
func cladeKey(taxa []string) string {
	return strings.Join(taxa, "\t")
}

// compareSiblings records the taxa of the common set
// whose sibling sets differ between the two trees.
// A taxon with a sibling Jaccard index of 1 is unchanged
// and is omitted.
func compareSiblings(t1, t2 *poptree.Tree, common map[string]bool) Siblings {
	taxa := make([]string, 0, len(common))
	for n := range common {
		taxa = append(taxa, n)
	}
	slices.Sort(taxa)

	sc := Siblings{
		DifferentPopulations: make([]string, 0),
		Comparisons:          make(map[string]SiblingComparison),
	}
	for _, tax := range taxa {
		s1 := t1.Siblings(tax)
		s2 := t2.Siblings(tax)

		var inter, union int
		for n := range s1 {
			union++
			if s2[n] {
				inter++
			}
		}
		for n := range s2 {
			if !s1[n] {
				union++
			}
		}

		var jaccard float64
		if union > 0 {
			jaccard = float64(inter) / float64(union)
		}
		if jaccard == 1 {
			continue
		}

		sc.DifferentPopulations = append(sc.DifferentPopulations, tax)
		sc.Comparisons[tax] = SiblingComparison{
			Siblings1:    setList(s1),
			Siblings2:    setList(s2),
			JaccardIndex: jaccard,
			Differences: SiblingDiff{
				OnlyInTree1: setDiff(s1, s2),
				OnlyInTree2: setDiff(s2, s1),
			},
		}
	}
	return sc
}

// pairwise returns the distances
// between every unordered pair of taxa,
// over a deterministically sorted taxon list,
// keyed by the pair.
func pairwise(t *poptree.Tree, taxa map[string]bool) map[string]float64 {
	ls := make([]string, 0, len(taxa))
	for n := range taxa {
		ls = append(ls, n)
	}
	slices.Sort(ls)

	dist := make(map[string]float64)
	for i, a := range ls {
		for _, b := range ls[i+1:] {
			d, ok := t.PairDistance(a, b)
			if !ok {
				continue
			}
			dist[pairKey(a, b)] = d
		}
	}
	return dist
}

// pairKey builds the key of an unordered taxon pair.
func pairKey(a, b string) string {
	return a + "|" + b
}

// setList returns the sorted elements of a set.
func setList(s map[string]bool) []string {
	ls := make([]string, 0, len(s))
	for n := range s {
		ls = append(ls, n)
	}
	slices.Sort(ls)
	return ls
}

// setDiff returns the sorted elements of a
// that are not in b.
func setDiff(a, b map[string]bool) []string {
	var ls []string
	for n := range a {
		if !b[n] {
			ls = append(ls, n)
		}
	}
	slices.Sort(ls)
	if ls == nil {
		ls = make([]string, 0)
	}
	return ls
}
