// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package poptree implements rooted phylogenetic trees
// of population samples,
// with branch lengths in drift units,
// as produced by TreeMix.
package poptree

import (
	"fmt"
	"slices"
)

// A Taxon is the canonical identity
// of a leaf-level population label.
type Taxon struct {
	// Name of the population.
	Name string
}

// A Registry is a taxon identity space.
// Two trees parsed against the same registry
// share taxon identities,
// so cross-tree leaf lookups are valid.
// A registry must be created once per comparison
// and passed to both parse calls.
type Registry struct {
	taxa map[string]*Taxon
}

// NewRegistry creates a new empty taxon registry.
func NewRegistry() *Registry {
	return &Registry{
		taxa: make(map[string]*Taxon),
	}
}

// Taxon returns the canonical taxon for a label,
// adding it to the registry if it is new.
func (r *Registry) Taxon(name string) *Taxon {
	if tx, ok := r.taxa[name]; ok {
		return tx
	}
	tx := &Taxon{Name: name}
	r.taxa[name] = tx
	return tx
}

// Names returns the sorted labels
// stored in the registry.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.taxa))
	for n := range r.taxa {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of taxa in the registry.
func (r *Registry) Len() int {
	return len(r.taxa)
}

// A node is a node of a rooted tree.
// Every node except the root
// has a parent and a branch length.
type node struct {
	parent   *node
	children []*node
	length   float64
	taxon    *Taxon
}

// A Tree is a rooted phylogenetic tree.
// Leaf taxon labels are unique within a tree.
type Tree struct {
	reg   *Registry
	root  *node
	terms map[string]*node
}

// addTerm registers a labeled leaf node.
func (t *Tree) addTerm(n *node) error {
	name := n.taxon.Name
	if _, dup := t.terms[name]; dup {
		return fmt.Errorf("repeated taxon %q", name)
	}
	t.terms[name] = n
	return nil
}

// Terms returns the sorted labels
// of the labeled leaves of the tree.
func (t *Tree) Terms() []string {
	terms := make([]string, 0, len(t.terms))
	for n := range t.terms {
		terms = append(terms, n)
	}
	slices.Sort(terms)
	return terms
}

// Leaves returns the labels of the labeled leaves
// in tree order
// (the order in which they appear in a newick statement).
func (t *Tree) Leaves() []string {
	return t.root.termList()
}

// HasTerm reports whether a leaf
// with the given label is in the tree.
func (t *Tree) HasTerm(name string) bool {
	_, ok := t.terms[name]
	return ok
}

// Siblings returns the set of leaf labels
// under the parent of the indicated leaf,
// excluding the leaf itself.
// It returns an empty set
// if the label is absent
// or the leaf is the root.
func (t *Tree) Siblings(name string) map[string]bool {
	sibs := make(map[string]bool)
	n, ok := t.terms[name]
	if !ok || n.parent == nil {
		return sibs
	}
	for _, s := range n.parent.termList() {
		if s == name {
			continue
		}
		sibs[s] = true
	}
	return sibs
}

// termList returns the labels of the labeled leaves
// descending from a node.
func (n *node) termList() []string {
	if len(n.children) == 0 {
		if n.taxon == nil {
			return nil
		}
		return []string{n.taxon.Name}
	}
	var terms []string
	for _, c := range n.children {
		terms = append(terms, c.termList()...)
	}
	return terms
}

// RootDistances returns the sum of branch lengths
// from the root to each labeled leaf.
func (t *Tree) RootDistances() map[string]float64 {
	dist := make(map[string]float64, len(t.terms))
	for name, n := range t.terms {
		var d float64
		for p := n; p.parent != nil; p = p.parent {
			d += p.length
		}
		dist[name] = d
	}
	return dist
}

// PairDistance returns the path length
// between two labeled leaves,
// measured through their most recent common ancestor.
// It returns false if any of the leaves is absent.
func (t *Tree) PairDistance(a, b string) (float64, bool) {
	na, ok := t.terms[a]
	if !ok {
		return 0, false
	}
	nb, ok := t.terms[b]
	if !ok {
		return 0, false
	}

	da := rootPath(na)
	db := rootPath(nb)
	m := mrca(da, db)
	return depth(na) + depth(nb) - 2*depth(m), true
}

// rootPath returns the path from a node to the root,
// leaf first.
func rootPath(n *node) []*node {
	var path []*node
	for p := n; p != nil; p = p.parent {
		path = append(path, p)
	}
	return path
}

// mrca returns the deepest node
// shared by two root paths.
func mrca(pa, pb []*node) *node {
	anc := make(map[*node]bool, len(pa))
	for _, n := range pa {
		anc[n] = true
	}
	for _, n := range pb {
		if anc[n] {
			return n
		}
	}
	// unreachable on a valid rooted tree
	return pa[len(pa)-1]
}

// depth returns the sum of branch lengths
// from the root to a node.
func depth(n *node) float64 {
	var d float64
	for p := n; p.parent != nil; p = p.parent {
		d += p.length
	}
	return d
}

// A Clade is the set of labeled leaves
// descending from a non-root node,
// with the branch length of the edge
// above that node.
type Clade struct {
	// Taxa are the sorted leaf labels of the clade.
	Taxa []string

	// Length of the branch above the clade.
	Length float64

	// Internal is true if the clade
	// descends from an internal node.
	Internal bool
}

// Clades returns one clade per non-root node of the tree,
// in an unspecified order.
func (t *Tree) Clades() []Clade {
	var clades []Clade
	var walk func(n *node)
	walk = func(n *node) {
		if n.parent != nil {
			taxa := n.termList()
			slices.Sort(taxa)
			clades = append(clades, Clade{
				Taxa:     taxa,
				Length:   n.length,
				Internal: len(n.children) > 0,
			})
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return clades
}
