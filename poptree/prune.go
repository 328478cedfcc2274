// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package poptree

// Prune returns a new tree
// restricted to the leaves with labels in the keep set.
// Internal nodes left with a single child are collapsed,
// summing the branch lengths of the merged edges.
// The root is never collapsed,
// so any stem length above the first split is preserved.
// The source tree is not modified.
func (t *Tree) Prune(keep map[string]bool) *Tree {
	nt := &Tree{
		reg:   t.reg,
		terms: make(map[string]*node),
	}
	root := copyPruned(t.root, keep, nt)
	if root == nil {
		root = &node{}
	}
	root.parent = nil
	nt.root = root
	return nt
}

// copyPruned copies the part of a subtree
// that retains leaves in the keep set.
// It returns nil for an emptied subtree
// and the single surviving child,
// with merged branch lengths,
// for a non-root node left with one child.
func copyPruned(n *node, keep map[string]bool, nt *Tree) *node {
	if len(n.children) == 0 {
		if n.taxon == nil || !keep[n.taxon.Name] {
			return nil
		}
		leaf := &node{
			length: n.length,
			taxon:  n.taxon,
		}
		nt.terms[n.taxon.Name] = leaf
		return leaf
	}

	var kept []*node
	for _, c := range n.children {
		k := copyPruned(c, keep, nt)
		if k == nil {
			continue
		}
		kept = append(kept, k)
	}
	if len(kept) == 0 {
		return nil
	}
	if len(kept) == 1 && n.parent != nil {
		kept[0].length += n.length
		return kept[0]
	}

	nn := &node{
		length:   n.length,
		children: kept,
	}
	for _, c := range kept {
		c.parent = nn
	}
	return nn
}
