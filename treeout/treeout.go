// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treeout implements reading of TreeMix output files
// (".treeout.gz"),
// which contain a newick tree statement,
// optionally followed by a block of migration edges.
package treeout

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/klauspost/compress/gzip"
)

// A MigrationEdge is an admixture event
// linking a source clade to a target clade
// with a weight.
// Source and target keep the leaf labels
// in the order of the underlying newick fragments.
type MigrationEdge struct {
	Weight float64  `json:"weight"`
	Source []string `json:"source"`
	Target []string `json:"target"`
}

// A File is the content of a TreeMix output file.
type File struct {
	// Tree is the population tree of the run.
	Tree *poptree.Tree

	// Edges are the migration edges of the run,
	// if any.
	Edges []MigrationEdge

	// Skipped is the number of malformed lines
	// ignored in the migration block.
	Skipped int
}

// ReadFile reads a gzip-compressed TreeMix output file,
// parsing the tree against the given registry.
func ReadFile(name string, reg *poptree.Registry) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	z, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	defer z.Close()

	out, err := Read(z, reg)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return out, nil
}

// Read reads an uncompressed TreeMix output.
//
// The content is classified by looking
// at the first statement terminator:
// if only whitespace follows the first ";",
// the content is a single newick statement;
// otherwise the remainder is a migration block
// and the first segment is the tree.
func Read(r io.Reader, reg *poptree.Registry) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(string(b))

	stmt, rest, found := strings.Cut(content, ";")
	if !found || strings.TrimSpace(rest) == "" {
		t, err := poptree.Newick(strings.NewReader(content), reg)
		if err != nil {
			return nil, err
		}
		return &File{Tree: t}, nil
	}

	edges, skipped := Migrations(rest)
	t, err := poptree.Newick(strings.NewReader(stmt+";"), reg)
	if err != nil {
		return nil, err
	}
	return &File{
		Tree:    t,
		Edges:   edges,
		Skipped: skipped,
	}, nil
}

// Migrations parses the migration block
// of a TreeMix output.
// Each edge is a line of 6 whitespace-separated fields:
//
//	weight reserved reserved reserved sourceFragment targetFragment
//
// The reserved fields are kept in position
// but never interpreted.
// The fragments are newick subtrees
// without the statement terminator.
// Malformed lines are skipped and counted,
// never fatal.
func Migrations(text string) ([]MigrationEdge, int) {
	var edges []MigrationEdge
	var skipped int
	for _, ln := range strings.Split(text, "\n") {
		fields := strings.Fields(ln)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			skipped++
			continue
		}

		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || w < 0 {
			skipped++
			continue
		}
		src, err := fragmentLeaves(fields[4])
		if err != nil {
			skipped++
			continue
		}
		tgt, err := fragmentLeaves(fields[5])
		if err != nil {
			skipped++
			continue
		}
		edges = append(edges, MigrationEdge{
			Weight: w,
			Source: src,
			Target: tgt,
		})
	}
	return edges, skipped
}

// fragmentLeaves parses a newick fragment
// with a disposable taxon namespace
// and returns its leaf labels in tree order.
func fragmentLeaves(frag string) ([]string, error) {
	t, err := poptree.Newick(strings.NewReader(frag+";"), nil)
	if err != nil {
		return nil, err
	}
	return t.Leaves(), nil
}
