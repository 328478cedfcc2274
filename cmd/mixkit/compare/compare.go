// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compare implements a command to compare
// a baseline and an experimental TreeMix output file.
package compare

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treecmp"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
	"github.com/js-arias/command"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `compare [--prune] [--plot]
	[-o|--output <dir>] [-b|--base <name>]
	<baseline-file> <experiment-file>`,
	Short: "compare two TreeMix output files",
	Long: `
Command compare reads a baseline and an experimental TreeMix output file
(gzip-compressed, a Newick tree optionally followed by migration edge lines)
and writes the comparison between both trees.

The arguments of the command are the name of the baseline file and the name
of the experimental file, in that order. Both trees are read over a shared
population name space.

By default both trees are also restricted to their common populations, and
the population comparisons are made on the restriction. Use --prune=false to
compare only the original trees.

The results are written to the directory defined by the flag --output, or -o
(the current directory by default), using the prefix defined by the flag
--base, or -b (by default the name of the experimental file). The files are:

	<base>_tree_comparison_results.json
	    the full comparison
	<base>_differences.txt
	    populations with a changed sibling set, one per line
	<base>_migration_edges.json
	    the migration edges of the experimental file, if any

If the flag --plot is set, a histogram of the root distance deltas will be
saved as <base>_root_distance_hist.png.

Malformed migration edge lines are skipped and reported to the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pruneFlag bool
var plotFlag bool
var output string
var baseName string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&pruneFlag, "prune", true, "")
	c.Flags().BoolVar(&plotFlag, "plot", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&baseName, "base", "", "")
	c.Flags().StringVar(&baseName, "b", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting baseline and experiment files")
	}

	reg := poptree.NewRegistry()
	bf, err := treeout.ReadFile(args[0], reg)
	if err != nil {
		return err
	}
	ef, err := treeout.ReadFile(args[1], reg)
	if err != nil {
		return err
	}
	if ef.Skipped > 0 {
		fmt.Fprintf(c.Stderr(), "%s: %d malformed migration lines skipped\n", args[1], ef.Skipped)
	}

	res, err := treecmp.New(bf.Tree, ef.Tree, ef.Edges).Compare(pruneFlag)
	if err != nil {
		return fmt.Errorf("when comparing %q and %q: %v", args[0], args[1], err)
	}

	base := baseName
	if base == "" {
		base = TrimExt(filepath.Base(args[1]))
	}
	if err := Write(res, output, base); err != nil {
		return err
	}

	if plotFlag {
		name := filepath.Join(output, base+"_root_distance_hist.png")
		if err := plotDeltas(res, name); err != nil {
			return err
		}
	}
	return nil
}

// TrimExt removes the TreeMix output extensions
// from a file name.
func TrimExt(name string) string {
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".treeout")
	return name
}

// Write writes the result files of a comparison
// into a directory,
// using the given base name as prefix.
func Write(res *treecmp.Result, dir, base string) error {
	name := filepath.Join(dir, base+"_tree_comparison_results.json")
	if err := writeFile(name, res.JSON); err != nil {
		return err
	}

	name = filepath.Join(dir, base+"_differences.txt")
	if err := writeFile(name, res.Differences); err != nil {
		return err
	}

	if len(res.MigrationEdges) > 0 {
		name = filepath.Join(dir, base+"_migration_edges.json")
		if err := writeFile(name, res.MigrationJSON); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func plotDeltas(res *treecmp.Result, name string) error {
	diffs := res.RootDistances.Differences
	if len(diffs) == 0 {
		return nil
	}
	vals := make(plotter.Values, 0, len(diffs))
	for _, d := range diffs {
		vals = append(vals, d.Delta)
	}

	p := plot.New()
	p.X.Label.Text = "root distance delta (drift units)"
	p.Y.Label.Text = "populations"

	h, err := plotter.NewHist(vals, 20)
	if err != nil {
		return fmt.Errorf("while building histogram: %v", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
