// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch implements a command to compare
// every TreeMix output file of an experiment
// against its baseline.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/compare"
	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/project"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treecmp"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "batch [--prune] <project-file>",
	Short: "compare all experiment trees against their baselines",
	Long: `
Command batch reads an experiment project and compares every TreeMix output
file of the experiment against its baseline.

The argument of the command is the name of the project file. The project must
define the "trees" dataset (the directory with the experiment output files)
and the "baseline" dataset (the directory with the baseline output files).
The results are written to the "results" dataset directory, or to the current
directory if undefined.

For each file matching *.treeout.gz in the trees directory, the migration
token (of the form "m_<number>") is extracted from the file name, and the
file is paired with baseline_m_<number>_output.treeout.gz in the baseline
directory. Files without a migration token are paired with
baseline_seed1_output.treeout.gz. Pairs with a missing baseline file are
skipped with a warning; a failed comparison fails that pair only.

By default both trees of a pair are also restricted to their common
populations. Use --prune=false to compare only the original trees.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pruneFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&pruneFlag, "prune", true, "")
}

var migToken = regexp.MustCompile(`m_\d+`)

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	baseDir := p.Path(project.Baseline)
	if baseDir == "" {
		return fmt.Errorf("baseline directory not defined in project %q", args[0])
	}
	resDir := p.Path(project.Results)
	if resDir != "" {
		if err := os.MkdirAll(resDir, 0755); err != nil {
			return err
		}
	}

	files, err := p.TreeFiles(project.Trees)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no TreeMix output files on directory %q", p.Path(project.Trees))
	}

	var done, skipped, failed int
	for _, exp := range files {
		base := baselineFor(baseDir, filepath.Base(exp))
		if _, err := os.Stat(base); err != nil {
			fmt.Fprintf(c.Stderr(), "warning: %s: missing baseline %s: skipped\n", exp, base)
			skipped++
			continue
		}

		res, err := comparePair(base, exp, c)
		if err != nil {
			fmt.Fprintf(c.Stderr(), "warning: %v\n", err)
			failed++
			continue
		}

		pre := compare.TrimExt(filepath.Base(exp))
		if err := compare.Write(res, resDir, pre); err != nil {
			fmt.Fprintf(c.Stderr(), "warning: %v\n", err)
			failed++
			continue
		}
		done++
	}

	fmt.Fprintf(c.Stdout(), "%d pairs: %d compared, %d skipped, %d failed\n", len(files), done, skipped, failed)
	return nil
}

// baselineFor returns the baseline file
// paired with an experiment file name:
// the baseline made with the same number of migration edges,
// or the seed baseline
// when the name carries no migration token.
func baselineFor(dir, name string) string {
	if tok := migToken.FindString(name); tok != "" {
		return filepath.Join(dir, "baseline_"+tok+"_output.treeout.gz")
	}
	return filepath.Join(dir, "baseline_seed1_output.treeout.gz")
}

func comparePair(base, exp string, c *command.Command) (*treecmp.Result, error) {
	reg := poptree.NewRegistry()
	bf, err := treeout.ReadFile(base, reg)
	if err != nil {
		return nil, err
	}
	ef, err := treeout.ReadFile(exp, reg)
	if err != nil {
		return nil, err
	}
	if ef.Skipped > 0 {
		fmt.Fprintf(c.Stderr(), "%s: %d malformed migration lines skipped\n", exp, ef.Skipped)
	}

	res, err := treecmp.New(bf.Tree, ef.Tree, ef.Edges).Compare(pruneFlag)
	if err != nil {
		return nil, fmt.Errorf("when comparing %q and %q: %v", base, exp, err)
	}
	return res, nil
}
