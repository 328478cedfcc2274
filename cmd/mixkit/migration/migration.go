// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package migration implements a command to print
// the migration edges of a TreeMix output file.
package migration

import (
	"fmt"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poptree"
	"github.com/ChandrashekarCR/TreeMix-Workflow/treeout"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "migration <treeout-file>",
	Short: "print the migration edges of a TreeMix output file",
	Long: `
Command migration reads a TreeMix output file and prints its migration edges
to the standard output, as tab-delimited rows of weight, source populations,
and target populations.

The argument of the command is the name of the TreeMix output file
(gzip-compressed). Malformed migration edge lines are skipped and reported to
the standard error.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting TreeMix output file")
	}

	f, err := treeout.ReadFile(args[0], poptree.NewRegistry())
	if err != nil {
		return err
	}
	if f.Skipped > 0 {
		fmt.Fprintf(c.Stderr(), "%s: %d malformed migration lines skipped\n", args[0], f.Skipped)
	}

	fmt.Fprintf(c.Stdout(), "weight\tsource\ttarget\n")
	for _, e := range f.Edges {
		fmt.Fprintf(c.Stdout(), "%.6g\t%s\t%s\n", e.Weight, strings.Join(e.Source, ","), strings.Join(e.Target, ","))
	}
	return nil
}
