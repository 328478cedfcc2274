// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pops implements a command to print
// the populations of a population list.
package pops

import (
	"fmt"
	"os"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "pops [--count] <poplist-file>",
	Short: "print the populations of a population list",
	Long: `
Command pops reads a population list and prints the name of its populations,
one per line, to the standard output.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

If the flag --count is set, the number of individuals of each population will
be printed after the name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting population list file")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	l, err := poplist.Read(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	count := make(map[string]int)
	for _, s := range l {
		count[s.Pop]++
	}

	for _, p := range l.Populations() {
		if countFlag {
			fmt.Fprintf(c.Stdout(), "%s\t%d\n", p, count[p])
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\n", p)
	}
	return nil
}
