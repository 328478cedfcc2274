// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reduce implements a command to cap
// the number of individuals per population
// in a population list.
package reduce

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
	"golang.org/x/exp/rand"
)

var Command = &command.Command{
	Usage: `reduce --pops <population>[,<population>...] [--max <number>]
	[--seed <value>] <poplist-file>`,
	Short: "cap individuals per population",
	Long: `
Command reduce reads a population list and writes to the standard output the
list with the indicated populations randomly reduced to at most a given
number of individuals, preserving the row order of the input.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

The flag --pops, with the populations to be reduced, is required; names
absent from the list are reported to the standard error. The flag --max
defines the maximum number of individuals per population (5 by default). Use
--seed for a reproducible reduction.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var popsFlag string
var max int
var seed int64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&popsFlag, "pops", "", "")
	c.Flags().IntVar(&max, "max", 5, "")
	c.Flags().Int64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting population list file")
	}
	if popsFlag == "" {
		return c.UsageError("expecting --pops flag")
	}

	l, err := readList(args[0])
	if err != nil {
		return err
	}

	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(s))

	out, missing := l.Reduce(strings.Split(popsFlag, ","), max, rng)
	for _, p := range missing {
		fmt.Fprintf(c.Stderr(), "warning: population %q not in list\n", p)
	}

	if err := out.TSV(c.Stdout()); err != nil {
		return err
	}
	return nil
}

func readList(name string) (poplist.List, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := poplist.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return l, nil
}
