// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sample implements a command to reduce
// randomly chosen populations of a population list
// to a given sample size.
package sample

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
	Usage: `sample [--size <number>] [--pops <number>]
	[--seed <value>] <poplist-file>`,
	Short: "reduce random populations to a sample size",
	Long: `
Command sample reads a population list, picks a given number of populations
at random, reduces each one to a given number of individuals, and writes the
resulting list to the standard output, preserving the row order of the input.
The names of the reduced populations are reported to the standard error.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

The flag --size defines the number of individuals kept per sampled population
(5 by default). The flag --pops defines how many populations will be sampled;
by default, or when zero, every population of the list is reduced. Use --seed
for a reproducible sample.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var size int
var pops int
var seed int64

func setFlags(c *command.Command) {
	c.Flags().IntVar(&size, "size", 5, "")
	c.Flags().IntVar(&pops, "pops", 0, "")
	c.Flags().Int64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting population list file")
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

	out, sel, err := l.SampleSizes(size, pops, rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "sampled populations: %s\n", strings.Join(sel, ","))

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
