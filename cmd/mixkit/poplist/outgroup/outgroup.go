// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package outgroup implements a command to append
// archaic outgroup individuals to a population list.
package outgroup

import (
	"fmt"
	"os"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "outgroup [--kind <outgroup>] <poplist-file>",
	Short: "append an archaic outgroup to a population list",
	Long: `
Command outgroup reads a population list, appends the individuals of an
archaic outgroup, and writes the resulting list to the standard output.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

The flag --kind defines the outgroup to be appended. Valid values are:

	deni	the Denisovan individual (the default)
	vindija	the Vindija Neanderthal individual
	both	both individuals
	`,
	SetFlags: setFlags,
	Run:      run,
}

var kind string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&kind, "kind", poplist.Denisova, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting population list file")
	}

	l, err := readList(args[0])
	if err != nil {
		return err
	}

	out, err := l.Outgroup(kind)
	if err != nil {
		return err
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
