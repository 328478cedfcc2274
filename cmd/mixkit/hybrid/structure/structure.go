// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package structure implements a command to print
// a hybrid population structure.
package structure

import (
	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "structure [--pops <number>]",
	Short: "print a hybrid population structure",
	Long: `
Command structure writes to the standard output a hybrid population structure
as a JSON document of hybrid name to source population pairs, ready to be
edited, or to be used with the "hybrid lists" command.

The flag --pops defines the number of source populations per hybrid. Valid
values are 2 (the default), 5, and 51.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pops int

func setFlags(c *command.Command) {
	c.Flags().IntVar(&pops, "pops", 2, "")
}

func run(c *command.Command, args []string) error {
	s, err := poplist.Structures(pops)
	if err != nil {
		return c.UsageError(err.Error())
	}
	return s.JSON(c.Stdout())
}
