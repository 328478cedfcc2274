// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package split implements a command to build
// SNP-split hybrid individuals
// from a PLINK ped file.
package split

import (
	"fmt"
	"os"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/ped"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `split --label <name> --pops <population>[,<population>...]
	[-o|--output <file>] <ped-file>`,
	Short: "build SNP-split hybrids from a ped file",
	Long: `
Command split reads a PLINK ped file with the individuals of the source
populations of a hybrid, grouped in equal-sized population blocks, and builds
one hybrid individual per rank: its genotype takes contiguous SNP blocks from
successive source populations, the last block absorbing any remainder.

The argument of the command is the name of the ped file, usually made with
"plink --keep <keep-list> --recode".

The flag --label, with the name of the hybrid, and the flag --pops, with the
source populations in the block order of the ped file, are required.

The hybrid individuals are written as ped rows to the file defined by the
flag --output, or -o, or to the standard output by default.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var label string
var popsFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&label, "label", "", "")
	c.Flags().StringVar(&popsFlag, "pops", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting ped file")
	}
	if label == "" {
		return c.UsageError("expecting --label flag")
	}
	if popsFlag == "" {
		return c.UsageError("expecting --pops flag")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	inds, err := ped.Read(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	hybrids, err := ped.SplitHybrids(inds, label, strings.Split(popsFlag, ","))
	if err != nil {
		return err
	}

	if output == "" {
		return ped.Write(c.Stdout(), hybrids)
	}
	return writeFile(output, hybrids)
}

func writeFile(name string, inds []ped.Individual) (err error) {
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

	if err := ped.Write(f, inds); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
