// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package filter implements a command to filter
// the individuals of a population list.
package filter

import (
	"fmt"
	"os"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `filter [--keep-prefix <prefix>] [--drop-suffix <suffix>]
	<poplist-file>`,
	Short: "filter the individuals of a population list",
	Long: `
Command filter reads a population list and writes the filtered list to the
standard output.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

The filters, applied in this order, are:

	--keep-prefix <prefix>
	    keep only the individuals whose ID starts with the prefix
	    (for example HGDP, to keep the HGDP cohort)
	--drop-suffix <suffix>
	    drop the populations whose name ends with the suffix
	`,
	SetFlags: setFlags,
	Run:      run,
}

var keepPrefix string
var dropSuffix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&keepPrefix, "keep-prefix", "", "")
	c.Flags().StringVar(&dropSuffix, "drop-suffix", "", "")
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

	if keepPrefix != "" {
		l = l.KeepIIDPrefix(keepPrefix)
	}
	if dropSuffix != "" {
		l = l.DropPopSuffix(dropSuffix)
	}

	if len(l) == 0 {
		return nil
	}
	if err := l.TSV(c.Stdout()); err != nil {
		return err
	}
	return nil
}
