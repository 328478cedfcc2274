// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package remove implements a command to build
// a PLINK removal list
// from a population list.
package remove

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
	Usage: `remove [--pops <population>[,<population>...]]
	[--continent <name>] [--frac <value>] [--popmap <json-file>]
	[--seed <value>] <poplist-file>`,
	Short: "build a PLINK removal list",
	Long: `
Command remove reads a population list and writes to the standard output the
individuals of the populations selected for removal, to be used with the
PLINK flag --remove.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

One of the following selections is required:

	--pops <population>[,<population>...]
	    select the named populations; names absent from the list are
	    reported to the standard error
	--continent <name>
	    select all populations of a continent; it requires the flag
	    --popmap with a JSON file of population to continent pairs
	--frac <value>
	    select a random fraction of the populations, proportionally
	    across continents; continents with a single population are
	    never touched; it requires --popmap, and accepts --seed for
	    a reproducible selection
	`,
	SetFlags: setFlags,
	Run:      run,
}

var popsFlag string
var continent string
var frac float64
var popmapFile string
var seed int64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&popsFlag, "pops", "", "")
	c.Flags().StringVar(&continent, "continent", "", "")
	c.Flags().Float64Var(&frac, "frac", 0, "")
	c.Flags().StringVar(&popmapFile, "popmap", "", "")
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

	var rm poplist.List
	switch {
	case popsFlag != "":
		var missing []string
		rm, missing = l.Remove(strings.Split(popsFlag, ","))
		for _, p := range missing {
			fmt.Fprintf(c.Stderr(), "warning: population %q not in list\n", p)
		}
	case continent != "":
		m, err := readPopmap(popmapFile)
		if err != nil {
			return err
		}
		rm = l.RemoveContinent(continent, m)
	case frac > 0:
		m, err := readPopmap(popmapFile)
		if err != nil {
			return err
		}
		s := uint64(seed)
		if seed == 0 {
			s = uint64(time.Now().UnixNano())
		}
		rm = l.RandomRemove(frac, m, rand.New(rand.NewSource(s)))
	default:
		return c.UsageError("expecting --pops, --continent, or --frac flag")
	}

	if len(rm) == 0 {
		return nil
	}
	if err := rm.TSV(c.Stdout()); err != nil {
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

func readPopmap(name string) (poplist.Popmap, error) {
	if name == "" {
		return nil, fmt.Errorf("expecting --popmap flag")
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := poplist.ReadPopmap(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return m, nil
}
