// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lists implements a command to build
// the PLINK keep lists of a hybrid structure.
package lists

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
	"github.com/js-arias/command"
	"golang.org/x/exp/rand"
)

var Command = &command.Command{
	Usage: `lists [--structure <json-file>] [--pops <number>]
	[-o|--output <dir>] [--seed <value>] <poplist-file>`,
	Short: "build the PLINK keep lists of a hybrid structure",
	Long: `
Command lists reads a population list and a hybrid structure, and builds, for
every hybrid, the list of source individuals to be extracted with PLINK
(--keep), trimming every source population to the size of the smallest one.

The argument of the command is the name of the population list, a
tab-delimited file of family ID, individual ID, and population name.

The hybrid structure is read from the JSON file defined with the flag
--structure; if undefined, the canned structure selected by the flag --pops
(2 by default, see the "hybrid structure" command) will be used. Hybrids with
an empty source population are skipped and reported to the standard error.
Use --seed for a reproducible trimming.

The keep lists are written to the directory defined by the flag --output, or
-o (the current directory by default), as keep_<hybrid>.txt files, along with
poplist_with_hybrids.tsv, the input list with the hybrid individuals
appended.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var structFile string
var pops int
var output string
var seed int64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&structFile, "structure", "", "")
	c.Flags().IntVar(&pops, "pops", 2, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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

	s, err := readStructure()
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.MkdirAll(output, 0755); err != nil {
			return err
		}
	}

	sv := uint64(seed)
	if seed == 0 {
		sv = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(sv))

	keep, updated, skipped := l.KeepLists(s, rng)
	for _, h := range skipped {
		fmt.Fprintf(c.Stderr(), "warning: hybrid %q: empty source population: skipped\n", h)
	}

	for _, h := range s.Hybrids() {
		kl, ok := keep[h]
		if !ok {
			continue
		}
		name := filepath.Join(output, "keep_"+h+".txt")
		if err := writeList(name, kl); err != nil {
			return err
		}
	}

	name := filepath.Join(output, "poplist_with_hybrids.tsv")
	if err := writeList(name, updated); err != nil {
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

func readStructure() (poplist.Structure, error) {
	if structFile == "" {
		return poplist.Structures(pops)
	}

	f, err := os.Open(structFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := poplist.ReadStructure(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", structFile, err)
	}
	return s, nil
}

func writeList(name string, l poplist.List) (err error) {
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

	if err := l.TSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
