// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package convert implements a command to convert
// a PLINK stratified frequency file
// into a TreeMix input file.
package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/ChandrashekarCR/TreeMix-Workflow/alleles"
	"github.com/js-arias/command"
	"github.com/klauspost/compress/gzip"
)

var Command = &command.Command{
	Usage: "convert [-o|--output <file>] <freq-file>",
	Short: "convert PLINK frequencies into TreeMix input",
	Long: `
Command convert reads a PLINK stratified frequency file (made with
"plink --freq --within") and writes the allele count matrix consumed by
TreeMix, gzip-compressed.

The argument of the command is the name of the frequency file. The output
file is defined with the flag --output, or -o; by default the name of the
input file with a ".treemix.gz" extension.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting frequency file")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := alleles.ReadFreq(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	name := output
	if name == "" {
		name = strings.TrimSuffix(args[0], ".frq.strat") + ".treemix.gz"
	}
	if err := write(m, name); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%s: %d populations, %d SNPs\n", name, len(m.Populations()), len(m.SNPs()))
	return nil
}

func write(m *alleles.Matrix, name string) (err error) {
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

	z := gzip.NewWriter(f)
	if err := m.TreeMix(z); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
