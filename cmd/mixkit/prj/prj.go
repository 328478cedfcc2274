// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project,
// and to set its datasets.
package prj

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/ChandrashekarCR/TreeMix-Workflow/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "prj [--add <dataset>] [--path <path>] <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads an experiment project and prints the information of the
different project datasets into the standard output.

The argument of the command is the name of the project file.

If the flag --add is set, with the flag --path, the indicated dataset will be
added to the project (creating the project file if needed), and nothing will
be printed. Valid datasets are:

	baseline	directory with the baseline TreeMix output files
	poplist 	file with the population list of the experiment
	popmap  	JSON file with population to continent pairs
	results 	directory for the comparison results
	trees   	directory with the experiment TreeMix output files
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFlag string
var pathFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFlag, "add", "", "")
	c.Flags().StringVar(&pathFlag, "path", "", "")
}

var validSets = map[project.Dataset]bool{
	project.Baseline: true,
	project.Poplist:  true,
	project.Popmap:   true,
	project.Results:  true,
	project.Trees:    true,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	if addFlag != "" {
		return addDataset(args[0])
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	for _, s := range p.Sets() {
		switch s {
		case project.Baseline, project.Trees:
			if err := printTreeDir(c.Stdout(), p, s); err != nil {
				return err
			}
		case project.Poplist:
			if err := printPopList(c.Stdout(), p); err != nil {
				return err
			}
		case project.Popmap:
			if err := printPopMap(c.Stdout(), p); err != nil {
				return err
			}
		default:
			fmt.Fprintf(c.Stdout(), "%s:\n\tpath: %s\n\n", s, p.Path(s))
		}
	}
	return nil
}

func addDataset(name string) error {
	set := project.Dataset(addFlag)
	if !validSets[set] {
		return fmt.Errorf("invalid dataset %q", addFlag)
	}
	if pathFlag == "" {
		return errors.New("expecting --path flag")
	}

	p, err := project.Read(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		p = project.New()
		p.SetName(name)
	}

	p.Add(set, pathFlag)
	return p.Write()
}

func printTreeDir(w io.Writer, p *project.Project, s project.Dataset) error {
	files, err := p.TreeFiles(s)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", s)
	fmt.Fprintf(w, "\tpath: %s\n", p.Path(s))
	fmt.Fprintf(w, "\tTreeMix output files: %d\n", len(files))
	fmt.Fprintf(w, "\n")
	return nil
}

func printPopList(w io.Writer, p *project.Project) error {
	l, err := p.PopList()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", project.Poplist)
	fmt.Fprintf(w, "\tpath: %s\n", p.Path(project.Poplist))
	fmt.Fprintf(w, "\tindividuals: %d\n", len(l))
	fmt.Fprintf(w, "\tpopulations: %d\n", len(l.Populations()))
	fmt.Fprintf(w, "\n")
	return nil
}

func printPopMap(w io.Writer, p *project.Project) error {
	m, err := p.PopMap()
	if err != nil {
		return err
	}

	continents := make(map[string]bool)
	for _, c := range m {
		continents[c] = true
	}

	fmt.Fprintf(w, "%s:\n", project.Popmap)
	fmt.Fprintf(w, "\tpath: %s\n", p.Path(project.Popmap))
	fmt.Fprintf(w, "\tassigned populations: %d\n", len(m))
	fmt.Fprintf(w, "\tcontinents: %d\n", len(continents))
	fmt.Fprintf(w, "\n")
	return nil
}
