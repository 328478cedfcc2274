// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChandrashekarCR/TreeMix-Workflow/poplist"
)

// PopList reads the population list
// as defined in a project.
func (p *Project) PopList() (poplist.List, error) {
	name := p.Path(Poplist)
	if name == "" {
		return nil, fmt.Errorf("population list not defined in project %q", p.name)
	}

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

// PopMap reads the population to continent assignments
// as defined in a project.
func (p *Project) PopMap() (poplist.Popmap, error) {
	name := p.Path(Popmap)
	if name == "" {
		return nil, fmt.Errorf("population map not defined in project %q", p.name)
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

// TreeFiles returns the TreeMix output files
// of a directory dataset,
// either Trees or Baseline.
func (p *Project) TreeFiles(set Dataset) ([]string, error) {
	dir := p.Path(set)
	if dir == "" {
		return nil, fmt.Errorf("%s directory not defined in project %q", set, p.name)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.treeout.gz"))
	if err != nil {
		return nil, err
	}
	return files, nil
}
