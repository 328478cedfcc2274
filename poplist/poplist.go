// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package poplist implements reading, writing,
// and manipulation of PLINK population lists:
// tab-delimited files with a family ID,
// an individual ID,
// and a population name per row,
// without a header.
package poplist

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"golang.org/x/exp/rand"
)

// A Sample is an individual of a population.
type Sample struct {
	FID string
	IID string
	Pop string
}

// A List is a collection of individuals.
type List []Sample

// Read reads a population list from a TSV file
// with rows of the form
//
//	FID	IID	Population
//
// without a header.
func Read(r io.Reader) (List, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = 3

	var l List
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		l = append(l, Sample{
			FID: row[0],
			IID: row[1],
			Pop: row[2],
		})
	}
	if len(l) == 0 {
		return nil, errors.New("empty population list")
	}
	return l, nil
}

// TSV writes a population list
// as a headerless TSV file.
func (l List) TSV(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	for _, s := range l {
		if err := tsv.Write([]string{s.FID, s.IID, s.Pop}); err != nil {
			return err
		}
	}
	tsv.Flush()
	return tsv.Error()
}

// Populations returns the sorted unique population names
// of the list.
func (l List) Populations() []string {
	seen := make(map[string]bool)
	var pops []string
	for _, s := range l {
		if seen[s.Pop] {
			continue
		}
		seen[s.Pop] = true
		pops = append(pops, s.Pop)
	}
	slices.Sort(pops)
	return pops
}

// Remove returns the individuals of the indicated populations,
// to be used as a PLINK removal list,
// and the requested populations
// that are not present in the list.
func (l List) Remove(pops []string) (List, []string) {
	set := make(map[string]bool, len(pops))
	for _, p := range pops {
		set[p] = true
	}

	found := make(map[string]bool)
	var rm List
	for _, s := range l {
		if !set[s.Pop] {
			continue
		}
		found[s.Pop] = true
		rm = append(rm, s)
	}

	var missing []string
	for _, p := range pops {
		if !found[p] {
			missing = append(missing, p)
		}
	}
	slices.Sort(missing)
	return rm, missing
}

// A Popmap maps a population name
// to the continent it belongs to.
type Popmap map[string]string

// ReadPopmap reads a population to continent map
// from a JSON document.
func ReadPopmap(r io.Reader) (Popmap, error) {
	var m Popmap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid population map: %v", err)
	}
	return m, nil
}

// RemoveContinent returns the individuals
// whose population belongs to the indicated continent,
// to be used as a PLINK removal list.
func (l List) RemoveContinent(continent string, m Popmap) List {
	var rm List
	for _, s := range l {
		if m[s.Pop] == continent {
			rm = append(rm, s)
		}
	}
	return rm
}

// RandomRemove randomly selects a fraction
// of the populations of the list for removal,
// distributing the selection across continents
// in proportion to their population counts.
// It returns the individuals of the selected populations.
func (l List) RandomRemove(frac float64, m Popmap, rng *rand.Rand) List {
	byCont := make(map[string][]string)
	for _, p := range l.Populations() {
		c := m[p]
		byCont[c] = append(byCont[c], p)
	}
	conts := make([]string, 0, len(byCont))
	var total int
	for c, pops := range byCont {
		conts = append(conts, c)
		total += len(pops)
	}
	slices.Sort(conts)

	toRemove := int(float64(total) * frac)
	sel := make(map[string]bool)
	for _, c := range conts {
		pops := byCont[c]
		if len(pops) < 2 {
			continue
		}
		n := int(math.Max(1, float64(len(pops))/float64(total)*float64(toRemove)))
		if n > len(pops) {
			n = len(pops)
		}
		for _, i := range rng.Perm(len(pops))[:n] {
			sel[pops[i]] = true
		}
	}

	var rm List
	for _, s := range l {
		if sel[s.Pop] {
			rm = append(rm, s)
		}
	}
	return rm
}

// Reduce caps the indicated populations
// at max individuals each,
// keeping every other population untouched.
// It returns the reduced list,
// preserving the input row order,
// and the requested populations
// that are not present in the list.
func (l List) Reduce(pops []string, max int, rng *rand.Rand) (List, []string) {
	set := make(map[string]bool, len(pops))
	for _, p := range pops {
		set[p] = true
	}

	found := make(map[string]bool)
	byPop := make(map[string]List)
	for _, s := range l {
		if !set[s.Pop] {
			continue
		}
		found[s.Pop] = true
		byPop[s.Pop] = append(byPop[s.Pop], s)
	}

	keep := make(map[string]map[string]bool)
	for _, p := range pops {
		g := byPop[p]
		if len(g) <= max {
			continue
		}
		ids := make(map[string]bool, max)
		for _, i := range rng.Perm(len(g))[:max] {
			ids[g[i].IID] = true
		}
		keep[p] = ids
	}

	out := make(List, 0, len(l))
	for _, s := range l {
		if ids, ok := keep[s.Pop]; ok && !ids[s.IID] {
			continue
		}
		out = append(out, s)
	}

	var missing []string
	for _, p := range pops {
		if !found[p] {
			missing = append(missing, p)
		}
	}
	slices.Sort(missing)
	return out, missing
}

// SampleSizes reduces randomly chosen populations
// to n individuals each.
// If pops is zero or negative,
// every population of the list is reduced.
// It returns the new list,
// preserving the input row order,
// and the sorted names of the reduced populations.
func (l List) SampleSizes(n, pops int, rng *rand.Rand) (List, []string, error) {
	if n < 1 {
		return nil, nil, errors.New("at least one individual per population is required")
	}

	all := l.Populations()
	sel := all
	if pops > 0 {
		if pops > len(all) {
			return nil, nil, fmt.Errorf("requested %d populations, the list has %d", pops, len(all))
		}
		sel = make([]string, 0, pops)
		for _, i := range rng.Perm(len(all))[:pops] {
			sel = append(sel, all[i])
		}
		slices.Sort(sel)
	}

	out, _ := l.Reduce(sel, n, rng)
	return out, sel, nil
}

// Valid outgroup kinds.
const (
	Denisova = "deni"
	Vindija  = "vindija"
	Both     = "both"
)

// Outgroup returns a new list
// with the indicated archaic outgroup individuals appended.
func (l List) Outgroup(kind string) (List, error) {
	deni := Sample{FID: "Denisova", IID: "Denisova", Pop: "Denisovan"}
	vind := Sample{FID: "Vindija", IID: "Vindija", Pop: "Vindija"}

	out := slices.Clone(l)
	switch kind {
	case Denisova:
		out = append(out, deni)
	case Vindija:
		out = append(out, vind)
	case Both:
		out = append(out, deni, vind)
	default:
		return nil, fmt.Errorf("invalid outgroup %q", kind)
	}
	return out, nil
}

// KeepIIDPrefix returns the individuals
// whose individual ID starts with the given prefix.
func (l List) KeepIIDPrefix(prefix string) List {
	var out List
	for _, s := range l {
		if len(s.IID) >= len(prefix) && s.IID[:len(prefix)] == prefix {
			out = append(out, s)
		}
	}
	return out
}

// DropPopSuffix returns the individuals
// whose population name does not end with the given suffix.
func (l List) DropPopSuffix(suffix string) List {
	var out List
	for _, s := range l {
		if len(s.Pop) >= len(suffix) && s.Pop[len(s.Pop)-len(suffix):] == suffix {
			continue
		}
		out = append(out, s)
	}
	return out
}
