// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package poplist

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/rand"
)

// A Structure maps the name of a hybrid population
// to its ordered source populations.
type Structure map[string][]string

// ReadStructure reads a hybrid structure
// from a JSON document of the form
//
//	{"Pop1-Pop2": ["Pop1", "Pop2"]}
func ReadStructure(r io.Reader) (Structure, error) {
	var s Structure
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid hybrid structure: %v", err)
	}
	return s, nil
}

// JSON writes a hybrid structure
// as an indented JSON document.
func (s Structure) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Hybrids returns the sorted hybrid names
// of the structure.
func (s Structure) Hybrids() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Structures returns a canned hybrid structure
// with the given number of source populations per hybrid.
// Valid values are 2, 5, and 51.
func Structures(popsPerHybrid int) (Structure, error) {
	switch popsPerHybrid {
	case 2:
		return Structure{
			"Tuscan-Yoruba":            {"Tuscan", "Yoruba"},
			"French-Japanese":          {"French", "Japanese"},
			"BantuSouthAfrica-Bedouin": {"BantuSouthAfrica", "Bedouin"},
			"Maya-BergamoItalian":      {"Maya", "BergamoItalian"},
			"Mandenka-Han":             {"Mandenka", "Han"},
			"Burusho-Pima":             {"Burusho", "Pima"},
			"Basque-Cambodian":         {"Basque", "Cambodian"},
			"Adygei-Colombian":         {"Adygei", "Colombian"},
			"Mbuti-Bougainville":       {"Mbuti", "Bougainville"},
			"Biaka-Palestinian":        {"Biaka", "Palestinian"},
		}, nil
	case 5:
		return Structure{
			"Yoruba-BergamoItalian-Bedouin-Japanese-Maya": {"Yoruba", "BergamoItalian", "Bedouin", "Japanese", "Maya"},
			"Mbuti-French-Burusho-Bougainville-Pima":      {"Mbuti", "French", "Burusho", "Bougainville", "Pima"},
			"Mandenka-Adygei-Sindhi-Mongola-Colombian":    {"Mandenka", "Adygei", "Sindhi", "Mongola", "Colombian"},
			"BantuSouthAfrica-Kalash-Basque-Han-Surui":    {"BantuSouthAfrica", "Kalash", "Basque", "Han", "Surui"},
		}, nil
	case 51:
		return Structure{
			"French-Mbuti-Burusho-Bougainville-Pima": {"French", "Mbuti", "Burusho", "Bougainville", "Pima"},
			"Mbuti-French-Burusho-Bougainville-Pima": {"Mbuti", "French", "Burusho", "Bougainville", "Pima"},
			"French-Burusho-Mbuti-Bougainville-Pima": {"French", "Burusho", "Mbuti", "Bougainville", "Pima"},
		}, nil
	}
	return nil, fmt.Errorf("invalid populations per hybrid: %d", popsPerHybrid)
}

// KeepLists builds,
// for every hybrid of a structure,
// the list of source individuals
// to be kept with PLINK,
// trimming every source population
// to the size of the smallest one.
// It also returns a new population list
// with the hybrid individuals appended.
// Hybrids with an empty source population are skipped
// and reported in the third return value.
func (l List) KeepLists(s Structure, rng *rand.Rand) (map[string]List, List, []string) {
	byPop := make(map[string]List)
	for _, smp := range l {
		byPop[smp.Pop] = append(byPop[smp.Pop], smp)
	}

	keep := make(map[string]List, len(s))
	updated := slices.Clone(l)
	var skipped []string

	for _, name := range s.Hybrids() {
		groups := make([]List, 0, len(s[name]))
		n := -1
		for _, p := range s[name] {
			g := byPop[p]
			groups = append(groups, g)
			if n < 0 || len(g) < n {
				n = len(g)
			}
		}
		if n < 1 {
			skipped = append(skipped, name)
			continue
		}

		var kl List
		for _, g := range groups {
			kl = append(kl, sample(g, n, rng)...)
		}
		keep[name] = kl

		for i := 0; i < n; i++ {
			id := fmt.Sprintf("%s_%d", name, i)
			updated = append(updated, Sample{
				FID: id,
				IID: id,
				Pop: name,
			})
		}
	}
	return keep, updated, skipped
}

// sample returns n random individuals of a list,
// preserving their input order.
func sample(l List, n int, rng *rand.Rand) List {
	if n >= len(l) {
		return slices.Clone(l)
	}
	idx := rng.Perm(len(l))[:n]
	slices.Sort(idx)

	out := make(List, 0, n)
	for _, i := range idx {
		out = append(out, l[i])
	}
	return out
}
