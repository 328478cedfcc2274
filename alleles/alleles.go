// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package alleles implements the conversion
// of PLINK stratified allele frequencies
// (".frq.strat" files)
// into the allele count matrix
// consumed by TreeMix.
package alleles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Counts are the allele counts
// of one SNP in one population.
type Counts struct {
	Ref int
	Alt int
}

// A Matrix holds per-population allele counts
// for an ordered list of SNPs.
type Matrix struct {
	snps   []string
	pops   map[string]bool
	counts map[string]map[string]Counts
}

// ReadFreq reads a PLINK stratified frequency file.
// The first line is a header and is skipped.
// Each data row must have at least 8 columns:
// the SNP ID in the second,
// the cluster (population) in the third,
// the minor allele count in the seventh,
// and the total observation count in the eighth.
func ReadFreq(r io.Reader) (*Matrix, error) {
	m := &Matrix{
		pops:   make(map[string]bool),
		counts: make(map[string]map[string]Counts),
	}

	sc := bufio.NewScanner(r)
	header := true
	for ln := 1; sc.Scan(); ln++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if header {
			header = false
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("row %d: got %d fields, expecting at least 8", ln, len(fields))
		}

		snp := fields[1]
		pop := fields[2]
		mac, err := strconv.ParseFloat(fields[6], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid allele count: %v", ln, err)
		}
		tot, err := strconv.ParseFloat(fields[7], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid observation count: %v", ln, err)
		}
		ref := int(mac)
		alt := int(tot) - ref
		if ref < 0 || alt < 0 {
			return nil, fmt.Errorf("row %d: negative allele count", ln)
		}

		m.pops[pop] = true
		if _, ok := m.counts[snp]; !ok {
			m.counts[snp] = make(map[string]Counts)
			m.snps = append(m.snps, snp)
		}
		m.counts[snp][pop] = Counts{Ref: ref, Alt: alt}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.snps) == 0 {
		return nil, errors.New("empty frequency file")
	}
	return m, nil
}

// Populations returns the sorted population names
// of the matrix.
func (m *Matrix) Populations() []string {
	pops := make([]string, 0, len(m.pops))
	for p := range m.pops {
		pops = append(pops, p)
	}
	slices.Sort(pops)
	return pops
}

// SNPs returns the SNP IDs of the matrix
// in input order.
func (m *Matrix) SNPs() []string {
	return slices.Clone(m.snps)
}

// Count returns the allele counts
// of a SNP in a population.
// A missing combination counts as 0,0.
func (m *Matrix) Count(snp, pop string) Counts {
	return m.counts[snp][pop]
}

// TreeMix writes the matrix in TreeMix input format:
// a header with the space-separated population names,
// then one row per SNP
// with a "ref,alt" pair per population.
func (m *Matrix) TreeMix(w io.Writer) error {
	bw := bufio.NewWriter(w)
	pops := m.Populations()

	if _, err := fmt.Fprintf(bw, "%s\n", strings.Join(pops, " ")); err != nil {
		return err
	}
	for _, snp := range m.snps {
		row := make([]string, 0, len(pops))
		for _, p := range pops {
			c := m.counts[snp][p]
			row = append(row, fmt.Sprintf("%d,%d", c.Ref, c.Alt))
		}
		if _, err := fmt.Fprintf(bw, "%s\n", strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
