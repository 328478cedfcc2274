// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ped implements reading and writing
// of PLINK pedigree (".ped") files,
// and the construction of SNP-split hybrid individuals.
package ped

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// An Individual is a row of a pedigree file:
// six metadata columns
// followed by two allele columns per SNP.
type Individual struct {
	FID       string
	IID       string
	PID       string
	MID       string
	Sex       string
	Phenotype string

	// Alleles holds two entries per SNP.
	Alleles []string
}

// SNPs returns the number of SNPs of an individual.
func (i Individual) SNPs() int {
	return len(i.Alleles) / 2
}

// Read reads a pedigree file.
// All individuals must have the same number of SNPs.
func Read(r io.Reader) ([]Individual, error) {
	var inds []Individual

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 6 {
			return nil, fmt.Errorf("row %d: got %d fields, expecting at least 6", ln, len(fields))
		}
		alleles := fields[6:]
		if len(alleles)%2 != 0 {
			return nil, fmt.Errorf("row %d: odd allele count", ln)
		}
		if len(inds) > 0 && len(alleles) != len(inds[0].Alleles) {
			return nil, fmt.Errorf("row %d: got %d SNPs, expecting %d", ln, len(alleles)/2, inds[0].SNPs())
		}
		inds = append(inds, Individual{
			FID:       fields[0],
			IID:       fields[1],
			PID:       fields[2],
			MID:       fields[3],
			Sex:       fields[4],
			Phenotype: fields[5],
			Alleles:   alleles,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(inds) == 0 {
		return nil, errors.New("empty pedigree file")
	}
	return inds, nil
}

// Write writes a pedigree file
// with space-separated columns.
func Write(w io.Writer, inds []Individual) error {
	bw := bufio.NewWriter(w)
	for _, i := range inds {
		fields := append([]string{i.FID, i.IID, i.PID, i.MID, i.Sex, i.Phenotype}, i.Alleles...)
		if _, err := fmt.Fprintf(bw, "%s\n", strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SplitHybrids builds hybrid individuals
// by combining contiguous SNP blocks
// from successive source populations.
//
// The input individuals must be grouped
// in equal-sized population blocks,
// in the order of the pops argument.
// One hybrid is built per individual rank:
// its genotype takes the i-th SNP block
// from the i-th population,
// with the last block absorbing any remainder.
func SplitHybrids(inds []Individual, label string, pops []string) ([]Individual, error) {
	if len(pops) == 0 {
		return nil, errors.New("expecting at least one source population")
	}
	if len(inds)%len(pops) != 0 {
		return nil, fmt.Errorf("%d individuals are not divisible by %d populations", len(inds), len(pops))
	}
	perPop := len(inds) / len(pops)
	snps := inds[0].SNPs()
	block := snps / len(pops)

	hybrids := make([]Individual, 0, perPop)
	for i := 0; i < perPop; i++ {
		id := fmt.Sprintf("%s_%d", label, i)
		h := Individual{
			FID:       id,
			IID:       id,
			PID:       "0",
			MID:       "0",
			Sex:       "1",
			Phenotype: "-9",
			Alleles:   make([]string, 0, snps*2),
		}
		for b := range pops {
			src := inds[b*perPop+i]
			start := b * block
			end := (b + 1) * block
			if b == len(pops)-1 {
				end = snps
			}
			h.Alleles = append(h.Alleles, src.Alleles[start*2:end*2]...)
		}
		if h.SNPs() != snps {
			return nil, fmt.Errorf("hybrid %s: got %d SNPs, expecting %d", id, h.SNPs(), snps)
		}
		hybrids = append(hybrids, h)
	}
	return hybrids, nil
}
