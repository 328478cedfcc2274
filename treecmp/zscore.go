// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treecmp

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// A Difference is the delta of one distance
// between the two trees,
// with its standard score.
type Difference struct {
	Key   string  `json:"key"`
	Delta float64 `json:"delta"`
	Z     float64 `json:"z_score"`
}

// A ZScore is the distributional comparison
// of two distance collections.
type ZScore struct {
	MeanDelta   float64      `json:"mean_delta"`
	StdDelta    float64      `json:"std_delta"`
	Differences []Difference `json:"differences"`
}

// zScore compares two distance collections
// over their key intersection.
// The standard score of each delta
// uses the population standard deviation;
// with a zero deviation every score degrades to 0.
// Entries are sorted by key for reproducibility.
func zScore(d1, d2 map[string]float64) ZScore {
	keys := make([]string, 0, len(d1))
	for k := range d1 {
		if _, ok := d2[k]; ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	zs := ZScore{Differences: make([]Difference, 0, len(keys))}
	if len(keys) == 0 {
		return zs
	}

	deltas := make([]float64, len(keys))
	for i, k := range keys {
		deltas[i] = d1[k] - d2[k]
	}
	zs.MeanDelta = stat.Mean(deltas, nil)
	zs.StdDelta = stat.PopStdDev(deltas, nil)

	for i, k := range keys {
		var z float64
		if zs.StdDelta != 0 {
			z = (deltas[i] - zs.MeanDelta) / zs.StdDelta
		}
		zs.Differences = append(zs.Differences, Difference{
			Key:   k,
			Delta: deltas[i],
			Z:     z,
		})
	}
	return zs
}
