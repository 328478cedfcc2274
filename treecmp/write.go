// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treecmp

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes the full comparison result
// as an indented JSON document.
func (r *Result) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Differences writes the taxa with differing siblings,
// one per line.
func (r *Result) Differences(w io.Writer) error {
	for _, p := range r.Siblings.DifferentPopulations {
		if _, err := fmt.Fprintf(w, "%s\n", p); err != nil {
			return err
		}
	}
	return nil
}

// MigrationJSON writes the migration edges
// attached to the result
// as an indented JSON document.
func (r *Result) MigrationJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.MigrationEdges)
}
