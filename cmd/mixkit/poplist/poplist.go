// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package poplist is a metapackage for commands
// that dealt with population lists.
package poplist

import (
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/filter"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/outgroup"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/pops"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/reduce"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/remove"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist/sample"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "poplist <command> [<argument>...]",
	Short: "commands for population lists",
}

func init() {
	Command.Add(filter.Command)
	Command.Add(outgroup.Command)
	Command.Add(pops.Command)
	Command.Add(reduce.Command)
	Command.Add(remove.Command)
	Command.Add(sample.Command)
}
