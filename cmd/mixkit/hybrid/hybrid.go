// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package hybrid is a metapackage for commands
// that build artificial hybrid populations.
package hybrid

import (
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/hybrid/lists"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/hybrid/split"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/hybrid/structure"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "hybrid <command> [<argument>...]",
	Short: "commands for artificial hybrid populations",
}

func init() {
	Command.Add(lists.Command)
	Command.Add(split.Command)
	Command.Add(structure.Command)
}
