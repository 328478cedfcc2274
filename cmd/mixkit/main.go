// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// MixKit is a tool to manage and compare TreeMix analyses.
package main

import (
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/batch"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/compare"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/convert"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/hybrid"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/migration"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/poplist"
	"github.com/ChandrashekarCR/TreeMix-Workflow/cmd/mixkit/prj"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "mixkit <command> [<argument>...]",
	Short: "a tool to manage and compare TreeMix analyses",
}

func init() {
	app.Add(batch.Command)
	app.Add(compare.Command)
	app.Add(convert.Command)
	app.Add(hybrid.Command)
	app.Add(migration.Command)
	app.Add(poplist.Command)
	app.Add(prj.Command)
}

func main() {
	app.Main()
}
