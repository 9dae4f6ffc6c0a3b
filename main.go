// Package main is the entry point for tubescribe.
package main

import (
	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/cmd"
	"github.com/tubescribe/tubescribe/config"
	"github.com/tubescribe/tubescribe/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
