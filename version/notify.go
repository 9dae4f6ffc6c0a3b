// Package version checks for newer releases and compares semantic versions.
package version

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/util"
)

// Notify prints a banner when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Processing)))
	version, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+version),
	)
}
