package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/where"
)

type clearTarget struct {
	name  string
	flag  string
	short string
	path  func() string
	// clear removes the target. Nil deletes path entirely.
	clear func(path string) error
	// confirm asks before deleting user files.
	confirm bool
}

var clearTargets = []clearTarget{
	{name: "cache directory", flag: "cache", short: "c", path: where.Cache},
	{name: "logs directory", flag: "logs", short: "l", path: where.Logs},
	{name: "temp directory", flag: "temp", short: "t", path: where.Temp},
	{name: "exported transcriptions", flag: "exports", short: "e", path: exportDir, clear: clearExports, confirm: true},
}

// clearExports removes only exported files, since export.dir may be shared.
func clearExports(dir string) error {
	removed, err := export.Clean(dir)
	for _, path := range removed {
		log.With(log.Fields{"path": path}).Info("removed export")
	}
	return err
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "clear "+t.name)
	}
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// clearCmd deletes cached and generated files.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached and generated files",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		assumeYes := lo.Must(cmd.Flags().GetBool("yes"))

		for _, t := range selected {
			if t.confirm && !assumeYes {
				var ok bool
				handleErr(survey.AskOne(&survey.Confirm{
					Message: fmt.Sprintf("Delete exported files in %s?", t.path()),
				}, &ok))
				if !ok {
					continue
				}
			}

			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Processing), t.name))
			remove := lo.Ternary(t.clear != nil, t.clear, util.Delete)
			err := remove(t.path())
			erase()
			if !errors.Is(err, os.ErrNotExist) {
				handleErr(err)
			}

			fmt.Printf("%s %s cleared\n", icon.Get(icon.Check), util.Capitalize(t.name))
		}
	},
}
