package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/where"
)

type whereTarget struct {
	name   string
	flag   string
	short  string
	path   func() string
	hidden bool
}

var whereTargets = []whereTarget{
	{name: "Config", flag: "config", short: "c", path: where.Config},
	{name: "Exports", flag: "exports", short: "e", path: where.Exports},
	{name: "Logs", flag: "logs", short: "l", path: where.Logs},
	{name: "Cache", flag: "cache", path: where.Cache, hidden: true},
	{name: "Temp", flag: "temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range whereTargets {
		whereCmd.Flags().BoolP(t.flag, t.short, false, t.name+" path")
		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(t whereTarget, _ int) string { return t.flag })...)
	whereCmd.Flags().BoolP("json", "j", false, "Print all paths as a JSON object")

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints the directories tubescribe reads and writes.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, exports and logs are stored",
	Run: func(cmd *cobra.Command, args []string) {
		if t, ok := lo.Find(whereTargets, func(t whereTarget) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		}); ok {
			cmd.Println(t.path())
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			paths := lo.SliceToMap(whereTargets, func(t whereTarget) (string, string) { return t.flag, t.path() })
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(whereTargets, func(t whereTarget, _ int) bool { return t.hidden })

		for i, t := range visible {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.path())
		}
	},
}
