package cmd

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print build information as JSON")
}

type buildInfo struct {
	App      string `json:"app"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
	BuiltAt  string `json:"builtAt"`
	BuiltBy  string `json:"builtBy"`
	Platform string `json:"platform"`
	Model    string `json:"model"`
}

func currentBuild() buildInfo {
	return buildInfo{
		App:      constant.Tubescribe,
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Model:    viper.GetString(key.GeminiModel),
	}
}

var versionTemplate = template.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}       {{ bold .Version }}
  {{ faint "Git Commit" }}    {{ bold .Revision }}
  {{ faint "Build Date" }}    {{ bold .BuiltAt }}
  {{ faint "Built By" }}      {{ bold .BuiltBy }}
  {{ faint "Platform" }}      {{ bold .Platform }}
  {{ faint "Gemini Model" }}  {{ bold .Model }}
`))

// versionCmd prints build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := currentBuild()

		switch {
		case lo.Must(cmd.Flags().GetBool("short")):
			cmd.Println(info.Version)
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
		default:
			handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
			version.Notify()
		}
	},
}
