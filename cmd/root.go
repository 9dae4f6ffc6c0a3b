// Package cmd implements the command-line interface for tubescribe.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/gemini"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/log"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/tui"
	"github.com/tubescribe/tubescribe/util"
	"github.com/tubescribe/tubescribe/version"
	"github.com/tubescribe/tubescribe/where"
	cc "github.com/ivanpirog/coloredcobra"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("model", "m", "", "Gemini model used for retrieval")
	lo.Must0(viper.BindPFlag(key.GeminiModel, rootCmd.PersistentFlags().Lookup("model")))

	rootCmd.PersistentFlags().Bool("no-search", false, "Disable Google Search grounding")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens the interactive interface. Positional arguments pre-fill the links input.
var rootCmd = &cobra.Command{
	Use:   constant.Tubescribe + " [links...]",
	Short: "Retrieve titles and transcriptions of YouTube videos",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - "+constant.Tagline),
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store, err := newStore(ctx, cmd)
		handleErr(err)

		options := tui.Options{
			Store:        store,
			Context:      ctx,
			ExportDir:    exportDir(),
			Initial:      strings.Join(args, "\n"),
			ConfirmClear: viper.GetBool(key.TUIConfirmClear),
		}
		handleErr(tui.Run(&options))
	},
}

// newStore wires the Gemini client into a result store.
func newStore(ctx context.Context, cmd *cobra.Command) (*batch.Store, error) {
	cfg, err := gemini.ConfigFromViper()
	if err != nil {
		return nil, err
	}

	if lo.Must(cmd.Flags().GetBool("no-search")) {
		cfg.Search = false
	}

	client, err := gemini.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.With(log.Fields{"model": client.Model(), "search": cfg.Search}).Debug("retriever ready")
	return batch.NewStore(client, batch.WithHosts(viper.GetStringSlice(key.IntakeHosts))), nil
}

func exportDir() string {
	if dir := viper.GetString(key.ExportDir); dir != "" {
		return dir
	}
	return where.Exports()
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Failed)(icon.Get(icon.Cross)), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
