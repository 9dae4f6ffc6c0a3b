package cmd

import (
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/export"
	"github.com/tubescribe/tubescribe/filesystem"
	"github.com/tubescribe/tubescribe/inline"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/util"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("file", "f", "", "Read links from a file")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("export", "e", "", "Also save completed transcriptions as files (txt or doc)")
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("export", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(export.Formats(), func(f export.Format, _ int) string { return string(f) }), cobra.ShellCompDirectiveNoFileComp
	}))
	inlineCmd.Flags().BoolP("save", "s", false, "Also save completed transcriptions in the export.format setting")
	inlineCmd.Flags().StringP("dir", "d", "", "Directory for exported files")
	lo.Must0(viper.BindPFlag(key.ExportDir, inlineCmd.Flags().Lookup("dir")))

	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	inlineCmd.Flags().BoolP("quiet", "q", false, "Do not print progress to stderr")
}

// inlineCmd runs one batch without the interactive interface.
var inlineCmd = &cobra.Command{
	Use:   "inline [links...]",
	Short: "Process links non-interactively and print the results",
	Long: `Process links non-interactively and print the results.

Links are read from the arguments, the --file flag and, when it is not a
terminal, stdin. They may be separated by newlines or commas.

--save exports completed transcriptions in the export.format setting,
--export picks the format explicitly.`,
	Example: `  tubescribe inline https://youtu.be/dQw4w9WgXcQ
  tubescribe inline --json --export doc < links.txt
  tubescribe inline --save --file links.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var stdin io.Reader
		if !util.IsTerminal(os.Stdin) {
			stdin = os.Stdin
		}

		text, err := inline.Input(args, lo.Must(cmd.Flags().GetString("file")), stdin)
		handleErr(err)

		exportFormat, err := exportOption(cmd)
		handleErr(err)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		var progress io.Writer
		if !lo.Must(cmd.Flags().GetBool("quiet")) && util.IsTerminal(os.Stderr) {
			progress = os.Stderr
		}

		store, err := newStore(ctx, cmd)
		handleErr(err)

		_, err = inline.Run(&inline.Options{
			Context:  ctx,
			Store:    store,
			Text:     text,
			Out:      writer,
			Progress: progress,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Export:   exportFormat,
			Dir:      exportDir(),
		})
		handleErr(err)
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd prints the JSON schema of the --json output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for the structured inline output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(outputSchema()))
	},
}

func outputSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "result", "source", "summary", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&inline.Output{})
}

// exportOption resolves --export and --save. An explicit --export wins,
// --save alone falls back to export.format.
func exportOption(cmd *cobra.Command) (mo.Option[export.Format], error) {
	if name := lo.Must(cmd.Flags().GetString("export")); name != "" {
		f, err := export.ParseFormat(name)
		if err != nil {
			return mo.None[export.Format](), err
		}
		return mo.Some(f), nil
	}

	if lo.Must(cmd.Flags().GetBool("save")) {
		return mo.Some(export.DefaultFormat()), nil
	}

	return mo.None[export.Format](), nil
}
