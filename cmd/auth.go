package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tubescribe/tubescribe/auth"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/config"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/open"
	"github.com/tubescribe/tubescribe/style"
)

const apiKeyPage = "https://aistudio.google.com/apikey"

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages the Gemini API key.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Gemini API key",
	Long: `Manage the Gemini API key.

The key is looked up in this order: the gemini.api_key config value
(or TUBESCRIBE_GEMINI_API_KEY), GEMINI_API_KEY, API_KEY and finally the system keyring.`,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authSetCmd.Flags().BoolP("open", "o", false, "Open the API key page in the browser first")
}

// authSetCmd stores a key in the system keyring.
var authSetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Save the API key to the system keyring",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string

		if len(args) == 1 {
			apiKey = args[0]
		} else {
			if lo.Must(cmd.Flags().GetBool("open")) {
				handleErr(open.URL(apiKeyPage))
			}

			prompt := &survey.Password{
				Message: "Gemini API key:",
				Help:    "Create one at " + apiKeyPage,
			}
			handleErr(survey.AskOne(prompt, &apiKey, survey.WithValidator(survey.Required)))
		}

		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			handleErr(errors.New("api key is empty"))
		}

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf(
			"%s saved key %s to the keyring\n",
			style.Fg(color.Green)(icon.Get(icon.Check)),
			style.Fg(color.Yellow)(config.Mask(apiKey)),
		)
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

// authStatusCmd reports which source provides the key.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key is resolved from",
	Run: func(cmd *cobra.Command, args []string) {
		resolved, ok := auth.ResolveAPIKey().Get()
		if !ok {
			handleErr(errors.New("no api key found, run `tubescribe auth set`"))
		}

		origin := string(resolved.Origin)
		if resolved.Name != "" {
			origin += " (" + resolved.Name + ")"
		}

		fmt.Printf(
			"%s using key %s from %s\n",
			style.Fg(color.Green)(icon.Get(icon.Check)),
			style.Fg(color.Yellow)(config.Mask(resolved.Key)),
			style.Fg(color.Purple)(origin),
		)
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

// authDeleteCmd removes the key from the keyring.
var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the API key from the system keyring",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s removed key from the keyring\n", style.Fg(color.Green)(icon.Get(icon.Check)))
	},
}
