package cmd

import (
	"os"

	"github.com/tubescribe/tubescribe/auth"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/config"
	"github.com/tubescribe/tubescribe/style"
	"github.com/tubescribe/tubescribe/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envCmd lists the environment variables tubescribe reads. Secrets are masked.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables and their values",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		secrets := secretEnvs()
		envs := lo.Map(config.EnvExposed, func(k string, _ int) string {
			field := config.Default[k]
			return field.Env()
		})
		envs = append(envs, where.EnvConfigPath, where.EnvExportsPath)
		envs = append(envs, auth.FallbackEnv...)
		slices.Sort(envs)

		for _, env := range envs {
			value := os.Getenv(env)
			present := value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				if lo.Contains(secrets, env) {
					value = config.Mask(value)
				}
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}

func secretEnvs() []string {
	secrets := lo.FilterMap(lo.Values(config.Default), func(f config.Field, _ int) (string, bool) {
		return f.Env(), f.Secret
	})
	return append(secrets, auth.FallbackEnv...)
}
