// Package cmd implements the downify command-line interface.
package cmd

import (
	"os"
	"sort"

	"github.com/downify/downify/color"
	"github.com/downify/downify/config"
	"github.com/downify/downify/style"
	"github.com/downify/downify/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")
	envCmd.Flags().BoolP("describe", "d", false, "Print the description of every variable")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  `Display the collection of supported environment variables and their current process values.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			setOnly   = lo.Must(cmd.Flags().GetBool("set-only"))
			unsetOnly = lo.Must(cmd.Flags().GetBool("unset-only"))
			describe  = lo.Must(cmd.Flags().GetBool("describe"))
		)

		descriptions := map[string]string{
			where.EnvConfigPath: "Directory holding the configuration file",
		}
		for _, field := range config.Default {
			descriptions[field.Env()] = field.Description
		}

		names := lo.Keys(descriptions)
		sort.Strings(names)

		for _, env := range names {
			value, present := os.LookupEnv(env)
			present = present && value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if describe {
				cmd.Println(style.Faint(descriptions[env]))
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}
