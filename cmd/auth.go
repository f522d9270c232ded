// Package cmd implements the downify command-line interface.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/downify/downify/auth"
	"github.com/downify/downify/color"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authRemoveCmd)

	authSetCmd.Flags().String("token", "", "Token to store instead of prompting for it")
}

// authCmd manages the bearer token sent to the service.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the service access token stored in the system keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the service access token",
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			prompt := &survey.Password{Message: "Service token:"}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"delete"},
	Short:   "Remove the stored service access token",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
