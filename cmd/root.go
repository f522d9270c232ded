// Package cmd implements the downify command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/downify/downify/api"
	"github.com/downify/downify/color"
	"github.com/downify/downify/config"
	"github.com/downify/downify/constant"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/key"
	"github.com/downify/downify/log"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/style"
	"github.com/downify/downify/tui"
	"github.com/downify/downify/util"
	"github.com/downify/downify/version"
	"github.com/downify/downify/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("service", "", "Base URL of the extraction service")
	lo.Must0(viper.BindPFlag(key.ServiceURL, rootCmd.PersistentFlags().Lookup("service")))

	rootCmd.Flags().StringP("tab", "t", "", "Tab selected on start")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("tab", completionModes))
	lo.Must0(viper.BindPFlag(key.TUIDefaultContext, rootCmd.Flags().Lookup("tab")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Leftovers of interrupted deliveries.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

func completionModes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(platform.Modes, func(m platform.Mode, _ int) string {
		return m.String()
	}), cobra.ShellCompDirectiveNoFileComp
}

// rootCmd starts the interactive interface.
var rootCmd = &cobra.Command{
	Use:   constant.Downify,
	Short: "Fetch videos, audio and playlists through a downify service",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Fetch videos, audio and playlists through a downify service"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		client := api.FromConfig()
		store := newStore()
		downloads := where.Downloads()

		options := &tui.Options{
			Store:          store,
			Fetcher:        newFetcher(store, client),
			Orchestrator:   newOrchestrator(store, client, downloads),
			ProgressFloor:  viper.GetFloat64(key.DownloadProgressFloor),
			ResultLifetime: config.Millis(key.NotifySuccessLifetimeMs),
			OpenOnSave:     viper.GetBool(key.TUIOpenOnSave),
			Downloads:      downloads,
		}
		handleErr(tui.Run(options))
	},
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
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
