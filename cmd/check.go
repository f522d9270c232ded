// Package cmd implements the downify command-line interface.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/downify/downify/api"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/style"
	"github.com/downify/downify/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Duration("timeout", 10*time.Second, "Give up after this long")
}

// checkCmd verifies that the configured service answers its health check.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the extraction service is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		client := api.FromConfig()

		erase := util.PrintErasable(fmt.Sprintf("%s Checking %s...", icon.Get(icon.Progress), client.BaseURL()))
		err := client.Health(ctx)
		erase()

		if err != nil {
			printUnreachable(client.BaseURL(), err)
			handleErr(err)
		}

		fmt.Printf("%s %s is up\n", icon.Get(icon.Success), style.Fg(style.AccentColor)(client.BaseURL()))
	},
}

func printUnreachable(service string, err error) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Service unreachable", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("No healthy service answered at %s:\n%v", service, err))
	suggestion := fmt.Sprintf(
		"\n\nStart the service or point the client at another one:\n  %s",
		style.New().Foreground(style.AccentColor).Bold(true).Render("downify config set service.url <url>"),
	)

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
