// Package cmd implements the downify command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/downify/downify/api"
	"github.com/downify/downify/config"
	"github.com/downify/downify/filesystem"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/inline"
	"github.com/downify/downify/key"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	"github.com/downify/downify/util"
	"github.com/downify/downify/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// confirmAbove is the number of playlist entries above which a download asks for confirmation.
const confirmAbove = 25

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(downloadCmd)

	for _, cmd := range []*cobra.Command{extractCmd, downloadCmd} {
		cmd.Flags().StringP("context", "c", "", "Platform context of the link: youtube, playlist or instagram")
		lo.Must0(cmd.RegisterFlagCompletionFunc("context", completionModes))
		cmd.Flags().StringP("kind", "k", "", "Media kind: video or audio")
		cmd.Flags().StringP("quality", "q", "", "Quality of the selected kind, e.g. 1080 or 320")
		cmd.Flags().StringP("range", "r", "", "Playlist entries to keep: all, 5, 2-8, 3- or -4")
		cmd.Flags().StringP("filter", "f", "", "Keep only playlist entries whose title fuzzily matches")
		cmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
		cmd.Flags().StringP("output", "o", "", "Write the command output to a file")
	}

	downloadCmd.Flags().StringP("dir", "d", "", "Directory to save the files into")
	lo.Must0(viper.BindPFlag(key.DownloadDir, downloadCmd.Flags().Lookup("dir")))
	downloadCmd.Flags().BoolP("yes", "y", false, "Do not ask before downloading large playlists")
}

// extractCmd prints the media descriptor of a link.
var extractCmd = &cobra.Command{
	Use:     "extract [url]",
	Short:   "Print the details of a video, reel or playlist",
	Args:    cobra.ExactArgs(1),
	Example: "  downify extract -c playlist -r 1-5 --json 'https://youtube.com/playlist?list=...'",
	Run: func(cmd *cobra.Command, args []string) {
		options, closeOut := inlineOptions(cmd, args[0])
		defer closeOut()

		ctx, stop := interruptible()
		defer stop()
		handleErr(inline.Run(ctx, options))
	},
}

// downloadCmd submits a link to the service and saves the produced files.
var downloadCmd = &cobra.Command{
	Use:     "download [url]",
	Short:   "Download a video, reel or playlist",
	Args:    cobra.ExactArgs(1),
	Example: "  downify download -k audio -q 320 'https://youtu.be/...'",
	Run: func(cmd *cobra.Command, args []string) {
		options, closeOut := inlineOptions(cmd, args[0])
		defer closeOut()

		if options.Context == platform.Playlist && !lo.Must(cmd.Flags().GetBool("yes")) {
			handleErr(confirmRange(options.Range))
		}

		options.Download = true
		options.Dir = where.Downloads()

		if !options.Json {
			options.Progress = progressPrinter()
		}

		ctx, stop := interruptible()
		defer stop()
		handleErr(inline.Run(ctx, options))
	},
}

// inlineOptions translates the shared flags. The returned func closes the output file, if any.
func inlineOptions(cmd *cobra.Command, url string) (*inline.Options, func()) {
	prefs := preferences()

	if s := lo.Must(cmd.Flags().GetString("kind")); s != "" {
		kind, err := media.ParseKind(s)
		handleErr(err)
		prefs.Kind = kind
	}

	if s := lo.Must(cmd.Flags().GetString("quality")); s != "" {
		q, err := media.ParseQuality(prefs.Kind, s)
		handleErr(err)
		prefs = withQuality(prefs, q)
	}

	mode := platform.Detect(url, platform.YouTube)
	if s := lo.Must(cmd.Flags().GetString("context")); s != "" {
		parsed, err := platform.Parse(s)
		handleErr(err)
		mode = parsed
	}

	r := mo.None[selection.Range]()
	if s := lo.Must(cmd.Flags().GetString("range")); s != "" {
		parsed, err := inline.ParseRange(s)
		handleErr(err)
		r = mo.Some(parsed)
	}

	var (
		out      io.Writer = os.Stdout
		closeOut           = func() {}
	)
	if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
		file, err := filesystem.API().Create(path)
		handleErr(err)
		out = file
		closeOut = func() { util.Ignore(file.Close) }
	}

	return &inline.Options{
		Out:             out,
		Service:         api.FromConfig(),
		Context:         mode,
		URL:             url,
		Preferences:     prefs,
		Range:           r,
		Filter:          lo.Must(cmd.Flags().GetString("filter")),
		Json:            lo.Must(cmd.Flags().GetBool("json")),
		PollInterval:    config.Millis(key.DownloadPollIntervalMs),
		Stagger:         config.Millis(key.DownloadStaggerMs),
		MaxPollFailures: viper.GetInt(key.DownloadMaxPollFailures),
	}, closeOut
}

func withQuality(prefs session.Preferences, q media.Quality) session.Preferences {
	if prefs.Kind == media.Audio {
		prefs.AudioQuality = q
	} else {
		prefs.VideoQuality = q
	}
	return prefs
}

// confirmRange asks before downloading a whole playlist or a range longer than confirmAbove.
func confirmRange(r mo.Option[selection.Range]) error {
	var message string
	switch selected, ok := r.Get(); {
	case !ok:
		return nil
	case selected.IsEmpty() || selected.Len() == 0:
		message = "Download every entry of the playlist?"
	case selected.Len() > confirmAbove:
		message = fmt.Sprintf("Download %d entries?", selected.Len())
	default:
		return nil
	}

	var response bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &response); err != nil {
		return err
	}

	if !response {
		return errors.New("aborted")
	}
	return nil
}

// progressPrinter renders job state changes on a single erasable line.
func progressPrinter() func(task.Snapshot) {
	erase := func() {}

	return func(s task.Snapshot) {
		erase()

		switch s.Status {
		case session.Queued:
			erase = util.PrintErasable(fmt.Sprintf("%s Queued %s", icon.Get(icon.Progress), s.TaskID))
		case session.Processing:
			erase = util.PrintErasable(fmt.Sprintf(
				"%s Downloading... %.0f%% %s ETA %s",
				icon.Get(icon.Progress),
				task.DisplayProgress(session.Report{Status: s.Status, Progress: s.Progress}, viper.GetFloat64(key.DownloadProgressFloor)),
				media.FormatSpeed(s.Speed.OrElse(0)),
				media.FormatETA(s.ETA.OrElse(0)),
			))
		default:
			erase = func() {}
		}
	}
}

// interruptible is cancelled on the first interrupt, which stops polling and pending deliveries.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
