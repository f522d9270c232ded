// Package cmd implements the downify command-line interface.
package cmd

import (
	"context"

	"github.com/downify/downify/api"
	"github.com/downify/downify/config"
	"github.com/downify/downify/fetch"
	"github.com/downify/downify/key"
	"github.com/downify/downify/log"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	"github.com/spf13/viper"
)

// preferences reads the configured kind and qualities. Unknown values fall back to the defaults.
func preferences() session.Preferences {
	prefs := session.DefaultPreferences()

	if kind, err := media.ParseKind(viper.GetString(key.DownloadKind)); err == nil {
		prefs.Kind = kind
	}
	if q, err := media.ParseQuality(media.Video, viper.GetString(key.DownloadVideoQuality)); err == nil {
		prefs.VideoQuality = q
	}
	if q, err := media.ParseQuality(media.Audio, viper.GetString(key.DownloadAudioQuality)); err == nil {
		prefs.AudioQuality = q
	}

	return prefs
}

func defaultContext() platform.Mode {
	mode, err := platform.Parse(viper.GetString(key.TUIDefaultContext))
	if err != nil {
		return platform.YouTube
	}
	return mode
}

func newStore() *session.Store {
	return session.New(
		defaultContext(),
		preferences(),
		session.WithNotificationLifetime(config.Millis(key.NotifySuccessLifetimeMs)),
	)
}

func newFetcher(store *session.Store, client *api.Client) *fetch.Fetcher {
	return fetch.New(
		store,
		client,
		fetch.WithQuiet(config.Millis(key.FetchDebounceMs)),
		fetch.WithRangeLimit(viper.GetInt(key.FetchPlaylistDefaultRange)),
	)
}

// saveInto delivers every produced file into dir.
func saveInto(client *api.Client, dir string) task.Deliverer {
	return func(ctx context.Context, d task.Delivery) error {
		path, err := client.Download(ctx, d.FileID, dir)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{"file": d.FileID, "path": path}).Info("file saved")
		return nil
	}
}

func newOrchestrator(store *session.Store, client *api.Client, dir string) *task.Orchestrator {
	return task.New(
		store,
		client,
		task.WithPollInterval(config.Millis(key.DownloadPollIntervalMs)),
		task.WithStagger(config.Millis(key.DownloadStaggerMs)),
		task.WithMaxPollFailures(viper.GetInt(key.DownloadMaxPollFailures)),
		task.WithDeliverer(saveInto(client, dir)),
	)
}
