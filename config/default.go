// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/downify/downify/color"
	"github.com/downify/downify/constant"
	"github.com/downify/downify/key"
	"github.com/downify/downify/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Downify + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServiceURL, constant.DefaultServiceURL, "Base URL of the extraction/download service")
	register(key.FetchDebounceMs, 800, "Quiet interval in milliseconds before a URL edit triggers a metadata lookup")
	register(key.FetchPlaylistDefaultRange, 10, "Number of playlist entries preselected after a playlist lookup")
	register(key.DownloadKind, "video", "Default media kind.\nAvailable options are: video, audio")
	register(key.DownloadVideoQuality, "1080", "Default video quality.\nAvailable options are: 480, 720, 1080, 1440, 2160, 3840")
	register(key.DownloadAudioQuality, "128", "Default audio quality in kbps.\nAvailable options are: 128, 320")
	register(key.DownloadPollIntervalMs, 500, "Interval in milliseconds between job status requests")
	register(key.DownloadStaggerMs, 800, "Delay in milliseconds between consecutive file deliveries of a multi-file job")
	register(key.DownloadMaxPollFailures, 240, "Consecutive failed status requests tolerated before a job is failed.\n0 retries forever")
	register(key.DownloadProgressFloor, 5, "Minimum progress percentage shown once a job is processing")
	register(key.DownloadDir, "", "Directory where delivered files are saved.\nEmpty means the default downloads directory (see \"downify where\")")
	register(key.NotifySuccessLifetimeMs, 3000, "Milliseconds before a success notification clears itself")
	register(key.TUIDefaultContext, "youtube", "Tab selected on start.\nAvailable options are: youtube, playlist, instagram")
	register(key.TUIItemSpacing, 0, "Spacing between playlist entries in the TUI")
	register(key.TUIOpenOnSave, true, "Open the result link in the system handler when saving.\nWhen false the downloads directory is opened instead")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
