package version

import (
	"context"
	"fmt"
	"time"

	"github.com/downify/downify/color"
	"github.com/downify/downify/constant"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/key"
	"github.com/downify/downify/style"
	"github.com/downify/downify/util"
	"github.com/spf13/viper"
)

// Notify prints an alert when a newer release than the running one is published.
// Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleasesURL+"/tag/v"+latest),
	)
}
