package where

import (
	"path/filepath"
	"testing"

	"github.com/downify/downify/filesystem"
	"github.com/downify/downify/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Downloads()", func() {
			Convey("Should honour download.dir", func() {
				custom := filepath.Join(Temp(), "custom-downloads")
				viper.Set(key.DownloadDir, custom)
				So(Downloads(), ShouldEqual, custom)
				So(lo.Must(filesystem.API().IsDir(custom)), ShouldBeTrue)
			})

			Convey("Should fall back to a default directory", func() {
				viper.Set(key.DownloadDir, "")
				So(Downloads(), ShouldNotBeEmpty)
			})

			Reset(func() {
				viper.Set(key.DownloadDir, "")
			})
		})
	})
}
