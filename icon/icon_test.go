package icon

import (
	"fmt"
	"testing"

	"github.com/downify/downify/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		for i := Success; i <= Save; i++ {
			target := i

			Convey(fmt.Sprintf("Icon %d renders for each variant", target), func() {
				for _, variant := range AvailableVariants() {
					viper.Set(key.IconsVariant, variant)
					So(Get(target), ShouldNotBeEmpty)
				}
			})
		}

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Success), ShouldBeEmpty)
		})

		Reset(func() {
			viper.Set(key.IconsVariant, "plain")
		})
	})
}
