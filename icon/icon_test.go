package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/key"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		Convey("It renders for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					for i := range icons {
						So(Get(i), ShouldNotBeEmpty)
					}
				})
			}
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "fancy")
			So(Variant(), ShouldEqual, plain)
			So(Get(Completed), ShouldEqual, icons[Completed].plain)
		})

		Convey("An unregistered icon renders empty", func() {
			So(Get(Icon(0)), ShouldBeEmpty)
		})
	})
}
