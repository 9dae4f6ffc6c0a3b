package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"v0.3.1", "0.3.0", 1},
			{"0.2.9", "0.3.0", -1},
			{"1.0.0", "0.99.99", 1},
			{"1.2", "1.2.0", 0},
			{"1.2.0-rc.1", "1.2.0", -1},
			{"1.2.0", "1.2.0-rc.1", 1},
			{"1.2.0-rc.2", "1.2.0-rc.1", 1},
			{"1.2.0+build.5", "1.2.0", 0},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		Convey("Rejects garbage", func() {
			_, err := Compare("latest", "0.3.0")
			So(err, ShouldNotBeNil)

			_, err = Compare("0.3.0", "1.2.3.4")
			So(err, ShouldNotBeNil)
		})
	})
}
