package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestURL(t *testing.T) {
	Convey("URL refuses things that are not web links", t, func() {
		for _, link := range []string{"#", "", "ftp://example.com/x", "javascript:alert(1)", "https://"} {
			So(URL(link), ShouldNotBeNil)
		}
	})
}
