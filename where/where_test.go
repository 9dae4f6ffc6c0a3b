package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubescribe/tubescribe/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		for name, fn := range map[string]func() string{
			"Config":  Config,
			"Cache":   Cache,
			"Logs":    Logs,
			"Exports": Exports,
			"Temp":    Temp,
		} {
			Convey(name+"()", func() {
				path := fn()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}

		Convey("Exports() honours the env override", func() {
			custom := filepath.Join(os.TempDir(), "tubescribe-exports-test")
			So(os.Setenv(EnvExportsPath, custom), ShouldBeNil)
			Reset(func() { _ = os.Unsetenv(EnvExportsPath) })

			So(Exports(), ShouldEqual, custom)
		})

		Convey("Logs() lives under Config()", func() {
			So(filepath.Dir(Logs()), ShouldEqual, Config())
		})
	})
}
