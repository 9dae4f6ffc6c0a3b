package auth

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/key"
	"github.com/zalando/go-keyring"
)

func clearEnv() {
	for _, name := range FallbackEnv {
		_ = os.Unsetenv(name)
	}
}

func TestKeyring(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()

		Convey("Set then Get returns the stored key", func() {
			So(SetAPIKey("AIza-secret"), ShouldBeNil)
			v, err := GetAPIKey()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "AIza-secret")

			Convey("Delete removes it", func() {
				So(DeleteAPIKey(), ShouldBeNil)
				_, err := GetAPIKey()
				So(err, ShouldEqual, keyring.ErrNotFound)
			})
		})

		Convey("Deleting a missing key is fine", func() {
			So(DeleteAPIKey(), ShouldBeNil)
		})
	})
}

func TestResolveAPIKey(t *testing.T) {
	Convey("Given no key anywhere", t, func() {
		keyring.MockInit()
		clearEnv()
		viper.Set(key.GeminiAPIKey, "")
		Reset(func() {
			clearEnv()
			viper.Set(key.GeminiAPIKey, "")
		})

		So(ResolveAPIKey().IsAbsent(), ShouldBeTrue)

		Convey("The keyring is the last resort", func() {
			So(SetAPIKey("from-keyring"), ShouldBeNil)
			resolved := ResolveAPIKey().MustGet()
			So(resolved.Key, ShouldEqual, "from-keyring")
			So(resolved.Origin, ShouldEqual, OriginKeyring)

			Convey("Env wins over the keyring", func() {
				So(os.Setenv("API_KEY", "from-env"), ShouldBeNil)
				resolved := ResolveAPIKey().MustGet()
				So(resolved.Key, ShouldEqual, "from-env")
				So(resolved.Name, ShouldEqual, "API_KEY")

				Convey("GEMINI_API_KEY wins over API_KEY", func() {
					So(os.Setenv("GEMINI_API_KEY", "gemini-env"), ShouldBeNil)
					So(ResolveAPIKey().MustGet().Key, ShouldEqual, "gemini-env")
				})

				Convey("Config wins over everything", func() {
					viper.Set(key.GeminiAPIKey, "from-config")
					resolved := ResolveAPIKey().MustGet()
					So(resolved.Key, ShouldEqual, "from-config")
					So(resolved.Origin, ShouldEqual, OriginConfig)
				})
			})
		})
	})
}
