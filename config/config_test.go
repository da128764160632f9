package config

import (
	"testing"

	"github.com/cinelink/cinelink/filesystem"
	"github.com/cinelink/cinelink/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without a config file", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every default", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.RelayMaxRedirects), ShouldEqual, 5)
			So(viper.GetInt(key.RelayMaxPayload), ShouldEqual, 10*1024*1024)
		})

		Convey("Should read values from the environment", func() {
			t.Setenv("CINELINK_PROVIDER_BASE_URL", "https://api.provider.test")
			_ = Setup()
			So(viper.GetString(key.ProviderBaseURL), ShouldEqual, "https://api.provider.test")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("relay.max_payload"), ShouldEqual, "relay_max_payload")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.RelayAllowlist]

		Convey("Env is prefixed and upper-cased", func() {
			So(field.Env(), ShouldEqual, "CINELINK_RELAY_ALLOWLIST")
		})

		Convey("TypeName reflects the default value", func() {
			So(field.TypeName(), ShouldEqual, "[]string")
			timeout := Default[key.RelayTimeout]
			So(timeout.TypeName(), ShouldEqual, "int")
		})

		Convey("Pretty mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.RelayAllowlist)
		})
	})
}
