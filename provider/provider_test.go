package provider

import (
	"errors"
	"testing"

	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Built-in names are matched case-insensitively", t, func() {
		p, ok := Get("VAULT")
		So(ok, ShouldBeTrue)
		So(p.String(), ShouldEqual, "vault")
	})
}

func TestDefault(t *testing.T) {
	Convey("Given provider settings", t, func() {
		viper.Set(key.ProviderDefault, "vault")
		viper.Set(key.ProviderTimeout, 10)
		viper.Set(key.ProviderSearchLimit, 7)

		Convey("A missing base URL is a configuration error", func() {
			viper.Set(key.ProviderBaseURL, "  ")
			_, err := Default()
			So(errors.Is(err, source.ErrConfiguration), ShouldBeTrue)
		})

		Convey("An unknown backend is a configuration error", func() {
			viper.Set(key.ProviderDefault, "nope")
			viper.Set(key.ProviderBaseURL, "https://api.example.org")
			_, err := Default()
			So(errors.Is(err, source.ErrConfiguration), ShouldBeTrue)
		})

		Convey("A configured backend is built", func() {
			viper.Set(key.ProviderBaseURL, "https://api.example.org")
			p, err := Default()
			So(err, ShouldBeNil)
			So(p.Name(), ShouldEqual, "vault")

			opts := OptionsFromConfig()
			So(opts.SearchLimit, ShouldEqual, 7)
			So(opts.Timeout.Seconds(), ShouldEqual, 10)
		})
	})
}
