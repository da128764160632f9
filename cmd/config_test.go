package cmd

import (
	"testing"

	"github.com/cinelink/cinelink/config"
	"github.com/cinelink/cinelink/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given registered fields", t, func() {
		Convey("Integers are parsed", func() {
			v, err := parseValue(config.Default[key.RelayTimeout], []string{"45"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 45)

			_, err = parseValue(config.Default[key.RelayTimeout], []string{"soon"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are parsed", func() {
			v, err := parseValue(config.Default[key.RelayEnable], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Lists keep every non-blank value", func() {
			v, err := parseValue(config.Default[key.RelayAllowlist], []string{"cdn.net", " ", " example.com "})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"cdn.net", "example.com"})
		})

		Convey("Strings are taken as is", func() {
			v, err := parseValue(config.Default[key.ProviderBaseURL], []string{"https://api.example.org"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "https://api.example.org")
		})

		Convey("A missing value is an error", func() {
			_, err := parseValue(config.Default[key.ProviderBaseURL], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Typos suggest the closest key", t, func() {
		err := errUnknownKey("relay.alowlist")
		So(err.Error(), ShouldContainSubstring, key.RelayAllowlist)
	})
}
