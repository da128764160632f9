package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseExternalID(t *testing.T) {
	Convey("Given external ids", t, func() {
		Convey("A bare id defaults to season 1 episode 1", func() {
			id, err := ParseExternalID("tt1375666")
			So(err, ShouldBeNil)
			So(id, ShouldResemble, ExternalID{Base: "tt1375666", Season: 1, Episode: 1})
		})

		Convey("Season and episode are parsed", func() {
			id, err := ParseExternalID("tt0944947:2:3")
			So(err, ShouldBeNil)
			So(id.Season, ShouldEqual, 2)
			So(id.Episode, ShouldEqual, 3)
			So(id.String(), ShouldEqual, "tt0944947:2:3")
		})

		Convey("Malformed ids are rejected", func() {
			for _, s := range []string{"", ":1:1", "tt1:x:1", "tt1:1:y", "tt1:0:1", "tt1:1:-2", "tt1:1", "tt1:1:1:1"} {
				_, err := ParseExternalID(s)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestParseKind(t *testing.T) {
	Convey("ParseKind", t, func() {
		k, err := ParseKind("Movie")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, Movie)

		k, err = ParseKind("tv")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, Series)

		_, err = ParseKind("anime")
		So(err, ShouldNotBeNil)
	})
}

func TestCredentials(t *testing.T) {
	Convey("Complete requires both fields", t, func() {
		So(Credentials{Username: "u", Password: "p"}.Complete(), ShouldBeTrue)
		So(Credentials{Username: "u", Password: "  "}.Complete(), ShouldBeFalse)
		So(Credentials{Password: "p"}.Complete(), ShouldBeFalse)
	})

	Convey("HasToken", t, func() {
		var s *Session
		So(s.HasToken(), ShouldBeFalse)
		So((&Session{AuthToken: "a"}).HasToken(), ShouldBeTrue)
	})
}
