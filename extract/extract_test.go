package extract

import (
	"fmt"
	"testing"

	"github.com/cinelink/cinelink/source"
	. "github.com/smartystreets/goconvey/convey"
)

func episodes(season, n int) []source.Episode {
	eps := make([]source.Episode, n)
	for i := range eps {
		eps[i] = source.Episode{File: fmt.Sprintf("https://cdn/s%02de%02d.mkv", season, i+1)}
	}
	return eps
}

func TestMovie(t *testing.T) {
	Convey("Given a movie detail", t, func() {
		Convey("Each download becomes a link in provider order", func() {
			res := Build(source.Movie, "tt1375666", &source.Detail{Downloads: []source.Download{
				{Quality: "1080p", Size: "2GB", Encode: "x265", Label: "WEB", File: "https://host/f.mkv"},
				{Quality: "720p", Size: "", Encode: "x264", File: "https://host/g.mkv"},
			}})
			So(res.Degraded(), ShouldBeFalse)
			So(res.Links, ShouldResemble, []source.StreamLink{
				{Title: "1080p - 2GB - x265 - WEB", URL: "https://host/f.mkv"},
				{Title: "720p - x264", URL: "https://host/g.mkv"},
			})
		})

		Convey("Zero downloads yield an empty result", func() {
			res := Build(source.Movie, "tt1", &source.Detail{})
			So(res.Links, ShouldNotBeNil)
			So(res.Links, ShouldBeEmpty)
			So(res.Degraded(), ShouldBeFalse)
		})

		Convey("Entries without a file are skipped", func() {
			res := Build(source.Movie, "tt1", &source.Detail{Downloads: []source.Download{
				{Quality: "4K"},
				{Quality: "1080p", File: "https://host/a.mkv"},
			}})
			So(res.Links, ShouldHaveLength, 1)
			So(res.Skipped, ShouldEqual, 1)
			So(res.Degraded(), ShouldBeTrue)
		})

		Convey("A nil detail yields nothing", func() {
			So(Build(source.Movie, "tt1", nil).Links, ShouldBeEmpty)
		})
	})
}

func TestSeries(t *testing.T) {
	Convey("Given a series detail", t, func() {
		detail := &source.Detail{Seasons: []source.Season{
			{Label: "Season 1", Quality: "1080p", Size: "20GB", Episodes: episodes(1, 3)},
			{Label: "Season 2", Quality: "1080p", Size: "25GB", Episodes: episodes(2, 5)},
			{Label: "S02", Quality: "720p", Size: "9GB", Episodes: episodes(2, 2)},
			{Label: "Season 12", Quality: "480p", Episodes: episodes(12, 5)},
		}}

		Convey("Season and episode select the (episode-1)th entry", func() {
			res := Build(source.Series, "tt000:2:3", detail)
			So(res.Links, ShouldResemble, []source.StreamLink{
				{Title: "1080p - 25GB", URL: "https://cdn/s02e03.mkv"},
			})
			So(res.Skipped, ShouldEqual, 1)
		})

		Convey("A bare id defaults to the first episode of season 1", func() {
			res := Build(source.Series, "tt000", detail)
			So(res.Links, ShouldResemble, []source.StreamLink{
				{Title: "1080p - 20GB", URL: "https://cdn/s01e01.mkv"},
			})
			So(res.Degraded(), ShouldBeFalse)
		})

		Convey("Every matching bucket contributes a link", func() {
			res := Build(source.Series, "tt000:2:1", detail)
			So(res.Links, ShouldHaveLength, 2)
			So(res.Links[1].Title, ShouldEqual, "720p - 9GB")
		})

		Convey("Season 1 does not match Season 12", func() {
			res := Build(source.Series, "tt000:12:5", detail)
			So(res.Links, ShouldHaveLength, 1)
			So(res.Links[0].Title, ShouldEqual, "480p")
		})

		Convey("An unparseable id yields no links", func() {
			So(Build(source.Series, "tt000:x:1", detail).Links, ShouldBeEmpty)
		})

		Convey("Unlabeled buckets never match", func() {
			res := Build(source.Series, "tt000", &source.Detail{Seasons: []source.Season{
				{Label: "Specials", Episodes: episodes(0, 1)},
			}})
			So(res.Links, ShouldBeEmpty)
		})
	})
}
