package title

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given catalog and provider titles", t, func() {
		Convey("A single leading article is dropped", func() {
			So(Normalize("The Matrix"), ShouldEqual, "matrix")
			So(Normalize("Matrix"), ShouldEqual, "matrix")
			So(Normalize("An Education"), ShouldEqual, "education")
			So(Normalize("A Quiet Place"), ShouldEqual, "quiet place")
		})

		Convey("Ampersands become the word and", func() {
			So(Normalize("A&B"), ShouldEqual, "a and b")
			So(Normalize("Fast & Furious"), ShouldEqual, "fast and furious")
		})

		Convey("Separators become single spaces", func() {
			So(Normalize("Mission: Impossible - Fallout"), ShouldEqual, "mission impossible fallout")
			So(Normalize("  Spider-Man:   No.Way  Home "), ShouldEqual, "spider man no way home")
			So(Normalize("the-matrix"), ShouldEqual, "matrix")
		})

		Convey("Articles inside the title are kept", func() {
			So(Normalize("Beauty and the Beast"), ShouldEqual, "beauty and the beast")
			So(Normalize("Theory of Everything"), ShouldEqual, "theory of everything")
			So(Normalize("A"), ShouldEqual, "a")
		})

		Convey("Empty input stays empty", func() {
			So(Normalize(""), ShouldEqual, "")
			So(Normalize(" \t "), ShouldEqual, "")
		})

		Convey("It is idempotent", func() {
			inputs := []string{
				"The Matrix", "A&B", "the the matrix", "The A-Team", "a & the",
				"An. An", "THE:  a  :an", "Mission: Impossible", "&&", "a and b", "the and",
			}
			for _, in := range inputs {
				once := Normalize(in)
				So(Normalize(once), ShouldEqual, once)
			}
		})
	})
}
