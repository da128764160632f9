package match

import (
	"testing"

	"github.com/cinelink/cinelink/source"
	. "github.com/smartystreets/goconvey/convey"
)

func candidate(id, name string, kind source.Kind) *source.Candidate {
	return &source.Candidate{ID: id, Name: name, Kind: kind}
}

func TestScore(t *testing.T) {
	Convey("Given the target Matrix as a movie", t, func() {
		ranked := Rank([]*source.Candidate{
			candidate("3", "Matrix", source.Series),
			candidate("2", "Matrix Reloaded", source.Movie),
			candidate("1", "The Matrix", source.Movie),
		}, "Matrix", source.Movie)

		Convey("Exact names of the right kind score 160", func() {
			So(ranked[0].Candidate.ID, ShouldEqual, "1")
			So(ranked[0].Score, ShouldEqual, 160)
		})

		Convey("Prefix matches score 120", func() {
			So(ranked[1].Candidate.ID, ShouldEqual, "2")
			So(ranked[1].Score, ShouldEqual, 120)
		})

		Convey("Exact names of the wrong kind score 10", func() {
			So(ranked[2].Candidate.ID, ShouldEqual, "3")
			So(ranked[2].Score, ShouldEqual, 10)
			So(ranked[2].Index, ShouldEqual, 0)
		})
	})

	Convey("Contained names score 10 above the kind", t, func() {
		c := candidate("1", "Return to the Matrix", source.Movie)
		So(Score(c, "matrix", source.Movie), ShouldEqual, 110)
		So(Score(c, "inception", source.Series), ShouldEqual, -50)
	})
}

func TestRankStability(t *testing.T) {
	Convey("Equal scores keep provider order", t, func() {
		var in []*source.Candidate
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			in = append(in, candidate(id, "Dune", source.Movie))
		}
		in = append([]*source.Candidate{candidate("x", "Other", source.Series), nil}, in...)

		ranked := Rank(in, "Dune", source.Movie)
		So(ranked, ShouldHaveLength, 9)
		for i, s := range ranked[:8] {
			So(s.Score, ShouldEqual, 160)
			So(s.Index, ShouldEqual, i+2)
		}
		So(ranked[8].Candidate.ID, ShouldEqual, "x")
	})
}

func TestBest(t *testing.T) {
	Convey("Given candidates", t, func() {
		Convey("Nothing is selected when every score is at most zero", func() {
			best := Best([]*source.Candidate{
				candidate("1", "Frozen", source.Series),
				candidate("2", "Cars", source.Series),
			}, "Inception", source.Movie)
			So(best.IsAbsent(), ShouldBeTrue)
		})

		Convey("Nothing is selected from an empty list", func() {
			So(Best(nil, "Inception", source.Movie).IsAbsent(), ShouldBeTrue)
		})

		Convey("The first of equally scored candidates wins", func() {
			best := Best([]*source.Candidate{
				candidate("1", "Inception", source.Movie),
				candidate("2", "Inception", source.Movie),
			}, "Inception", source.Movie)
			So(best.IsPresent(), ShouldBeTrue)
			So(best.MustGet().Candidate.ID, ShouldEqual, "1")
		})
	})
}

func TestClosest(t *testing.T) {
	Convey("Closest picks the smallest edit distance", t, func() {
		c := Closest([]*source.Candidate{
			candidate("1", "Frozen", source.Series),
			candidate("2", "Incepton", source.Series),
		}, "Inception")
		So(c.MustGet().ID, ShouldEqual, "2")
		So(Closest(nil, "x").IsAbsent(), ShouldBeTrue)
	})
}
