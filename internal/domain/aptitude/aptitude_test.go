package aptitude_test

import (
	"errors"
	"testing"

	"github.com/okian/delfos/internal/domain/aptitude"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAptitudeCatalog(t *testing.T) {
	Convey("Given the aptitude catalog", t, func() {
		ids := aptitude.All()

		Convey("Then it holds the 22 known aptitudes without duplicates", func() {
			So(len(ids), ShouldEqual, 22)
			seen := map[aptitude.ID]bool{}
			for _, id := range ids {
				So(seen[id], ShouldBeFalse)
				seen[id] = true
				So(aptitude.Valid(id), ShouldBeTrue)
			}
		})

		Convey("Then every aptitude has both display names", func() {
			for _, info := range aptitude.Catalog() {
				So(info.Name, ShouldNotBeEmpty)
				So(info.NameEn, ShouldNotBeEmpty)
			}
		})

		Convey("Then lookups resolve names", func() {
			info, ok := aptitude.Lookup(aptitude.CoordFina)
			So(ok, ShouldBeTrue)
			So(info.NameEn, ShouldEqual, "Fine Motor Coordination")

			_, ok = aptitude.Lookup("telepatia")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestAptitudeParse(t *testing.T) {
	Convey("Given raw aptitude strings", t, func() {
		Convey("When the string is a known id in any case", func() {
			id, err := aptitude.Parse("  Logica ")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, aptitude.Logica)
		})

		Convey("When the string is outside the closed set", func() {
			_, err := aptitude.Parse("telepatia")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, aptitude.ErrUnknownAptitude), ShouldBeTrue)
		})
	})
}
