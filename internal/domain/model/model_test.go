package model_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/okian/delfos/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestBucketAverage(t *testing.T) {
	convey.Convey("Given aggregation buckets", t, func() {
		convey.Convey("When the bucket is empty", func() {
			convey.So(model.Bucket{}.Average(), convey.ShouldEqual, 0)
		})

		convey.Convey("When the bucket holds observations", func() {
			b := model.Bucket{Sum: 1.5, Count: 3}
			convey.So(b.Average(), convey.ShouldEqual, 0.5)
		})
	})
}

func TestSourceRecordGet(t *testing.T) {
	convey.Convey("Given a source record", t, func() {
		rec := model.SourceRecord{"Element Name": " Oral Expression ", "Data Value": ""}

		convey.So(rec.Get("Element Name"), convey.ShouldEqual, "Oral Expression")
		convey.So(rec.Get("Data Value"), convey.ShouldEqual, "")
		convey.So(rec.Get("Scale ID"), convey.ShouldEqual, "")
		convey.So(rec.Get(""), convey.ShouldEqual, "")
	})
}

func TestElementMatchOrder(t *testing.T) {
	convey.Convey("Given element matches from several tables", t, func() {
		matches := []model.ElementMatch{
			{ElementName: "c", TableIndex: 1, Line: 2},
			{ElementName: "b", TableIndex: 0, Line: 9},
			{ElementName: "d", TableIndex: 1, Line: 5},
			{ElementName: "a", TableIndex: 0, Line: 3},
		}

		sort.Slice(matches, func(i, j int) bool { return matches[i].Before(matches[j]) })

		convey.Convey("Then they sort by table then line", func() {
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.ElementName
			}
			convey.So(names, convey.ShouldResemble, []string{"a", "b", "c", "d"})
		})
	})
}

func TestSchemas(t *testing.T) {
	convey.Convey("Given the known schemas", t, func() {
		convey.Convey("Then ability and skill tables filter on scale and divide by 5", func() {
			for _, name := range []string{"Abilities.txt", "Skills.txt"} {
				s, err := model.LookupSchema(name)
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.HasScale(), convey.ShouldBeTrue)
				convey.So(s.Normalize(4.0), convey.ShouldAlmostEqual, 0.8)
			}
		})

		convey.Convey("Then the remaining tables divide by 7", func() {
			for _, name := range []string{"Knowledge.txt", "Interests.txt", "Work Values.txt"} {
				s, err := model.LookupSchema(name)
				convey.So(err, convey.ShouldBeNil)
				convey.So(s.HasScale(), convey.ShouldBeFalse)
				convey.So(s.Normalize(3.5), convey.ShouldEqual, 0.5)
			}
		})

		convey.Convey("Then five tables are known", func() {
			convey.So(model.KnownTables(), convey.ShouldResemble, []string{
				"Abilities.txt", "Skills.txt", "Knowledge.txt", "Interests.txt", "Work Values.txt",
			})
		})

		convey.Convey("Then unknown tables are rejected", func() {
			_, err := model.LookupSchema("Tasks.txt")
			convey.So(errors.Is(err, model.ErrUnknownTable), convey.ShouldBeTrue)
		})
	})
}
