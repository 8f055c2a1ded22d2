package profession_test

import (
	"errors"
	"testing"

	"github.com/okian/delfos/internal/domain/profession"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultTable(t *testing.T) {
	Convey("Given the default profession table", t, func() {
		table := profession.Default()

		Convey("Then it lists 20 professions in id order", func() {
			ids := table.IDs()
			So(len(ids), ShouldEqual, 20)
			for i := 1; i < len(ids); i++ {
				So(ids[i-1] < ids[i], ShouldBeTrue)
			}
		})

		Convey("Then codes are looked up by id", func() {
			codes, err := table.Codes("engenharia_software")
			So(err, ShouldBeNil)
			So(codes, ShouldResemble, []string{"15-1252"})

			_, err = table.Codes("astronauta")
			So(errors.Is(err, profession.ErrUnknownProfession), ShouldBeTrue)
		})
	})
}

func TestFromMap(t *testing.T) {
	Convey("Given a configured profession map", t, func() {
		Convey("When every profession claims codes", func() {
			table, err := profession.FromMap(map[string][]string{
				"b": {" 11-1011 ", ""},
				"a": {"15-1252"},
			})
			So(err, ShouldBeNil)
			So(table.IDs(), ShouldResemble, []profession.ID{"a", "b"})
			codes, _ := table.Codes("b")
			So(codes, ShouldResemble, []string{"11-1011"})
		})

		Convey("When a profession has no usable code", func() {
			_, err := profession.FromMap(map[string][]string{"a": {"  "}})
			So(errors.Is(err, profession.ErrEmptyCodes), ShouldBeTrue)
		})

		Convey("When a profession id is blank", func() {
			_, err := profession.FromMap(map[string][]string{" ": {"11-1011"}})
			So(errors.Is(err, profession.ErrUnknownProfession), ShouldBeTrue)
		})
	})
}
