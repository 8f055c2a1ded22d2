package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
	. "github.com/smartystreets/goconvey/convey"
)

func match(apt aptitude.ID, score float64, table, line int) model.ElementMatch {
	return model.ElementMatch{
		File:        "Skills.txt",
		OccCode:     "15-1252.00",
		ElementName: "Programming",
		Aptitude:    apt,
		BaseScore:   score,
		TableIndex:  table,
		Line:        line,
	}
}

func TestMemoryStore_Add(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := NewMemoryStore(WithShardCount(4))
		So(store.Count(ctx), ShouldEqual, 0)

		Convey("When one observation resolves to two professions", func() {
			err := store.Add(ctx, []profession.ID{"ciencia_computacao", "engenharia_software"}, match(aptitude.Tecnologia, 0.9, 0, 1))
			So(err, ShouldBeNil)

			Convey("Then both professions' buckets are incremented", func() {
				for _, p := range []profession.ID{"ciencia_computacao", "engenharia_software"} {
					b, ok := store.bucket(p, aptitude.Tecnologia)
					So(ok, ShouldBeTrue)
					So(b.Count, ShouldEqual, 1)
					So(b.Sum, ShouldEqual, 0.9)
				}
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When observations accumulate in one bucket", func() {
			So(store.Add(ctx, []profession.ID{"a"}, match(aptitude.Logica, 0.4, 0, 1)), ShouldBeNil)
			So(store.Add(ctx, []profession.ID{"a"}, match(aptitude.Logica, 0.6, 0, 2)), ShouldBeNil)

			b, ok := store.bucket("a", aptitude.Logica)
			So(ok, ShouldBeTrue)
			So(b.Count, ShouldEqual, 2)
			So(b.Average(), ShouldAlmostEqual, 0.5)

			_, ok = store.bucket("a", aptitude.Musica)
			So(ok, ShouldBeFalse)
		})

		Convey("When the aptitude is not in the closed set", func() {
			err := store.Add(ctx, []profession.ID{"a"}, match("telepatia", 1, 0, 1))
			So(errors.Is(err, ErrInvalidAptitude), ShouldBeTrue)
		})

		Convey("When the store is closed", func() {
			So(store.Close(), ShouldBeNil)
			err := store.Add(ctx, []profession.ID{"a"}, match(aptitude.Logica, 1, 0, 1))
			So(errors.Is(err, ErrClosed), ShouldBeTrue)
		})
	})
}

func TestMemoryStore_Snapshot(t *testing.T) {
	Convey("Given observations added out of order", t, func() {
		ctx := context.Background()
		store := NewMemoryStore()
		So(store.Add(ctx, []profession.ID{"a"}, match(aptitude.Logica, 0.2, 1, 4)), ShouldBeNil)
		So(store.Add(ctx, []profession.ID{"a"}, match(aptitude.Musica, 0.5, 0, 9)), ShouldBeNil)
		So(store.Add(ctx, []profession.ID{"a"}, match(aptitude.Logica, 0.6, 0, 3)), ShouldBeNil)

		snap := store.Snapshot(ctx)

		Convey("Then element matches are in table then line order", func() {
			lines := []int{}
			for _, m := range snap.Elements["a"] {
				lines = append(lines, m.Line)
			}
			So(lines, ShouldResemble, []int{3, 9, 4})
		})

		Convey("Then buckets match the running totals", func() {
			So(snap.Buckets["a"][aptitude.Logica].Count, ShouldEqual, 2)
			So(snap.Buckets["a"][aptitude.Logica].Sum, ShouldAlmostEqual, 0.8)
			So(snap.Buckets["a"][aptitude.Musica], ShouldResemble, model.Bucket{Sum: 0.5, Count: 1})
		})
	})

	Convey("Given many concurrent writers", t, func() {
		ctx := context.Background()
		store := NewMemoryStore(WithShardCount(2))
		const writers, perWriter = 8, 250

		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					_ = store.Add(ctx, []profession.ID{"a", "b"}, match(aptitude.Logica, 0.25, w, i))
				}
			}(w)
		}
		wg.Wait()

		Convey("Then no increment is lost", func() {
			snap := store.Snapshot(ctx)
			for _, p := range []profession.ID{"a", "b"} {
				So(snap.Buckets[p][aptitude.Logica].Count, ShouldEqual, writers*perWriter)
				So(snap.Buckets[p][aptitude.Logica].Sum, ShouldEqual, 0.25*writers*perWriter)
				So(len(snap.Elements[p]), ShouldEqual, writers*perWriter)
			}
		})
	})
}
