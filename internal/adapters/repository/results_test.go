package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/medaltips/internal/adapters/repository"
	"github.com/okian/medaltips/internal/domain/medal"
	"github.com/okian/medaltips/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testRegistry(ids ...string) *model.Registry {
	athletes := make([]model.Athlete, 0, len(ids))
	for _, id := range ids {
		athletes = append(athletes, model.Athlete{ID: id, Name: "Athlete " + id, Sport: "Alpint"})
	}
	reg, _ := model.NewRegistry(athletes)
	return reg
}

func TestResultStoreLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a registry of three athletes", t, func() {
		reg := testRegistry("a1", "a2", "a3")
		path := filepath.Join(t.TempDir(), "results.csv")
		store := repository.NewResultStore(path)

		Convey("When no result file exists", func() {
			res, err := store.Load(ctx, reg)

			Convey("Then every athlete is seeded with None and the seed is persisted", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, model.Result{"a1": medal.None, "a2": medal.None, "a3": medal.None})
				data, rerr := os.ReadFile(path)
				So(rerr, ShouldBeNil)
				So(string(data), ShouldEqual, "athlete_id,medal\na1,None\na2,None\na3,None\n")
			})
		})

		Convey("When the file holds an unknown medal", func() {
			So(os.WriteFile(path, []byte("athlete_id,medal\na1,Gold\na2,Platinum\n"), 0o644), ShouldBeNil)
			res, err := store.Load(ctx, reg)

			Convey("Then only that entry is coerced to None", func() {
				So(err, ShouldBeNil)
				So(res.Medal("a1"), ShouldEqual, medal.Gold)
				So(res.Medal("a2"), ShouldEqual, medal.None)
			})

			Convey("And athletes missing from the file are filled with None", func() {
				So(res, ShouldHaveLength, 3)
				So(res.Medal("a3"), ShouldEqual, medal.None)
			})
		})

		Convey("When the file names athletes outside the registry", func() {
			So(os.WriteFile(path, []byte("athlete_id,medal\nold,Gold\na1,Silver\n"), 0o644), ShouldBeNil)
			res, err := store.Load(ctx, reg)

			Convey("Then they are dropped", func() {
				So(err, ShouldBeNil)
				_, ok := res["old"]
				So(ok, ShouldBeFalse)
				So(res.Medal("a1"), ShouldEqual, medal.Silver)
			})
		})

		Convey("When the file is structurally broken", func() {
			cases := map[string]string{
				"empty":          "",
				"missing column": "athlete_id\na1\n",
				"ragged row":     "athlete_id,medal\na1\n",
				"bad quoting":    "athlete_id,medal\n\"a1,Gold\n",
			}
			for name, doc := range cases {
				Convey("Like "+name, func() {
					So(os.WriteFile(path, []byte(doc), 0o644), ShouldBeNil)
					res, err := store.Load(ctx, reg)

					Convey("Then loading fails without a partial result", func() {
						So(res, ShouldBeNil)
						So(errors.Is(err, repository.ErrMalformedResults), ShouldBeTrue)
					})
				})
			}
		})
	})
}

func TestResultStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	Convey("Given a saved result", t, func() {
		reg := testRegistry("b", "a", "c")
		path := filepath.Join(t.TempDir(), "state", "results.csv")
		store := repository.NewResultStore(path)
		want := model.Result{"a": medal.Gold, "b": medal.Bronze, "c": medal.None}
		So(store.Save(ctx, want), ShouldBeNil)

		Convey("Then loading returns it unchanged", func() {
			got, err := store.Load(ctx, reg)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, want)
		})

		Convey("And rows are written in athlete id order", func() {
			data, _ := os.ReadFile(path)
			So(string(data), ShouldEqual, "athlete_id,medal\na,Gold\nb,Bronze\nc,None\n")
		})

		Convey("And an export imported into another store reproduces it", func() {
			data, err := store.Export(ctx)
			So(err, ShouldBeNil)

			other := repository.NewResultStore(filepath.Join(t.TempDir(), "results.csv"))
			imported, err := other.Import(ctx, reg, data)
			So(err, ShouldBeNil)
			So(imported, ShouldResemble, want)
			loaded, err := other.Load(ctx, reg)
			So(err, ShouldBeNil)
			So(loaded, ShouldResemble, want)
		})

		Convey("When a malformed import is attempted", func() {
			before, _ := os.ReadFile(path)
			res, err := store.Import(ctx, reg, []byte("nope\n"))

			Convey("Then it is rejected and the file is byte-identical", func() {
				So(res, ShouldBeNil)
				So(errors.Is(err, repository.ErrMalformedResults), ShouldBeTrue)
				after, _ := os.ReadFile(path)
				So(after, ShouldResemble, before)
			})
		})
	})

	Convey("Given a store that was never written", t, func() {
		store := repository.NewResultStore(filepath.Join(t.TempDir(), "results.csv"))

		Convey("Then export yields a header-only document", func() {
			data, err := store.Export(ctx)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "athlete_id,medal\n")
		})
	})
}
