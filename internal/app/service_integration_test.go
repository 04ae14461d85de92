package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"

	"github.com/okian/medaltips/internal/adapters/repository"
	service "github.com/okian/medaltips/internal/app"
	"github.com/okian/medaltips/internal/domain/medal"
	. "github.com/smartystreets/goconvey/convey"
)

const feed = "athlete_id,name,sport\n" +
	"A1,Frida Karlsson,Längdskidor\n" +
	"A2,Sara Hector,Alpint\n" +
	"A3,Hanna Öberg,Skidskytte\n" +
	"A4,Ebba Andersson,Längdskidor\n"

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athletes.csv")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	return path
}

func newFileService(athletes, stateDir string) *service.Service {
	return service.New(
		service.WithAthletesPath(athletes),
		service.WithStateDir(stateDir),
		service.WithAdminPassword("admin"),
		service.WithLocale(language.Swedish),
	)
}

func TestService_Integration(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service on a fresh state directory", t, func() {
		athletes := writeFeed(t)
		stateDir := filepath.Join(t.TempDir(), "state")
		svc := newFileService(athletes, stateDir)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then results are seeded and persisted", func() {
			_, err := os.Stat(filepath.Join(stateDir, service.ResultsFile))
			So(err, ShouldBeNil)
			rows, err := svc.Results(ctx)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 4)
		})

		Convey("And athletes and sports follow Swedish collation", func() {
			sports, err := svc.Sports(ctx)
			So(err, ShouldBeNil)
			So(sports, ShouldResemble, []string{"Alpint", "Längdskidor", "Skidskytte"})

			rows, err := svc.Athletes(ctx, "Längdskidor")
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Name, ShouldEqual, "Ebba Andersson")
		})

		Convey("When players predict and results are entered", func() {
			So(svc.UpsertPick(ctx, "Johan", "A1", medal.Gold), ShouldBeNil)
			So(svc.UpsertPick(ctx, "Göran", "A1", medal.Silver), ShouldBeNil)
			So(svc.UpsertPick(ctx, "Tony", "A2", medal.Bronze), ShouldBeNil)
			So(svc.SetResults(ctx, "admin", map[string]medal.Medal{"A1": medal.Gold}), ShouldBeNil)

			Convey("Then the scoreboard ranks exact over partial", func() {
				board, err := svc.Scoreboard(ctx)
				So(err, ShouldBeNil)
				So(board, ShouldHaveLength, 6)
				So(board[0].Player, ShouldEqual, "Johan")
				So(board[0].TotalPoints, ShouldEqual, 5)
				So(board[0].Rank, ShouldEqual, 1)
				So(board[1].Player, ShouldEqual, "Göran")
				So(board[1].TotalPoints, ShouldEqual, 2)
				So(board[1].PartialCount, ShouldEqual, 1)
				So(board[2].Rank, ShouldEqual, 3)
				So(board[2].TotalPoints, ShouldEqual, 0)
			})

			Convey("And a restarted service sees the same state", func() {
				svc.Stop()
				again := newFileService(athletes, stateDir)
				So(again.Start(ctx), ShouldBeNil)
				defer again.Stop()

				board, err := again.Scoreboard(ctx)
				So(err, ShouldBeNil)
				So(board[0].Player, ShouldEqual, "Johan")
				So(board[0].TotalPoints, ShouldEqual, 5)
				rows, _ := again.PicksFor(ctx, "Tony")
				So(rows, ShouldHaveLength, 1)
				So(rows[0].Medal, ShouldEqual, medal.Bronze)
			})

			Convey("And the backups restore into another state directory", func() {
				results, err := svc.ExportResults(ctx)
				So(err, ShouldBeNil)
				picks, err := svc.ExportPicks(ctx)
				So(err, ShouldBeNil)

				other := newFileService(athletes, filepath.Join(t.TempDir(), "other"))
				So(other.Start(ctx), ShouldBeNil)
				defer other.Stop()
				So(other.ImportResults(ctx, results), ShouldBeNil)
				So(other.ImportPicks(ctx, picks), ShouldBeNil)

				board, _ := other.Scoreboard(ctx)
				So(board[0].Player, ShouldEqual, "Johan")
				So(board[1].Player, ShouldEqual, "Göran")
			})
		})

		Convey("When a broken results backup is imported", func() {
			path := filepath.Join(stateDir, service.ResultsFile)
			before, _ := os.ReadFile(path)
			err := svc.ImportResults(ctx, []byte("garbage"))

			Convey("Then it is rejected and nothing changes", func() {
				So(errors.Is(err, repository.ErrMalformedResults), ShouldBeTrue)
				after, _ := os.ReadFile(path)
				So(after, ShouldResemble, before)
			})
		})

		Convey("When a broken picks backup is imported", func() {
			err := svc.ImportPicks(ctx, []byte("[1,2]"))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, repository.ErrMalformedPicks), ShouldBeTrue)
			})
		})
	})

	Convey("Given a corrupt results file", t, func() {
		athletes := writeFeed(t)
		stateDir := t.TempDir()
		So(os.WriteFile(filepath.Join(stateDir, service.ResultsFile), []byte("athlete_id,medal\n\"A1,Gold\n"), 0o644), ShouldBeNil)
		svc := newFileService(athletes, stateDir)

		Convey("Then the service refuses to start", func() {
			err := svc.Start(ctx)
			So(errors.Is(err, repository.ErrMalformedResults), ShouldBeTrue)
		})
	})

	Convey("Given a corrupt picks file", t, func() {
		athletes := writeFeed(t)
		stateDir := t.TempDir()
		So(os.WriteFile(filepath.Join(stateDir, service.PicksFile), []byte("{oops"), 0o644), ShouldBeNil)
		svc := newFileService(athletes, stateDir)

		Convey("Then the service starts with no picks", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()
			So(svc.GetStats()["picks"], ShouldEqual, 0)
		})
	})
}
