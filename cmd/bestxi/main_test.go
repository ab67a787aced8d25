package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/bestxi/internal/adapters/http/api"
	"github.com/okian/bestxi/internal/adapters/repository"
	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const dataset = "../../data/players.tsv"

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSelectCommand(t *testing.T) {
	Convey("Given the bundled dataset", t, func() {
		Convey("When selecting as JSON for a spin venue", func() {
			out, _, err := execute("select", "--dataset", dataset, "--venue", "Lahore", "--opponent", "Pakistan", "--format", "json")
			So(err, ShouldBeNil)

			var got selectOutput
			So(json.Unmarshal([]byte(out), &got), ShouldBeNil)

			Convey("Then the lineup carries the inferred pitch", func() {
				So(got.PitchType, ShouldEqual, "spin")
				So(got.PitchSource, ShouldEqual, "venue")
				So(got.Players, ShouldHaveLength, 11)
				captains := 0
				for _, p := range got.Players {
					So(p.Country, ShouldNotEqual, "Pakistan")
					if p.IsCaptain {
						captains++
					}
				}
				So(captains, ShouldEqual, 1)
			})
		})

		Convey("When selecting as a table", func() {
			out, _, err := execute("select", "--dataset", dataset, "--pitch", "pace")
			So(err, ShouldBeNil)

			Convey("Then a header and eleven rows are printed", func() {
				So(out, ShouldStartWith, "pitch: pace (explicit)")
				So(out, ShouldContainSubstring, "PLAYER")
				lines := bytes.Count([]byte(out), []byte("\n"))
				So(lines, ShouldBeGreaterThanOrEqualTo, 13)
			})
		})

		Convey("When the pitch type is invalid", func() {
			_, _, err := execute("select", "--dataset", dataset, "--pitch", "green")

			Convey("Then the error names its kind", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, service.KindInvalidPitchType)
			})
		})

		Convey("When the format is unknown", func() {
			_, _, err := execute("select", "--dataset", dataset, "--format", "xml")
			So(err, ShouldNotBeNil)
		})

		Convey("When the dataset is missing", func() {
			_, _, err := execute("select", "--dataset", "testdata/missing.tsv")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, service.KindDatasetNotFound)
		})
	})
}

func TestProbeCommand(t *testing.T) {
	Convey("Given a running selector", t, func() {
		So(logger.Init(), ShouldBeNil)
		svc := service.New(repository.NewCSVStore(dataset))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		server := api.NewServer(svc, svc)
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)
		ts := httptest.NewServer(server.Handler(mux))
		defer ts.Close()

		Convey("When probing it", func() {
			out, _, err := execute("probe", "--url", ts.URL, "--pitches", "spin,pace", "--opponents", "India,England")

			Convey("Then every case passes", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "cases: 4  passed: 4  failed: 0")
			})
		})
	})
}
