package model_test

import (
	"errors"
	"testing"

	"github.com/okian/bestxi/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoleNormalizer(t *testing.T) {
	Convey("Given the default role normalizer", t, func() {
		n := model.NewRoleNormalizer(model.DefaultRoleAliases())

		Convey("When normalizing aliases in any case", func() {
			cases := map[string]model.Role{
				"Batter":        model.RoleBatsman,
				" BAT ":         model.RoleBatsman,
				"All-Rounder":   model.RoleAllRounder,
				"all rounder":   model.RoleAllRounder,
				"Utility":       model.RoleAllRounder,
				"WK":            model.RoleWicketKeeper,
				"Wicket-Keeper": model.RoleWicketKeeper,
				"batsman":       model.RoleBatsman,
				"Bowler":        model.RoleBowler,
				"allrounder":    model.RoleAllRounder,
				"WicketKeeper":  model.RoleWicketKeeper,
			}

			Convey("Then each maps to its canonical role", func() {
				for raw, want := range cases {
					got, err := n.Normalize(raw)
					So(err, ShouldBeNil)
					So(got, ShouldEqual, want)
				}
			})
		})

		Convey("When the label is unknown", func() {
			_, err := n.Normalize("twelfth man")

			Convey("Then ErrUnknownRole is reported", func() {
				So(errors.Is(err, model.ErrUnknownRole), ShouldBeTrue)
			})
		})

		Convey("When extra aliases are configured", func() {
			aliases := model.DefaultRoleAliases()
			aliases["Keeper"] = model.RoleWicketKeeper
			aliases["ignored"] = model.RoleUnknown
			custom := model.NewRoleNormalizer(aliases)

			Convey("Then they resolve and invalid targets are dropped", func() {
				r, err := custom.Normalize("keeper")
				So(err, ShouldBeNil)
				So(r, ShouldEqual, model.RoleWicketKeeper)
				_, err = custom.Normalize("ignored")
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRole(t *testing.T) {
	Convey("Given canonical roles", t, func() {
		So(model.RoleBatsman.Priority(), ShouldEqual, 1)
		So(model.RoleWicketKeeper.Priority(), ShouldEqual, 1)
		So(model.RoleAllRounder.Priority(), ShouldEqual, 2)
		So(model.RoleBowler.Priority(), ShouldEqual, 3)
		So(model.RoleUnknown.Valid(), ShouldBeFalse)

		r, err := model.ParseRole(" Bowler ")
		So(err, ShouldBeNil)
		So(r, ShouldEqual, model.RoleBowler)
		_, err = model.ParseRole("batter")
		So(err, ShouldNotBeNil)
	})
}

func TestParsePitchType(t *testing.T) {
	Convey("Given pitch type strings", t, func() {
		Convey("Then known types parse case-insensitively", func() {
			p, ok, err := model.ParsePitchType(" SPIN ")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, model.PitchSpin)
		})

		Convey("Then blank input means not supplied", func() {
			_, ok, err := model.ParsePitchType("  ")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Then other values are rejected", func() {
			_, _, err := model.ParsePitchType("green")
			So(errors.Is(err, model.ErrInvalidPitchType), ShouldBeTrue)
		})
	})
}

func TestNormalizeKeyAndRanks(t *testing.T) {
	Convey("Given player identities", t, func() {
		So(model.NormalizeKey("  Virat   KOHLI "), ShouldEqual, "virat kohli")

		a := model.ScoredPlayer{PlayerRecord: model.PlayerRecord{Index: 3}, SelectionScore: 10}
		b := model.ScoredPlayer{PlayerRecord: model.PlayerRecord{Index: 1}, SelectionScore: 10}
		c := model.ScoredPlayer{PlayerRecord: model.PlayerRecord{Index: 0}, SelectionScore: 5}

		Convey("Then ties break on source order", func() {
			So(model.Ranks(b, a), ShouldBeTrue)
			So(model.Ranks(a, b), ShouldBeFalse)
			So(model.Ranks(a, c), ShouldBeTrue)
		})
	})
}
