package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/bestxi/internal/adapters/repository"
	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/selection"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/okian/bestxi/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type memoryStore struct {
	players  []model.PlayerRecord
	rejected []repository.RejectedRow
	err      error
	loads    int
	mu       sync.Mutex
}

func (m *memoryStore) Load(_ context.Context) (repository.LoadResult, error) {
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	if m.err != nil {
		return repository.LoadResult{}, m.err
	}
	players := make([]model.PlayerRecord, len(m.players))
	copy(players, m.players)
	return repository.LoadResult{Players: players, Rejected: m.rejected}, nil
}

// gatedStore blocks Load until release is closed.
type gatedStore struct {
	*memoryStore
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Load(ctx context.Context) (repository.LoadResult, error) {
	close(g.entered)
	<-g.release
	return g.memoryStore.Load(ctx)
}

type row struct {
	name    string
	country string
	role    model.Role
	runs    float64
	avg     float64
	sr      float64
	wickets float64
	econ    float64
	matches float64
}

func storeOf(rows ...row) *memoryStore {
	m := &memoryStore{}
	for i, r := range rows {
		m.players = append(m.players, model.PlayerRecord{
			Name:           r.name,
			Key:            model.NormalizeKey(r.name),
			Country:        r.country,
			Role:           r.role,
			RawRole:        r.role.String(),
			Runs:           r.runs,
			BattingAverage: r.avg,
			StrikeRate:     r.sr,
			WicketsTaken:   r.wickets,
			BowlingEconomy: r.econ,
			MatchesBatted:  r.matches,
			Index:          i,
		})
	}
	return m
}

// fifteen is 5 batsmen, 2 keepers, 3 all-rounders and 5 bowlers from three
// countries; India has one player in each role.
func fifteen() *memoryStore {
	return storeOf(
		row{"Rohit Sharma", "India", model.RoleBatsman, 1800, 52, 110, 0, 0, 30},
		row{"Babar Azam", "Pakistan", model.RoleBatsman, 1900, 55, 90, 0, 0, 32},
		row{"Fakhar Zaman", "Pakistan", model.RoleBatsman, 1400, 44, 95, 0, 0, 28},
		row{"David Warner", "Australia", model.RoleBatsman, 1700, 48, 105, 0, 0, 31},
		row{"Steve Smith", "Australia", model.RoleBatsman, 1300, 42, 86, 0, 0, 27},
		row{"KL Rahul", "India", model.RoleWicketKeeper, 1200, 50, 88, 0, 0, 24},
		row{"Mohammad Rizwan", "Pakistan", model.RoleWicketKeeper, 1250, 47, 87, 0, 0, 26},
		row{"Hardik Pandya", "India", model.RoleAllRounder, 800, 35, 112, 30, 5.8, 20},
		row{"Shadab Khan", "Pakistan", model.RoleAllRounder, 500, 25, 90, 35, 5.2, 18},
		row{"Glenn Maxwell", "Australia", model.RoleAllRounder, 900, 33, 125, 25, 5.6, 22},
		row{"Jasprit Bumrah", "India", model.RoleBowler, 50, 6, 60, 60, 4.5, 8},
		row{"Shaheen Shah Afridi", "Pakistan", model.RoleBowler, 70, 8, 70, 65, 5.1, 9},
		row{"Haris Rauf", "Pakistan", model.RoleBowler, 40, 5, 55, 55, 5.9, 6},
		row{"Mitchell Starc", "Australia", model.RoleBowler, 90, 10, 80, 70, 5.3, 12},
		row{"Adam Zampa", "Australia", model.RoleBowler, 30, 4, 50, 58, 5.0, 5},
	)
}

func countBy(entries []types.LineupEntry, pred func(types.LineupEntry) bool) int {
	n := 0
	for _, e := range entries {
		if pred(e) {
			n++
		}
	}
	return n
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New(fifteen())

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["captainPool"], ShouldEqual, len(selection.DefaultCaptainPool()))
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		store := fifteen()
		svc := service.New(store)
		ctx := context.Background()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it warms the dataset and reports started", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["lastRowsLoaded"], ShouldEqual, int64(15))
				So(store.loads, ShouldEqual, 1)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When the warm-up load is still running", func() {
			gated := &gatedStore{
				memoryStore: fifteen(),
				entered:     make(chan struct{}),
				release:     make(chan struct{}),
			}
			svc := service.New(gated)
			started := make(chan error, 1)
			go func() { started <- svc.Start(ctx) }()
			<-gated.entered

			stats := make(chan map[string]interface{}, 1)
			go func() { stats <- svc.GetStats() }()

			var during map[string]interface{}
			select {
			case during = <-stats:
			case <-time.After(2 * time.Second):
			}
			close(gated.release)
			err := <-started
			defer svc.Stop()

			Convey("Then stats answer without waiting for the load", func() {
				So(during, ShouldNotBeNil)
				So(during["started"], ShouldEqual, false)
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})

		Convey("When the dataset is missing at startup", func() {
			svc := service.New(&memoryStore{err: repository.ErrDatasetNotFound})
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then the service still starts", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})

		Convey("When quotas are unbalanced", func() {
			svc := service.New(store, service.WithQuotas(selection.Quotas{Batsman: 11, Bowler: 1}))

			Convey("Then start fails", func() {
				So(errors.Is(svc.Start(ctx), selection.ErrInvalidQuotas), ShouldBeTrue)
			})
		})
	})
}

func TestService_SelectBestXI(t *testing.T) {
	ctx := context.Background()

	Convey("Given the fifteen player dataset", t, func() {
		svc := service.New(fifteen())

		Convey("When India is the opponent", func() {
			res, err := svc.SelectBestXI(ctx, service.Query{PitchType: "neutral", Opponent: "India"})
			So(err, ShouldBeNil)

			Convey("Then eleven non-Indian players are picked", func() {
				So(res.Players, ShouldHaveLength, 11)
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.Country == "India" }), ShouldEqual, 0)
			})

			Convey("Then the real wicket-keeper keeps", func() {
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.Role == "wicketkeeper" }), ShouldEqual, 1)
				So(res.KeeperPromoted, ShouldBeFalse)
				for _, e := range res.Players {
					if e.Role == "wicketkeeper" {
						So(e.Player, ShouldEqual, "Mohammad Rizwan")
					}
				}
			})

			Convey("Then exactly one captain and one vice-captain lead", func() {
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.IsCaptain }), ShouldEqual, 1)
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.IsViceCaptain }), ShouldEqual, 1)
				for _, e := range res.Players {
					if e.IsCaptain {
						So(e.IsViceCaptain, ShouldBeFalse)
						So(e.Role, ShouldNotEqual, "bowler")
					}
				}
			})

			Convey("Then the context is echoed", func() {
				So(res.Pitch, ShouldEqual, model.PitchNeutral)
				So(res.PitchSource, ShouldEqual, selection.PitchFromRequest)
				So(res.Opponent, ShouldEqual, "India")
			})

			Convey("Then presentation runs top order first and bowlers last", func() {
				last := 0
				for _, e := range res.Players {
					r, err := model.ParseRole(e.Role)
					So(err, ShouldBeNil)
					So(r.Priority(), ShouldBeGreaterThanOrEqualTo, last)
					last = r.Priority()
				}
			})
		})

		Convey("When the same query runs twice", func() {
			q := service.Query{Venue: "Lahore", Opponent: "INDIA"}
			a, errA := svc.SelectBestXI(ctx, q)
			b, errB := svc.SelectBestXI(ctx, q)

			Convey("Then the answers are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
				So(a.Pitch, ShouldEqual, model.PitchSpin)
				So(a.PitchSource, ShouldEqual, selection.PitchFromVenue)
			})
		})

		Convey("When many requests run concurrently", func() {
			want, err := svc.SelectBestXI(ctx, service.Query{PitchType: "pace"})
			So(err, ShouldBeNil)

			results := make([]service.Result, 8)
			var wg sync.WaitGroup
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = svc.SelectBestXI(ctx, service.Query{PitchType: "pace"})
				}(i)
			}
			wg.Wait()

			Convey("Then every caller gets the same lineup", func() {
				for _, r := range results {
					So(r, ShouldResemble, want)
				}
				So(svc.GetStats()["requests"], ShouldEqual, int64(9))
			})
		})

		Convey("When the opponent removes everyone", func() {
			single := storeOf(row{"Solo", "Nepal", model.RoleBatsman, 10, 1, 50, 0, 0, 1})
			svc := service.New(single)
			_, err := svc.SelectBestXI(ctx, service.Query{Opponent: "nepal"})

			Convey("Then no_players_remaining is reported", func() {
				So(errors.Is(err, selection.ErrNoPlayersRemaining), ShouldBeTrue)
				So(service.Kind(err), ShouldEqual, service.KindNoPlayersRemaining)
			})
		})

		Convey("When the filter leaves fewer than eleven", func() {
			_, err := svc.SelectBestXI(ctx, service.Query{Opponent: "Pakistan"})

			Convey("Then insufficient_players is reported", func() {
				So(service.Kind(err), ShouldEqual, service.KindInsufficientPlayers)
				So(svc.GetStats()["failures"], ShouldEqual, int64(1))
			})
		})

		Convey("When the pitch type is malformed", func() {
			_, err := svc.SelectBestXI(ctx, service.Query{PitchType: "grassy"})

			Convey("Then invalid_pitch_type is reported", func() {
				So(service.Kind(err), ShouldEqual, service.KindInvalidPitchType)
				So(service.IsClientError(err), ShouldBeTrue)
			})
		})
	})

	Convey("Given a dataset without wicket-keepers", t, func() {
		rows := []row{}
		for i := 0; i < 6; i++ {
			rows = append(rows, row{fmt.Sprintf("Batter %d", i), "A", model.RoleBatsman, float64(1000 - i*100), 40, 90, 0, 0, 20})
		}
		for i := 0; i < 2; i++ {
			rows = append(rows, row{fmt.Sprintf("Allrounder %d", i), "A", model.RoleAllRounder, 400, 25, 90, 20, 5.5, 15})
		}
		for i := 0; i < 3; i++ {
			rows = append(rows, row{fmt.Sprintf("Bowler %d", i), "B", model.RoleBowler, 20, 5, 50, 40, 5, 4})
		}
		store := storeOf(rows...)
		top := store.players[0]
		svc := service.New(store)

		Convey("When selecting", func() {
			res, err := svc.SelectBestXI(ctx, service.Query{})
			So(err, ShouldBeNil)

			Convey("Then the top batsman keeps wicket with unchanged stats", func() {
				So(res.KeeperPromoted, ShouldBeTrue)
				So(res.PitchSource, ShouldEqual, selection.PitchFromDefault)
				keepers := []types.LineupEntry{}
				for _, e := range res.Players {
					if e.Role == "wicketkeeper" {
						keepers = append(keepers, e)
					}
				}
				So(keepers, ShouldHaveLength, 1)
				So(keepers[0].Player, ShouldEqual, top.Name)
				So(keepers[0].Runs, ShouldEqual, int(top.Runs))
				So(keepers[0].StrikeRate, ShouldEqual, top.StrikeRate)
				So(svc.GetStats()["keeperFallbacks"], ShouldEqual, int64(1))
			})
		})
	})

	Convey("Given an empty captain pool", t, func() {
		svc := service.New(fifteen(), service.WithCaptainPool([]string{}))

		Convey("When selecting", func() {
			res, err := svc.SelectBestXI(ctx, service.Query{PitchType: "spin"})
			So(err, ShouldBeNil)

			Convey("Then the top selection score captains without a vice", func() {
				So(res.CaptainFallback, ShouldBeTrue)
				best := res.Players[0]
				for _, e := range res.Players {
					if e.SelectionScore > best.SelectionScore {
						best = e
					}
				}
				So(best.IsCaptain, ShouldBeTrue)
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.IsCaptain }), ShouldEqual, 1)
				So(countBy(res.Players, func(e types.LineupEntry) bool { return e.IsViceCaptain }), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store that fails", t, func() {
		cases := map[error]string{
			repository.ErrDatasetNotFound:            service.KindDatasetNotFound,
			&repository.SchemaError{Missing: nil}:    service.KindSchemaError,
			repository.ErrEmptyDataset:               service.KindEmptyDataset,
			errors.New("disk on fire"):               service.KindInternal,
			fmt.Errorf("wrap: %w", context.Canceled): service.KindCanceled,
		}

		for storeErr, kind := range cases {
			svc := service.New(&memoryStore{err: storeErr})
			_, err := svc.SelectBestXI(ctx, service.Query{})
			So(service.Kind(err), ShouldEqual, kind)
		}
		So(service.Kind(nil), ShouldBeEmpty)
	})
}

func TestService_Venues(t *testing.T) {
	Convey("Given configured venues", t, func() {
		svc := service.New(fifteen(), service.WithVenues(map[string]model.PitchType{
			"Galle":     model.PitchSpin,
			"The Gabba": model.PitchPace,
		}))

		Convey("Then they are listed sorted and normalized", func() {
			So(svc.Venues(), ShouldResemble, []types.Venue{
				{Venue: "galle", PitchType: "spin"},
				{Venue: "the gabba", PitchType: "pace"},
			})
		})
	})
}
