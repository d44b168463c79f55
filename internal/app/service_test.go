package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/mergington/activities/internal/adapters/repository"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("When using it before Start", func() {
			_, listErr := svc.ListActivities(context.Background())
			_, signupErr := svc.Signup(context.Background(), "Chess Club", "a@mergington.edu")

			Convey("Then operations should report ErrNotStarted", func() {
				So(errors.Is(listErr, service.ErrNotStarted), ShouldBeTrue)
				So(errors.Is(signupErr, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then it should expose the default seed", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["activities"], ShouldEqual, 3)
				So(stats["participants"], ShouldEqual, 6)
			})

			Convey("And starting twice should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When stopping and restarting", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			_, err := svc.Signup(context.Background(), "Chess Club", "kept@mergington.edu")
			So(err, ShouldBeNil)
			svc.Stop()
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the rosters should survive", func() {
				chess, err := svc.Activity(context.Background(), "Chess Club")
				So(err, ShouldBeNil)
				So(chess.Participants, ShouldContain, "kept@mergington.edu")
			})
		})
	})
}

func TestService_Roster(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService()
		defer svc.Stop()

		Convey("When listing activities", func() {
			activities, err := svc.ListActivities(ctx)

			Convey("Then every seeded activity should be present", func() {
				So(err, ShouldBeNil)
				So(activities, ShouldContainKey, "Chess Club")
				So(activities, ShouldContainKey, "Programming Class")
				So(activities, ShouldContainKey, "Gym Class")
				So(activities["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(len(activities["Chess Club"].Participants), ShouldEqual, 2)
			})
		})

		Convey("When signing up a new student", func() {
			conf, err := svc.Signup(ctx, "Chess Club", "newstudent@mergington.edu")

			Convey("Then a confirmation should be returned", func() {
				So(err, ShouldBeNil)
				So(conf.Message(), ShouldEqual, "Signed up newstudent@mergington.edu for Chess Club")
			})

			Convey("And unregistering another student keeps the new one", func() {
				_, err := svc.Unregister(ctx, "Chess Club", "michael@mergington.edu")
				So(err, ShouldBeNil)

				chess, err := svc.Activity(ctx, "Chess Club")
				So(err, ShouldBeNil)
				So(chess.Participants, ShouldResemble, []string{"daniel@mergington.edu", "newstudent@mergington.edu"})
			})
		})

		Convey("When signing up twice", func() {
			_, err := svc.Signup(ctx, "Chess Club", "michael@mergington.edu")

			Convey("Then the conflict should propagate", func() {
				So(errors.Is(err, repository.ErrAlreadySignedUp), ShouldBeTrue)
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When targeting an unknown activity", func() {
			_, signupErr := svc.Signup(ctx, "NonExistent", "a@mergington.edu")
			_, unregErr := svc.Unregister(ctx, "NonExistent", "a@mergington.edu")
			_, getErr := svc.Activity(ctx, "NonExistent")

			Convey("Then not found should propagate", func() {
				So(errors.Is(signupErr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(unregErr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(getErr, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When unregistering a non-member", func() {
			_, err := svc.Unregister(ctx, "Gym Class", "notregistered@mergington.edu")

			Convey("Then the conflict should propagate", func() {
				So(errors.Is(err, repository.ErrNotRegistered), ShouldBeTrue)
			})
		})

		Convey("When resetting the directory", func() {
			_, _ = svc.Signup(ctx, "Gym Class", "extra@mergington.edu")
			err := svc.Reset(ctx, repository.DefaultSeed())

			Convey("Then the seed state should be restored", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["participants"], ShouldEqual, 6)
			})

			Convey("And invalid seeds should be rejected", func() {
				err := svc.Reset(ctx, []model.Activity{{Name: ""}})
				So(errors.Is(err, repository.ErrInvalidSeed), ShouldBeTrue)
			})
		})

		Convey("When refreshing metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() { svc.RefreshMetrics(ctx) }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Seeding(t *testing.T) {
	Convey("Given custom seed sources", t, func() {
		ctx := context.Background()

		Convey("When seeding from a slice", func() {
			svc := startedService(service.WithSeed([]model.Activity{
				{Name: "Art Club", Description: "Explore painting", Schedule: "Thursdays", MaxParticipants: 15},
			}))
			defer svc.Stop()

			Convey("Then only that activity should exist", func() {
				activities, err := svc.ListActivities(ctx)
				So(err, ShouldBeNil)
				So(len(activities), ShouldEqual, 1)
				So(activities, ShouldContainKey, "Art Club")
			})
		})

		Convey("When seeding from a YAML file", func() {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			So(os.WriteFile(path, []byte(`
activities:
  - name: Drama Club
    description: Act, direct, and produce plays
    schedule: Mondays and Wednesdays, 4:00 PM - 5:30 PM
    max_participants: 20
    participants: [ella@mergington.edu]
`), 0o600), ShouldBeNil)

			svc := startedService(service.WithSeedFile(path))
			defer svc.Stop()

			Convey("Then the file contents should be loaded", func() {
				drama, err := svc.Activity(ctx, "Drama Club")
				So(err, ShouldBeNil)
				So(drama.Participants, ShouldResemble, []string{"ella@mergington.edu"})
			})
		})

		Convey("When the seed file is missing", func() {
			svc := service.New(service.WithSeedFile(filepath.Join(t.TempDir(), "nope.yaml")))
			err := svc.Start(ctx)

			Convey("Then Start should fail", func() {
				So(errors.Is(err, repository.ErrInvalidSeed), ShouldBeTrue)
			})
		})

		Convey("When a store is injected", func() {
			store, err := repository.NewMemoryStore(ctx)
			So(err, ShouldBeNil)
			_, err = store.Signup(ctx, "Chess Club", "injected@mergington.edu")
			So(err, ShouldBeNil)

			svc := startedService(service.WithStore(store))
			defer svc.Stop()

			Convey("Then the service should use it", func() {
				chess, err := svc.Activity(ctx, "Chess Club")
				So(err, ShouldBeNil)
				So(chess.Participants, ShouldContain, "injected@mergington.edu")
			})
		})
	})
}
