package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.subsystem, ShouldEqual, "activities")
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("school"),
				WithSubsystem("clubs"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "school")
				So(manager.subsystem, ShouldEqual, "clubs")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})

			Convey("And collectors should be registered under the custom names", func() {
				manager.activitiesTotal.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "school_clubs_activities_total")
			})
		})

		Convey("When options receive zero values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "mergington")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestDirectoryMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording signups and unregistrations", func() {
			before := testutil.ToFloat64(globalManager.signups.WithLabelValues("Chess Club"))
			RecordSignup("Chess Club")
			RecordSignup("Chess Club")
			RecordUnregistration("Chess Club")

			Convey("Then the per-activity counters should move", func() {
				So(testutil.ToFloat64(globalManager.signups.WithLabelValues("Chess Club")), ShouldEqual, before+2)
				So(testutil.ToFloat64(globalManager.unregistrations.WithLabelValues("Chess Club")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording rejections", func() {
			before := testutil.ToFloat64(globalManager.rejections.WithLabelValues("signup", "already_signed_up"))
			RecordRejection("signup", "already_signed_up")

			Convey("Then the labeled counter should increment", func() {
				So(testutil.ToFloat64(globalManager.rejections.WithLabelValues("signup", "already_signed_up")), ShouldEqual, before+1)
			})
		})

		Convey("When updating directory gauges", func() {
			UpdateActivitiesTotal(3)
			UpdateParticipantsTotal(6)
			UpdateParticipants("Gym Class", 2)
			RecordDirectoryReset()

			Convey("Then gauges should hold the latest values", func() {
				So(testutil.ToFloat64(globalManager.activitiesTotal), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.participantsTotal), ShouldEqual, 6)
				So(testutil.ToFloat64(globalManager.participantsPerActivity.WithLabelValues("Gym Class")), ShouldEqual, 2)
			})
		})
	})
}

func TestHTTPAndSystemMetrics(t *testing.T) {
	Convey("Given HTTP and system recorders", t, func() {
		Convey("Then recording should not panic", func() {
			So(func() {
				RecordHTTPRequest("activities", "GET", "200")
				RecordHTTPRequestDuration("activities", "GET", "200", 1.5)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("signup", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("And the registry should expose the HTTP counter", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			found := false
			for _, f := range families {
				if f.GetName() == "mergington_activities_http_requests_total" {
					found = true
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
