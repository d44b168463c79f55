package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	"github.com/mergington/activities/internal/adapters/http/site"
	service "github.com/mergington/activities/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

type listedActivity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// newIntegrationServer wires a fresh service into the same routes the
// binary serves.
func newIntegrationServer() (*httptest.Server, *service.Service) {
	ctx := context.Background()
	svc := service.New()
	So(svc.Start(ctx), ShouldBeNil)

	mux := http.NewServeMux()
	site.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return httptest.NewServer(api.RequestIDMiddleware(mux)), svc
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func request(client *http.Client, method, url string) (*http.Response, map[string]any) {
	req, err := http.NewRequest(method, url, http.NoBody)
	So(err, ShouldBeNil)
	resp, err := client.Do(req)
	So(err, ShouldBeNil)
	defer resp.Body.Close()

	var body map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		So(json.NewDecoder(resp.Body).Decode(&body), ShouldBeNil)
	}
	return resp, body
}

func listActivities(client *http.Client, base string) map[string]listedActivity {
	resp, err := client.Get(base + "/activities")
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	So(resp.StatusCode, ShouldEqual, http.StatusOK)

	var activities map[string]listedActivity
	So(json.NewDecoder(resp.Body).Decode(&activities), ShouldBeNil)
	return activities
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given the service behind the HTTP routes", t, func() {
		srv, svc := newIntegrationServer()
		defer srv.Close()
		defer svc.Stop()

		client := noRedirectClient()

		Convey("When requesting the root path", func() {
			resp, _ := request(client, http.MethodGet, srv.URL+"/")

			Convey("Then it should redirect to the static index", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusTemporaryRedirect)
				So(resp.Header.Get("Location"), ShouldEqual, "/static/index.html")
			})
		})

		Convey("When listing activities", func() {
			activities := listActivities(client, srv.URL)

			Convey("Then the seeded directory should be returned", func() {
				So(activities, ShouldContainKey, "Chess Club")
				So(activities, ShouldContainKey, "Programming Class")
				So(activities, ShouldContainKey, "Gym Class")
				So(activities["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(activities["Chess Club"].Participants, ShouldHaveLength, 2)
			})
		})

		Convey("When signing up a new student", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/Chess%20Club/signup?email=newstudent@mergington.edu")

			Convey("Then the student should be listed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["message"], ShouldEqual, "Signed up newstudent@mergington.edu for Chess Club")
				So(listActivities(client, srv.URL)["Chess Club"].Participants, ShouldContain, "newstudent@mergington.edu")
			})
		})

		Convey("When signing up for an unknown activity", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/NonExistent/signup?email=test@mergington.edu")

			Convey("Then it should be not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(body["detail"], ShouldEqual, "Activity not found")
			})
		})

		Convey("When signing up an enrolled student", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/Chess%20Club/signup?email=michael@mergington.edu")

			Convey("Then it should be rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["detail"], ShouldEqual, "Student already signed up for this activity")
			})
		})

		Convey("When unregistering an enrolled student", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/Chess%20Club/unregister?email=michael@mergington.edu")

			Convey("Then the student should no longer be listed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["message"], ShouldEqual, "Unregistered michael@mergington.edu from Chess Club")
				So(listActivities(client, srv.URL)["Chess Club"].Participants, ShouldNotContain, "michael@mergington.edu")
			})
		})

		Convey("When unregistering from an unknown activity", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/NonExistent/unregister?email=test@mergington.edu")

			Convey("Then it should be not found", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(body["detail"], ShouldEqual, "Activity not found")
			})
		})

		Convey("When unregistering a student who is not enrolled", func() {
			resp, body := request(client, http.MethodPost, srv.URL+"/activities/Gym%20Class/unregister?email=notregistered@mergington.edu")

			Convey("Then it should be rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["detail"], ShouldEqual, "Student not registered for this activity")
			})
		})

		Convey("When signing up and then unregistering", func() {
			const email = "testflow@mergington.edu"
			initial := len(listActivities(client, srv.URL)["Programming Class"].Participants)

			resp, _ := request(client, http.MethodPost, srv.URL+"/activities/Programming%20Class/signup?email="+email)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			afterSignup := listActivities(client, srv.URL)["Programming Class"]

			resp, _ = request(client, http.MethodPost, srv.URL+"/activities/Programming%20Class/unregister?email="+email)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			afterUnregister := listActivities(client, srv.URL)["Programming Class"]

			Convey("Then the participant count should be restored", func() {
				So(afterSignup.Participants, ShouldHaveLength, initial+1)
				So(afterSignup.Participants, ShouldContain, email)
				So(afterUnregister.Participants, ShouldHaveLength, initial)
				So(afterUnregister.Participants, ShouldNotContain, email)
			})
		})

		Convey("When a request carries an X-Request-ID", func() {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/activities", http.NoBody)
			So(err, ShouldBeNil)
			req.Header.Set(api.RequestIDHeader, "integration-1")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()

			Convey("Then it should be echoed", func() {
				So(resp.Header.Get(api.RequestIDHeader), ShouldEqual, "integration-1")
			})
		})
	})
}
